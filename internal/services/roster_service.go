package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/cache"
	"github.com/SAP-F-2025/attendance-service/internal/events"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type rosterService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	publisher    events.EventPublisher
	cacheManager *cache.CacheManager
	passwordCost int
}

func NewRosterService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
	cacheManager *cache.CacheManager,
	passwordCost int,
) RosterService {
	if passwordCost == 0 {
		passwordCost = bcrypt.DefaultCost
	}
	return &rosterService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		publisher:    publisher,
		cacheManager: cacheManager,
		passwordCost: passwordCost,
	}
}

// ===== STUDENTS =====

func (s *rosterService) CreateStudent(ctx context.Context, req *validator.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	exists, err := s.repo.Teacher().ExistsByID(ctx, nil, req.TeacherID)
	if err != nil {
		return nil, newPersistenceError("check teacher", err)
	}
	if !exists {
		return nil, &NotFoundError{Resource: "teacher", ID: req.TeacherID}
	}

	student := &models.Student{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		TeacherID: req.TeacherID,
	}
	if err := s.repo.Student().Create(ctx, nil, student); err != nil {
		s.logger.Error("Failed to create student", "teacher_id", req.TeacherID, "error", err)
		return nil, newPersistenceError("create student", err)
	}

	s.afterRosterChange(ctx, events.NewEvent(events.StudentCreated, events.StudentData{
		StudentID: student.ID,
		TeacherID: student.TeacherID,
	}))

	s.logger.Info("Student created", "student_id", student.ID, "teacher_id", student.TeacherID)
	return student, nil
}

func (s *rosterService) ListStudents(ctx context.Context, teacherID *string) ([]*models.Student, error) {
	students, err := s.repo.Student().List(ctx, nil, repositories.StudentFilters{TeacherID: teacherID})
	if err != nil {
		return nil, newPersistenceError("list students", err)
	}
	return students, nil
}

func (s *rosterService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "student", ID: id}
		}
		return nil, newPersistenceError("get student", err)
	}
	return student, nil
}

// DeleteStudent removes the student and, through the cascade, its attendance.
func (s *rosterService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.repo.Student().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return &NotFoundError{Resource: "student", ID: id}
		}
		s.logger.Error("Failed to delete student", "student_id", id, "error", err)
		return newPersistenceError("delete student", err)
	}

	s.afterRosterChange(ctx, events.NewEvent(events.StudentDeleted, events.StudentData{StudentID: id}))

	s.logger.Info("Student deleted", "student_id", id)
	return nil
}

// ===== TEACHERS =====

// CreateTeacher inserts the account and its teacher row in one transaction.
func (s *rosterService) CreateTeacher(ctx context.Context, req *validator.CreateTeacherRequest) (*models.PublicUser, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	conflict := &ConflictError{Resource: "account", Field: "email", Value: email}

	exists, err := s.repo.Account().ExistsByEmail(ctx, nil, email)
	if err != nil {
		return nil, newPersistenceError("check email", err)
	}
	if exists {
		return nil, conflict
	}

	hash, err := auth.HashPassword(req.Password, s.passwordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, newFieldError("password", "must be at most 72 bytes", "bcrypt_len")
	}
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, newPersistenceError("hash password", err)
	}

	var user *models.PublicUser
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		account := &models.Account{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleTeacher,
			Name:         strings.TrimSpace(req.Name),
		}
		if err := tx.Account().Create(ctx, nil, account); err != nil {
			return err
		}

		teacher := &models.Teacher{
			ID:        uuid.NewString(),
			AccountID: account.ID,
			Name:      account.Name,
			Email:     account.Email,
		}
		if err := tx.Teacher().Create(ctx, nil, teacher); err != nil {
			return err
		}

		user = models.NewPublicUser(account, &teacher.ID)
		return nil
	})
	if err != nil {
		// lost a race with a concurrent insert of the same email
		if repositories.IsDuplicateError(err) {
			return nil, conflict
		}
		s.logger.Error("Failed to create teacher", "email", email, "error", err)
		return nil, newPersistenceError("create teacher", err)
	}

	s.afterRosterChange(ctx, events.NewEvent(events.TeacherCreated, events.TeacherData{
		AccountID: user.ID,
		TeacherID: *user.TeacherID,
		Email:     user.Email,
	}))

	s.logger.Info("Teacher created", "account_id", user.ID, "teacher_id", *user.TeacherID)
	return user, nil
}

func (s *rosterService) ListTeachers(ctx context.Context) ([]*models.PublicUser, error) {
	accounts, err := s.repo.Account().ListByRole(ctx, nil, models.RoleTeacher)
	if err != nil {
		return nil, newPersistenceError("list teacher accounts", err)
	}

	accountIDs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		accountIDs = append(accountIDs, a.ID)
	}

	teachers, err := s.repo.Teacher().ListByAccountIDs(ctx, nil, accountIDs)
	if err != nil {
		return nil, newPersistenceError("list teachers", err)
	}

	teacherIDs := make(map[string]string, len(teachers))
	for _, t := range teachers {
		teacherIDs[t.AccountID] = t.ID
	}

	users := make([]*models.PublicUser, 0, len(accounts))
	for _, a := range accounts {
		var teacherID *string
		if id, ok := teacherIDs[a.ID]; ok {
			teacherID = &id
		}
		users = append(users, models.NewPublicUser(a, teacherID))
	}
	return users, nil
}

// DeleteTeacher removes a teacher-role account; the cascade takes its roster and attendance.
func (s *rosterService) DeleteTeacher(ctx context.Context, accountID string) error {
	account, err := s.repo.Account().GetByID(ctx, nil, accountID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &NotFoundError{Resource: "teacher", ID: accountID}
		}
		return newPersistenceError("get account", err)
	}
	if account.Role != models.RoleTeacher {
		return &NotFoundError{Resource: "teacher", ID: accountID}
	}

	if err := s.repo.Account().Delete(ctx, nil, accountID); err != nil {
		if repositories.IsNotFoundError(err) {
			return &NotFoundError{Resource: "teacher", ID: accountID}
		}
		s.logger.Error("Failed to delete teacher", "account_id", accountID, "error", err)
		return newPersistenceError("delete teacher", err)
	}

	s.afterRosterChange(ctx, events.NewEvent(events.TeacherDeleted, events.TeacherData{
		AccountID: accountID,
		Email:     account.Email,
	}))

	s.logger.Info("Teacher deleted", "account_id", accountID)
	return nil
}

func (s *rosterService) ResolveTeacherID(ctx context.Context, accountID string) (string, error) {
	teacher, err := s.repo.Teacher().GetByAccountID(ctx, nil, accountID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", &NotFoundError{Resource: "teacher", ID: accountID}
		}
		return "", newPersistenceError("resolve teacher", err)
	}
	return teacher.ID, nil
}

// afterRosterChange drops cached stats and announces the change; neither can fail the write.
func (s *rosterService) afterRosterChange(ctx context.Context, event events.Event) {
	cache.InvalidateStatsCache(ctx, s.cacheManager)

	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "type", event.Type, "event_id", event.ID, "error", err)
	}
}
