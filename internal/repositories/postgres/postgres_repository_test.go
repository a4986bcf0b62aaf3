package postgres_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/attendance-service/internal/testutil"
)

func newRecord(studentID, teacherID string, date time.Time, status models.AttendanceStatus) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		ID:        uuid.NewString(),
		StudentID: studentID,
		TeacherID: teacherID,
		Date:      datatypes.Date(date),
		Status:    status,
		MarkedAt:  time.Now().UTC(),
	}
}

func TestAttendanceRepository_UniquePerStudentAndDate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	_, teacher := testutil.CreateTeacher(t, db, "Ms. Krabappel", "teacher@classtrack.com", "teacher123")
	bart := testutil.CreateStudent(t, db, teacher.ID, "Bart Simpson")
	day := testutil.Date(t, "2024-01-15")

	if err := repo.Attendance().Create(ctx, nil, newRecord(bart.ID, teacher.ID, day, models.StatusPresent)); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err := repo.Attendance().Create(ctx, nil, newRecord(bart.ID, teacher.ID, day, models.StatusAbsent))
	if err == nil {
		t.Fatal("second insert for same (student, date) should fail")
	}
	if !repositories.IsDuplicateError(err) {
		t.Errorf("expected duplicate error, got %v", err)
	}

	// a different date is fine
	if err := repo.Attendance().Create(ctx, nil, newRecord(bart.ID, teacher.ID, testutil.Date(t, "2024-01-16"), models.StatusAbsent)); err != nil {
		t.Fatalf("insert for next day failed: %v", err)
	}
}

func TestAttendanceRepository_Ordering(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	_, teacher := testutil.CreateTeacher(t, db, "Ms. Krabappel", "teacher@classtrack.com", "teacher123")
	bart := testutil.CreateStudent(t, db, teacher.ID, "Bart Simpson")
	milhouse := testutil.CreateStudent(t, db, teacher.ID, "Milhouse Van Houten")
	day := testutil.Date(t, "2024-01-15")

	first := newRecord(milhouse.ID, teacher.ID, day, models.StatusPresent)
	first.MarkedAt = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	second := newRecord(bart.ID, teacher.ID, day, models.StatusAbsent)
	second.MarkedAt = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for _, r := range []*models.AttendanceRecord{second, first} {
		if err := repo.Attendance().Create(ctx, nil, r); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	byDay, err := repo.Attendance().GetByDay(ctx, nil, day, teacher.ID)
	if err != nil {
		t.Fatalf("GetByDay failed: %v", err)
	}
	if len(byDay) != 2 || byDay[0].ID != first.ID || byDay[1].ID != second.ID {
		t.Fatalf("GetByDay not ordered by marked_at ascending: %+v", byDay)
	}

	for _, d := range []string{"2024-01-10", "2024-01-20"} {
		if err := repo.Attendance().Create(ctx, nil, newRecord(bart.ID, teacher.ID, testutil.Date(t, d), models.StatusPresent)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	history, err := repo.Attendance().GetByStudent(ctx, nil, bart.ID)
	if err != nil {
		t.Fatalf("GetByStudent failed: %v", err)
	}
	want := []string{"2024-01-20", "2024-01-15", "2024-01-10"}
	if len(history) != len(want) {
		t.Fatalf("history length = %d, want %d", len(history), len(want))
	}
	for i, w := range want {
		if got := models.FormatDate(history[i].Date); got != w {
			t.Errorf("history[%d].Date = %s, want %s", i, got, w)
		}
	}

	empty, err := repo.Attendance().GetByDay(ctx, nil, testutil.Date(t, "2030-01-01"), teacher.ID)
	if err != nil {
		t.Fatalf("GetByDay on empty day failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestRepository_CascadeDeletes(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	account, teacher := testutil.CreateTeacher(t, db, "Ms. Hoover", "hoover@classtrack.com", "teacher123")
	lisa := testutil.CreateStudent(t, db, teacher.ID, "Lisa Simpson")
	ralph := testutil.CreateStudent(t, db, teacher.ID, "Ralph Wiggum")
	day := testutil.Date(t, "2024-01-15")
	for _, s := range []*models.Student{lisa, ralph} {
		if err := repo.Attendance().Create(ctx, nil, newRecord(s.ID, teacher.ID, day, models.StatusPresent)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	// deleting a student removes only its attendance
	if err := repo.Student().Delete(ctx, nil, lisa.ID); err != nil {
		t.Fatalf("delete student failed: %v", err)
	}
	history, err := repo.Attendance().GetByStudent(ctx, nil, lisa.ID)
	if err != nil {
		t.Fatalf("GetByStudent failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("deleted student still has %d records", len(history))
	}
	if history, _ := repo.Attendance().GetByStudent(ctx, nil, ralph.ID); len(history) != 1 {
		t.Errorf("sibling student lost records: %d", len(history))
	}

	// deleting the account removes teacher, students and attendance
	if err := repo.Account().Delete(ctx, nil, account.ID); err != nil {
		t.Fatalf("delete account failed: %v", err)
	}
	if _, err := repo.Teacher().GetByID(ctx, nil, teacher.ID); !repositories.IsNotFoundError(err) {
		t.Errorf("teacher should be gone, got err=%v", err)
	}
	if _, err := repo.Student().GetByID(ctx, nil, ralph.ID); !repositories.IsNotFoundError(err) {
		t.Errorf("student should be gone, got err=%v", err)
	}
	if history, _ := repo.Attendance().GetByStudent(ctx, nil, ralph.ID); len(history) != 0 {
		t.Errorf("attendance should be gone, got %d", len(history))
	}

	if err := repo.Account().Delete(ctx, nil, account.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}

func TestRepository_WithTransactionRollsBack(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	_, teacher := testutil.CreateTeacher(t, db, "Ms. Krabappel", "teacher@classtrack.com", "teacher123")
	boom := errors.New("boom")

	err := repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		student := &models.Student{ID: uuid.NewString(), Name: "Nelson Muntz", TeacherID: teacher.ID}
		if err := tx.Student().Create(ctx, nil, student); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTransaction error = %v, want boom", err)
	}

	students, err := repo.Student().List(ctx, nil, repositories.StudentFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 0 {
		t.Errorf("rolled back insert is visible: %d students", len(students))
	}
}

func TestStatsRepository_LeftJoinKeepsEmptyTeachers(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	testutil.CreateAdmin(t, db, "Principal Skinner", "admin@classtrack.com", "admin123")
	_, krabappel := testutil.CreateTeacher(t, db, "Ms. Krabappel", "teacher@classtrack.com", "teacher123")
	testutil.CreateTeacher(t, db, "Ms. Hoover", "hoover@classtrack.com", "teacher123")
	testutil.CreateStudent(t, db, krabappel.ID, "Bart Simpson")
	testutil.CreateStudent(t, db, krabappel.ID, "Milhouse Van Houten")

	stats, err := repo.Stats().GetTeacherStudentCounts(ctx, nil)
	if err != nil {
		t.Fatalf("GetTeacherStudentCounts failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 teacher rows (admin excluded), got %d", len(stats))
	}
	if stats[0].Name != "Ms. Hoover" || stats[0].StudentCount != 0 {
		t.Errorf("stats[0] = %+v, want Ms. Hoover with 0 students", stats[0])
	}
	if stats[1].Name != "Ms. Krabappel" || stats[1].StudentCount != 2 {
		t.Errorf("stats[1] = %+v, want Ms. Krabappel with 2 students", stats[1])
	}

	teachers, _ := repo.Stats().CountTeachers(ctx, nil)
	students, _ := repo.Stats().CountStudents(ctx, nil)
	if teachers != 2 || students != 2 {
		t.Errorf("counts = (%d, %d), want (2, 2)", teachers, students)
	}
}

func TestAccountRepository_EmailUniqueness(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	testutil.CreateTeacher(t, db, "Ms. Hoover", "hoover@classtrack.com", "teacher123")

	dup := &models.Account{ID: uuid.NewString(), Email: "Hoover@ClassTrack.com", PasswordHash: "x", Role: models.RoleTeacher, Name: "Imposter"}
	err := repo.Account().Create(ctx, nil, dup)
	if !errors.Is(err, repositories.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate for case-variant email, got %v", err)
	}

	exists, err := repo.Account().ExistsByEmail(ctx, nil, " HOOVER@classtrack.com ")
	if err != nil || !exists {
		t.Errorf("ExistsByEmail = %v, %v; want true", exists, err)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	for i := 0; i < 2; i++ {
		if err := postgres.Seed(ctx, db, logger); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}

	var accounts, students int64
	db.Model(&models.Account{}).Count(&accounts)
	db.Model(&models.Student{}).Count(&students)
	if accounts != 3 {
		t.Errorf("accounts = %d, want 3", accounts)
	}
	if students != 5 {
		t.Errorf("students = %d, want 5", students)
	}
}
