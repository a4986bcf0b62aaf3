package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/attendance-service/internal/auth"
	"github.com/SAP-F-2025/attendance-service/internal/models"
	"github.com/SAP-F-2025/attendance-service/internal/repositories"
	"github.com/SAP-F-2025/attendance-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	tokens    *auth.TokenManager
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, tokens *auth.TokenManager) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		tokens:    tokens,
	}
}

func (s *authService) Authenticate(ctx context.Context, req *validator.LoginRequest) (*models.PublicUser, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err)
	}

	account, err := s.repo.Account().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			auth.BurnPasswordCheck(req.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, newPersistenceError("get account", err)
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		s.logger.Info("Login rejected", "account_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	return s.publicUser(ctx, account)
}

// Login authenticates and issues a signed token.
func (s *authService) Login(ctx context.Context, req *validator.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "account_id", user.ID, "role", user.Role)
	return &models.LoginResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) GetUser(ctx context.Context, id string) (*models.PublicUser, error) {
	account, err := s.repo.Account().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, &NotFoundError{Resource: "user", ID: id}
		}
		return nil, newPersistenceError("get account", err)
	}
	return s.publicUser(ctx, account)
}

// publicUser attaches the teacher row id for teacher accounts.
func (s *authService) publicUser(ctx context.Context, account *models.Account) (*models.PublicUser, error) {
	if account.Role != models.RoleTeacher {
		return models.NewPublicUser(account, nil), nil
	}

	teacher, err := s.repo.Teacher().GetByAccountID(ctx, nil, account.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return models.NewPublicUser(account, nil), nil
		}
		return nil, newPersistenceError("get teacher", err)
	}
	return models.NewPublicUser(account, &teacher.ID), nil
}
