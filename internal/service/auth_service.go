package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/repository"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterUser creates a new account with the given legacy role code.
func (s *AuthService) RegisterUser(ctx context.Context, fullName, email, password string, companyID *int64, userRoleID int64) (*domain.User, string, time.Time, error) {
	if domain.RoleFromLegacyCode(userRoleID) == domain.RoleUnknown {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role code", map[string]any{"userRoleId": userRoleID})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		CompanyID:    companyID,
		UserRoleID:   userRoleID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.UserRoleID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// Login authenticates a user and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.IsActive {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("user inactive")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.UserRoleID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
