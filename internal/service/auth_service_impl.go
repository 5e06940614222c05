package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/airwell/backend/internal/model"
	"github.com/airwell/backend/internal/observability"
	"github.com/airwell/backend/internal/repository"
	"github.com/airwell/backend/pkg/auth"
)

const minPasswordLen = 8

// AuthServiceImpl is the AuthService implementation.
type AuthServiceImpl struct {
	userRepo repository.UserRepository
	metrics  *observability.Metrics
}

// NewAuthService creates an AuthServiceImpl (DI: UserRepository and metrics).
func NewAuthService(userRepo repository.UserRepository, metrics *observability.Metrics) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, metrics: metrics}
}

// Signup validates the fields, hashes the password, and creates the account.
func (s *AuthServiceImpl) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, ErrInvalidInput
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		slog.Error("create user failed", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.SignupsTotal.Inc()
	slog.Info("new user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials against the stored hash. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		slog.Debug("password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	slog.Info("user logged in", "user_id", user.ID)
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrInvalidInput
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	slog.Info("password changed", "user_id", userID)
	return nil
}
