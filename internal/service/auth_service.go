package service

import (
	"context"
	"errors"

	"github.com/airwell/backend/internal/model"
)

// ErrInvalidCredentials is returned for any login or password-change failure
// the caller should not be able to distinguish (unknown user, wrong password).
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned when the username or email is already taken.
var ErrUserExists = errors.New("user already exists")

// ErrInvalidInput is returned when signup fields fail validation.
var ErrInvalidInput = errors.New("invalid input")

// AuthService handles account creation and credential verification.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	// Login accepts a username or an email address.
	Login(ctx context.Context, login, password string) (*model.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
