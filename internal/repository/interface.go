package repository

import (
	"context"

	"github.com/airwell/backend/internal/model"
)

// DB is the liveness interface the health endpoint depends on.
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByLogin matches either username or email.
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// ReadingRepository persists per-user sensor readings.
type ReadingRepository interface {
	Create(ctx context.Context, reading *model.Reading) error
	// ListByUser returns readings newest first, capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Reading, error)
	LatestByUser(ctx context.Context, userID string) (*model.Reading, error)
	// LatestTwoByUser returns up to the two most recent readings, newest
	// first. Used for AQI change alerting.
	LatestTwoByUser(ctx context.Context, userID string) ([]*model.Reading, error)
}
