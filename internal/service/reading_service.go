package service

import (
	"context"

	"github.com/airwell/backend/internal/aqi"
	"github.com/airwell/backend/internal/model"
)

// Report is the derived air-quality view for a user's latest reading.
// Score is nil when the user has no readings yet.
type Report struct {
	Score        *int           `json:"score"`
	Category     aqi.Category   `json:"category"`
	Color        string         `json:"color"`
	Advisory     string         `json:"advisory"`
	Alert        bool           `json:"alert"`
	AlertMessage string         `json:"alert_message,omitempty"`
	Reading      *model.Reading `json:"reading,omitempty"`
}

// ReadingService handles reading ingestion, history, and the AQI report.
type ReadingService interface {
	// Add stores a reading for the user, stamping the current time when the
	// caller supplies none.
	Add(ctx context.Context, userID string, reading *model.Reading) (*model.Reading, error)
	List(ctx context.Context, userID string, limit int) ([]*model.Reading, error)
	Latest(ctx context.Context, userID string) (*model.Reading, error)
	Report(ctx context.Context, userID string) (*Report, error)
}
