package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/airwell/backend/internal/aqi"
	"github.com/airwell/backend/internal/model"
	"github.com/airwell/backend/internal/observability"
	"github.com/airwell/backend/internal/repository"
	"github.com/jonboulle/clockwork"
)

// alertDelta is the AQI score change that triggers an alert in the report.
const alertDelta = 10

// ReadingServiceImpl is the ReadingService implementation.
type ReadingServiceImpl struct {
	readingRepo repository.ReadingRepository
	clock       clockwork.Clock
	metrics     *observability.Metrics
}

// NewReadingService creates a ReadingServiceImpl (DI: repository, clock, metrics).
func NewReadingService(readingRepo repository.ReadingRepository, clock clockwork.Clock, metrics *observability.Metrics) ReadingService {
	return &ReadingServiceImpl{readingRepo: readingRepo, clock: clock, metrics: metrics}
}

// Add stores a manual reading. A zero timestamp is replaced with the current time.
func (s *ReadingServiceImpl) Add(ctx context.Context, userID string, reading *model.Reading) (*model.Reading, error) {
	reading.UserID = userID
	if reading.Timestamp.IsZero() {
		reading.Timestamp = s.clock.Now().UTC()
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		slog.Error("store reading failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("store reading: %w", err)
	}
	s.metrics.ReadingsIngested.WithLabelValues("manual").Inc()
	slog.Debug("reading stored", "user_id", userID, "pm25", reading.PM25)
	return reading, nil
}

func (s *ReadingServiceImpl) List(ctx context.Context, userID string, limit int) ([]*model.Reading, error) {
	return s.readingRepo.ListByUser(ctx, userID, limit)
}

func (s *ReadingServiceImpl) Latest(ctx context.Context, userID string) (*model.Reading, error) {
	return s.readingRepo.LatestByUser(ctx, userID)
}

// Report evaluates the latest reading's PM2.5 and flags an alert when the
// score moved by alertDelta or more since the previous reading, or when this
// is the first reading.
func (s *ReadingServiceImpl) Report(ctx context.Context, userID string) (*Report, error) {
	latest, err := s.readingRepo.LatestTwoByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load readings: %w", err)
	}
	if len(latest) == 0 {
		res := aqi.Evaluate(nil)
		return &Report{
			Category: res.Category,
			Color:    res.Color,
			Advisory: res.Advisory,
		}, nil
	}

	res := aqi.Evaluate(&latest[0].PM25)
	score := *res.Score
	s.metrics.AQIScore.Set(float64(score))
	s.metrics.AQIScoreSpread.Observe(float64(score))

	alert := true
	if len(latest) > 1 {
		prev := aqi.Score(latest[1].PM25)
		diff := score - prev
		if diff < 0 {
			diff = -diff
		}
		alert = diff >= alertDelta
	}

	report := &Report{
		Score:    res.Score,
		Category: res.Category,
		Color:    res.Color,
		Advisory: res.Advisory,
		Alert:    alert,
		Reading:  latest[0],
	}
	if alert {
		report.AlertMessage = fmt.Sprintf("AQI is %d (%s)", score, res.Category)
	}
	return report, nil
}
