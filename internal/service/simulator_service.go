package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/airwell/backend/internal/model"
	"github.com/airwell/backend/internal/observability"
	"github.com/airwell/backend/internal/repository"
	"github.com/jonboulle/clockwork"
)

// SimulatorService generates plausible virtual sensor readings for users
// without physical sensors.
type SimulatorService interface {
	GenerateVirtualReading(ctx context.Context, userID string) (*model.Reading, error)
}

// SimulatorServiceImpl derives a full reading from a random base temperature
// in the 30-45 °C range, mimicking a device whose onboard thermometer drives
// the other channels.
type SimulatorServiceImpl struct {
	readingRepo repository.ReadingRepository
	clock       clockwork.Clock
	metrics     *observability.Metrics

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// NewSimulatorService creates a SimulatorServiceImpl. The rand source is
// injected so tests can seed it.
func NewSimulatorService(readingRepo repository.ReadingRepository, clock clockwork.Clock, rng *rand.Rand, metrics *observability.Metrics) SimulatorService {
	return &SimulatorServiceImpl{readingRepo: readingRepo, clock: clock, rng: rng, metrics: metrics}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// GenerateVirtualReading builds and stores one simulated reading.
func (s *SimulatorServiceImpl) GenerateVirtualReading(ctx context.Context, userID string) (*model.Reading, error) {
	s.mu.Lock()
	base := 30 + s.rng.Float64()*15
	humidity := round1(30 + s.rng.Float64()*30)
	pm25 := round1(base / 2)
	pm10 := pm25 + 5 + s.rng.Float64()*15
	tvoc := float64(50 + s.rng.Intn(351))
	s.mu.Unlock()

	reading := &model.Reading{
		UserID:      userID,
		Timestamp:   s.clock.Now().UTC(),
		Temperature: round1(base / 3),
		Humidity:    humidity,
		CO2:         400 + float64(int(base*10)),
		PM25:        pm25,
		PM10:        pm10,
		TVOC:        tvoc,
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		slog.Error("store virtual reading failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("store virtual reading: %w", err)
	}
	s.metrics.ReadingsIngested.WithLabelValues("simulated").Inc()
	slog.Debug("virtual reading generated", "user_id", userID, "base_temp", base)
	return reading, nil
}
