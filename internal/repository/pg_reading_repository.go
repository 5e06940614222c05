package repository

import (
	"context"
	"errors"

	"github.com/airwell/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgReadingRepository is the PostgreSQL implementation of ReadingRepository.
type PgReadingRepository struct {
	pool *pgxpool.Pool
}

func NewPgReadingRepository(pool *pgxpool.Pool) *PgReadingRepository {
	return &PgReadingRepository{pool: pool}
}

// maxListLimit caps history queries regardless of what the caller asks for.
const maxListLimit = 1000

const readingSelectCols = `id, user_id, ts, temperature, humidity, co2, pm25, pm10, tvoc`

func scanReading(scan func(...any) error) (*model.Reading, error) {
	var rd model.Reading
	if err := scan(&rd.ID, &rd.UserID, &rd.Timestamp, &rd.Temperature, &rd.Humidity,
		&rd.CO2, &rd.PM25, &rd.PM10, &rd.TVOC); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rd, nil
}

func (r *PgReadingRepository) Create(ctx context.Context, reading *model.Reading) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO readings (user_id, ts, temperature, humidity, co2, pm25, pm10, tvoc)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		reading.UserID, reading.Timestamp, reading.Temperature, reading.Humidity,
		reading.CO2, reading.PM25, reading.PM10, reading.TVOC,
	).Scan(&reading.ID)
}

// ListByUser returns readings newest first. limit <= 0 or above the cap
// falls back to the cap.
func (r *PgReadingRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Reading, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+readingSelectCols+` FROM readings WHERE user_id = $1 ORDER BY ts DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []*model.Reading
	for rows.Next() {
		rd, err := scanReading(rows.Scan)
		if err != nil {
			return nil, err
		}
		readings = append(readings, rd)
	}
	return readings, rows.Err()
}

func (r *PgReadingRepository) LatestByUser(ctx context.Context, userID string) (*model.Reading, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+readingSelectCols+` FROM readings WHERE user_id = $1 ORDER BY ts DESC LIMIT 1`,
		userID)
	return scanReading(row.Scan)
}

func (r *PgReadingRepository) LatestTwoByUser(ctx context.Context, userID string) ([]*model.Reading, error) {
	return r.ListByUser(ctx, userID, 2)
}
