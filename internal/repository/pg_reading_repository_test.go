package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/airwell/backend/internal/model"
)

func createTestUser(ctx context.Context, t *testing.T, users *PgUserRepository) *model.User {
	t.Helper()
	unique := fmt.Sprintf("%d", time.Now().UnixNano())
	user := &model.User{
		Username:     fmt.Sprintf("reader-%s", unique),
		Email:        fmt.Sprintf("reader-%s@example.com", unique),
		PasswordHash: "h",
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestPgReadingRepository_CreateAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := testPool(t)
	users := NewPgUserRepository(pool)
	readings := NewPgReadingRepository(pool)

	user := createTestUser(ctx, t, users)

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		rd := &model.Reading{
			UserID:      user.ID,
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Temperature: 21.5,
			Humidity:    45.0,
			CO2:         600,
			PM25:        float64(10 + i),
			PM10:        25.0,
			TVOC:        120,
		}
		if err := readings.Create(ctx, rd); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if rd.ID == "" {
			t.Error("expected ID to be set after Create")
		}
	}

	list, err := readings.ListByUser(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 readings, got %d", len(list))
	}
	// Newest first.
	if list[0].PM25 != 12 || list[2].PM25 != 10 {
		t.Errorf("expected descending order, got pm25 %v, %v, %v",
			list[0].PM25, list[1].PM25, list[2].PM25)
	}

	limited, err := readings.ListByUser(ctx, user.ID, 2)
	if err != nil {
		t.Fatalf("ListByUser with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 readings, got %d", len(limited))
	}
}

func TestPgReadingRepository_Latest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := testPool(t)
	users := NewPgUserRepository(pool)
	readings := NewPgReadingRepository(pool)

	user := createTestUser(ctx, t, users)

	if _, err := readings.LatestByUser(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty history, got %v", err)
	}

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, pm25 := range []float64{8.0, 14.5} {
		rd := &model.Reading{
			UserID:      user.ID,
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Temperature: 22.0,
			Humidity:    50.0,
			CO2:         550,
			PM25:        pm25,
			PM10:        30.0,
			TVOC:        90,
		}
		if err := readings.Create(ctx, rd); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	latest, err := readings.LatestByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("LatestByUser failed: %v", err)
	}
	if latest.PM25 != 14.5 {
		t.Errorf("expected latest pm25 14.5, got %v", latest.PM25)
	}

	two, err := readings.LatestTwoByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("LatestTwoByUser failed: %v", err)
	}
	if len(two) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(two))
	}
	if two[0].PM25 != 14.5 || two[1].PM25 != 8.0 {
		t.Errorf("expected [14.5, 8.0], got [%v, %v]", two[0].PM25, two[1].PM25)
	}
}
