package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/airwell/backend/internal/aqi"
	"github.com/airwell/backend/internal/service"
)

func TestReportHandler_Get_Success(t *testing.T) {
	score := 112
	mock := &mockReadingService{
		reportFunc: func(ctx context.Context, userID string) (*service.Report, error) {
			return &service.Report{
				Score:        &score,
				Category:     aqi.SensitiveGroups,
				Color:        "#FF7E00",
				Advisory:     "Use air purifier and avoid outdoor activity.",
				Alert:        true,
				AlertMessage: "AQI is 112 (Unhealthy for Sensitive Groups)",
			}, nil
		},
	}
	h := NewReportHandler(mock)

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/report", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp service.Report
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score == nil || *resp.Score != 112 {
		t.Errorf("expected score 112, got %v", resp.Score)
	}
	if resp.Category != aqi.SensitiveGroups {
		t.Errorf("unexpected category %q", resp.Category)
	}
	if !resp.Alert {
		t.Error("expected alert flag set")
	}
}

func TestReportHandler_Get_NoReadings(t *testing.T) {
	mock := &mockReadingService{
		reportFunc: func(ctx context.Context, userID string) (*service.Report, error) {
			return &service.Report{
				Category: aqi.Unknown,
				Color:    "#9AA0A6",
				Advisory: "Monitor conditions and stay safe.",
			}, nil
		},
	}
	h := NewReportHandler(mock)

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/report", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty history, got %d", rec.Code)
	}
	var resp struct {
		Score    *int   `json:"score"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score != nil {
		t.Errorf("expected null score, got %d", *resp.Score)
	}
	if resp.Category != "Unknown" {
		t.Errorf("expected Unknown, got %q", resp.Category)
	}
}

func TestReportHandler_Get_Unauthorized(t *testing.T) {
	h := NewReportHandler(&mockReadingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestReportHandler_Get_ServiceError(t *testing.T) {
	mock := &mockReadingService{
		reportFunc: func(ctx context.Context, userID string) (*service.Report, error) {
			return nil, errors.New("db error")
		},
	}
	h := NewReportHandler(mock)

	rec := httptest.NewRecorder()
	h.Get(rec, authedRequest(http.MethodGet, "/api/report", ""))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
