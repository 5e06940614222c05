package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/airwell/backend/internal/model"
	"github.com/airwell/backend/internal/repository"
	"github.com/airwell/backend/internal/service"
	"github.com/airwell/backend/pkg/auth"
)

// ReadingHandler serves reading submission, simulation, and history.
type ReadingHandler struct {
	readingService   service.ReadingService
	simulatorService service.SimulatorService
}

func NewReadingHandler(readingService service.ReadingService, simulatorService service.SimulatorService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService, simulatorService: simulatorService}
}

type createReadingRequest struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Temperature float64    `json:"temperature"`
	Humidity    float64    `json:"humidity"`
	CO2         float64    `json:"co2"`
	PM25        float64    `json:"pm25"`
	PM10        float64    `json:"pm10"`
	TVOC        float64    `json:"tvoc"`
}

// validate rejects negative concentrations. Temperature is exempt; indoor
// temperatures below zero are unusual but physical.
func (req *createReadingRequest) validate() bool {
	return req.Humidity >= 0 && req.CO2 >= 0 && req.PM25 >= 0 && req.PM10 >= 0 && req.TVOC >= 0
}

// Create handles POST /api/readings.
func (h *ReadingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req createReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_request"})
		return
	}
	if !req.validate() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "negative_value"})
		return
	}

	reading := &model.Reading{
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		CO2:         req.CO2,
		PM25:        req.PM25,
		PM10:        req.PM10,
		TVOC:        req.TVOC,
	}
	if req.Timestamp != nil {
		reading.Timestamp = *req.Timestamp
	}

	stored, err := h.readingService.Add(r.Context(), userID, reading)
	if err != nil {
		slog.Error("add reading failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(stored)
}

// Simulate handles POST /api/readings/simulate.
func (h *ReadingHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	reading, err := h.simulatorService.GenerateVirtualReading(r.Context(), userID)
	if err != nil {
		slog.Error("simulate reading failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(reading)
}

// List handles GET /api/readings?limit=N.
func (h *ReadingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_limit"})
			return
		}
		limit = n
	}

	readings, err := h.readingService.List(r.Context(), userID, limit)
	if err != nil {
		slog.Error("list readings failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	// Render a nil slice as an empty array.
	if readings == nil {
		readings = []*model.Reading{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]*model.Reading{"readings": readings})
}

// Latest handles GET /api/readings/latest.
func (h *ReadingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	reading, err := h.readingService.Latest(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "no_readings"})
			return
		}
		slog.Error("latest reading failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reading)
}
