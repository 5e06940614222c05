package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/airwell/backend/internal/service"
	"github.com/airwell/backend/pkg/auth"
)

// ReportHandler serves the derived AQI report.
type ReportHandler struct {
	readingService service.ReadingService
}

func NewReportHandler(readingService service.ReadingService) *ReportHandler {
	return &ReportHandler{readingService: readingService}
}

// Get handles GET /api/report. A user with no readings gets an Unknown
// report with a null score rather than an error; the frontend decides how
// to render "no data yet".
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	report, err := h.readingService.Report(r.Context(), userID)
	if err != nil {
		slog.Error("report failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}
