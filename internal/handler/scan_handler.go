package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"badgetrack/internal/domain"
	"badgetrack/internal/service"
	"badgetrack/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type ScanHandler struct {
	scanService *service.ScanService
	log         *logger.Logger
}

func NewScanHandler(scanService *service.ScanService, log *logger.Logger) *ScanHandler {
	return &ScanHandler{scanService: scanService, log: log}
}

// RecordScan handles POST /scan/{badge_code}
func (h *ScanHandler) RecordScan(w http.ResponseWriter, r *http.Request) {
	badgeCode := chi.URLParam(r, "badge_code")

	var req domain.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.scanService.RecordScan(r.Context(), badgeCode, &req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetScanData handles GET /scan
func (h *ScanHandler) GetScanData(w http.ResponseWriter, r *http.Request) {
	query := &domain.ScanDataQuery{
		MinFrequency:     0,
		MaxFrequency:     math.MaxInt64,
		ActivityCategory: strings.TrimSpace(r.URL.Query().Get("activity_category")),
	}

	if raw := r.URL.Query().Get("min_frequency"); raw != "" {
		min, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "min_frequency and max_frequency must be valid numbers.")
			return
		}
		query.MinFrequency = min
	}
	if raw := r.URL.Query().Get("max_frequency"); raw != "" {
		max, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "min_frequency and max_frequency must be valid numbers.")
			return
		}
		query.MaxFrequency = max
	}

	results, err := h.scanService.GetScanData(r.Context(), query)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// GetScanTimeline handles GET /scan/timeline
func (h *ScanHandler) GetScanTimeline(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := &domain.TimelineQuery{
		ActivityName: params.Get("activity_name"),
		Interval:     params.Get("interval"),
		EndTime:      time.Now(),
	}
	if query.Interval == "" {
		query.Interval = "hour"
	}

	if raw := params.Get("start_time"); raw != "" {
		start, err := parseTimestamp(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format for start_time or end_time.")
			return
		}
		query.StartTime = &start
	}
	if raw := params.Get("end_time"); raw != "" {
		end, err := parseTimestamp(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date format for start_time or end_time.")
			return
		}
		query.EndTime = end
	}

	buckets, err := h.scanService.GetScanTimeline(r.Context(), query)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	// No data in range is informational, not a hard error, and uses a
	// message body instead of an error body.
	if len(buckets) == 0 {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"message": "No scan data found for this activity within the given time range.",
		})
		return
	}

	respondJSON(w, http.StatusOK, buckets)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
