package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"badgetrack/internal/domain"
	"badgetrack/internal/service"
	"badgetrack/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type ActivityHandler struct {
	activityService *service.ActivityService
	log             *logger.Logger
}

func NewActivityHandler(activityService *service.ActivityService, log *logger.Logger) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, log: log}
}

// Create handles POST /activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create activity")
		return
	}

	activity, err := h.activityService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

// List handles GET /activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	if activities == nil {
		activities = []*domain.Activity{}
	}
	respondJSON(w, http.StatusOK, activities)
}

// GetByID handles GET /activities/{id}
func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "Activity not found")
		return
	}

	detail, err := h.activityService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

// SetOneScanOnly handles PUT /activities/{activity_name}/one-scan
func (h *ActivityHandler) SetOneScanOnly(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "activity_name")

	var req domain.OneScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "one_scan_only must be a boolean value.")
		return
	}

	resp, err := h.activityService.SetOneScanOnly(r.Context(), name, &req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
