package handler

import (
	"encoding/json"
	"net/http"

	"badgetrack/internal/domain"
	"badgetrack/internal/service"
	"badgetrack/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type FriendHandler struct {
	friendService *service.FriendService
	log           *logger.Logger
}

func NewFriendHandler(friendService *service.FriendService, log *logger.Logger) *FriendHandler {
	return &FriendHandler{friendService: friendService, log: log}
}

// ScanFriend handles POST /friends/scan/{badge_code}
func (h *FriendHandler) ScanFriend(w http.ResponseWriter, r *http.Request) {
	badgeCode := chi.URLParam(r, "badge_code")

	var req domain.FriendScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid or missing friend_badge_code.")
		return
	}

	resp, err := h.friendService.ScanFriend(r.Context(), badgeCode, &req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// ListScanned handles GET /friends/{badge_code}
func (h *FriendHandler) ListScanned(w http.ResponseWriter, r *http.Request) {
	badgeCode := chi.URLParam(r, "badge_code")

	friends, err := h.friendService.ListScanned(r.Context(), badgeCode)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, friends)
}
