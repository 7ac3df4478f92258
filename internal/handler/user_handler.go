package handler

import (
	"encoding/json"
	"net/http"

	"badgetrack/internal/domain"
	"badgetrack/internal/service"
	"badgetrack/pkg/logger"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	log         *logger.Logger
}

func NewUserHandler(userService *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{email}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.userService.Get(r.Context(), email)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update handles PUT /users/{email}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var patch domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), email, &patch)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// CheckIn handles POST /users/{email}/check-in
func (h *UserHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	resp, err := h.userService.CheckIn(r.Context(), email)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// CheckOut handles POST /users/{email}/check-out
func (h *UserHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	resp, err := h.userService.CheckOut(r.Context(), email)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
