package handler

import (
	"net/http"

	"badgetrack/pkg/database"
	"badgetrack/pkg/logger"
	"badgetrack/pkg/redis"
)

type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
	log   *logger.Logger
}

func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, log: log}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":   "ok",
		"database": "ok",
		"redis":    "ok",
	}
	code := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		h.log.WithError(err).Error("Database health check failed")
		status["status"] = "degraded"
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			h.log.WithError(err).Warn("Redis health check failed")
			status["redis"] = "unavailable"
		}
	} else {
		status["redis"] = "disabled"
	}

	respondJSON(w, code, status)
}
