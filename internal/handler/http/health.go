package http

import (
	"LinkRewards-Backend/internal/repository"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ProcessorStats exposes reward processor counters to the health surface.
type ProcessorStats interface {
	Stats() map[string]interface{}
}

// HealthHandler handles health checks.
type HealthHandler struct {
	storage   repository.Storage
	processor ProcessorStats
	log       *zap.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(storage repository.Storage, processor ProcessorStats, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		storage:   storage,
		processor: processor,
		log:       log,
	}
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status         string                 `json:"status"`
	Timestamp      time.Time              `json:"timestamp"`
	DatabaseStatus string                 `json:"database_status"`
	Uptime         string                 `json:"uptime,omitempty"`
	RewardPipeline map[string]interface{} `json:"reward_pipeline,omitempty"`
}

var startTime = time.Now()

// Health reports service liveness and a storage probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Probe storage with a lookup that is expected to miss.
	dbStatus := "healthy"
	_, err := h.storage.GetLinkByShortCode(ctx, "health-check")
	if err != nil && !errors.Is(err, repository.ErrCodeNotFound) {
		dbStatus = "unhealthy"
		h.log.Error("database health check failed", zap.Error(err))
	}

	status := "healthy"
	statusCode := http.StatusOK
	if dbStatus == "unhealthy" {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:         status,
		Timestamp:      time.Now(),
		DatabaseStatus: dbStatus,
		Uptime:         time.Since(startTime).String(),
	}
	if h.processor != nil {
		response.RewardPipeline = h.processor.Stats()
	}

	writeJSON(w, response, statusCode)
}
