package http

import (
	"LinkRewards-Backend/internal/service"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// StatsHandler handles the analytics endpoint.
type StatsHandler struct {
	stats *service.StatsService
	log   *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(stats *service.StatsService, log *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats: stats,
		log:   log,
	}
}

// StatsResponse is the paginated analytics response body.
type StatsResponse struct {
	Data []service.LinkStats `json:"data"`
	Meta service.PageMeta    `json:"meta"`
}

// GetStats returns paginated per-link totals and monthly earnings.
//
//	@Summary		Per-link analytics
//	@Description	Paginated per-link click totals and monthly earning breakdowns, newest links first.
//	@Tags			Stats
//	@Produce		json
//	@Param			page	query		int	false	"Page number (>= 1)"
//	@Param			limit	query		int	false	"Page size (1-100)"
//	@Success		200		{object}	StatsResponse
//	@Failure		400		{object}	map[string]string	"Out-of-range pagination"
//	@Router			/stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, ok := queryInt(r, "page", defaultPage)
	if !ok || page < 1 {
		writeError(w, "page must be an integer >= 1", http.StatusBadRequest)
		return
	}

	limit, ok := queryInt(r, "limit", defaultLimit)
	if !ok || limit < 1 || limit > maxLimit {
		writeError(w, "limit must be an integer between 1 and 100", http.StatusBadRequest)
		return
	}

	statsPage, err := h.stats.GetStats(r.Context(), page, limit)
	if err != nil {
		h.log.Error("failed to compute stats", zap.Int("page", page), zap.Int("limit", limit), zap.Error(err))
		writeError(w, "Failed to retrieve stats", http.StatusInternalServerError)
		return
	}

	writeJSON(w, StatsResponse{
		Data: statsPage.Entries,
		Meta: statsPage.Meta,
	}, http.StatusOK)
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
