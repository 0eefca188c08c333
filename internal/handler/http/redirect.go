package http

import (
	"LinkRewards-Backend/internal/repository"
	"LinkRewards-Backend/internal/service"
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// RedirectHandler handles short code redirects.
type RedirectHandler struct {
	redirector *service.Redirector
	log        *zap.Logger
}

// NewRedirectHandler creates a new redirect handler.
func NewRedirectHandler(redirector *service.Redirector, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		redirector: redirector,
		log:        log,
	}
}

// HandleRedirect resolves a short code and issues a 302 to the target URL.
//
//	@Summary		Redirect to the target URL
//	@Description	Resolve a short code, record the click and redirect. The fraud check runs in the background.
//	@Tags			Redirect
//	@Param			code	path	string	true	"Short code"
//	@Success		302		"Redirect to the target URL"
//	@Failure		404		{object}	map[string]string	"Unknown short code"
//	@Router			/{code} [get]
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/")

	// System endpoints are registered on the mux before this catch-all;
	// anything that still looks like one is not a short code.
	if code == "" || strings.Contains(code, "/") {
		http.NotFound(w, r)
		return
	}

	clickCtx := service.ClickContext{
		UserAgent: r.UserAgent(),
		IPAddress: extractIPAddress(r),
	}

	targetURL, err := h.redirector.ResolveAndTrack(r.Context(), code, clickCtx)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			h.log.Debug("short code not found", zap.String("short_code", code))
			http.NotFound(w, r)
			return
		}
		h.log.Error("failed to process redirect", zap.String("short_code", code), zap.Error(err))
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.log.Debug("redirecting",
		zap.String("short_code", code),
		zap.String("target_url", targetURL))

	http.Redirect(w, r, targetURL, http.StatusFound)
}

// extractIPAddress extracts the client IP, honoring proxy headers.
func extractIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For may hold a comma-separated chain
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
