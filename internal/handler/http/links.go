package http

import (
	"LinkRewards-Backend/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// LinksHandler handles link registration.
type LinksHandler struct {
	registrar *service.Registrar
	log       *zap.Logger
}

// NewLinksHandler creates a new links handler.
func NewLinksHandler(registrar *service.Registrar, log *zap.Logger) *LinksHandler {
	return &LinksHandler{
		registrar: registrar,
		log:       log,
	}
}

// CreateLinkRequest is the link registration request body.
type CreateLinkRequest struct {
	TargetURL string `json:"targetUrl"`
}

// CreateLinkResponse is the link registration response body.
type CreateLinkResponse struct {
	ShortURL  string `json:"shortUrl"`
	ShortCode string `json:"shortCode"`
	TargetURL string `json:"targetUrl"`
}

// CreateLink registers a short link for a target URL.
//
//	@Summary		Create a short link
//	@Description	Register a target URL and get a short link. Registering the same URL again returns the existing link.
//	@Tags			Links
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateLinkRequest	true	"Link creation request"
//	@Success		201		{object}	CreateLinkResponse	"Link created (or already registered)"
//	@Failure		400		{object}	map[string]string	"Invalid or missing URL"
//	@Failure		500		{object}	map[string]string	"Internal error"
//	@Router			/links [post]
func (h *LinksHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid create link request", zap.Error(err))
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if !isValidTargetURL(req.TargetURL) {
		writeError(w, "targetUrl must be a valid absolute http(s) URL", http.StatusBadRequest)
		return
	}

	link, err := h.registrar.RegisterLink(r.Context(), req.TargetURL)
	if err != nil {
		if errors.Is(err, service.ErrExhaustedRetries) {
			h.log.Error("short code space exhausted for request", zap.Error(err))
			writeError(w, "Failed to allocate a short code", http.StatusInternalServerError)
			return
		}
		h.log.Error("failed to register link", zap.Error(err))
		writeError(w, "Failed to create link", http.StatusInternalServerError)
		return
	}

	response := CreateLinkResponse{
		ShortURL:  h.registrar.ShortURL(link),
		ShortCode: link.ShortCode,
		TargetURL: link.TargetURL,
	}

	writeJSON(w, response, http.StatusCreated)
}

// isValidTargetURL accepts absolute http(s) URLs with a host.
func isValidTargetURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}

	u, err := url.ParseRequestURI(trimmed)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
