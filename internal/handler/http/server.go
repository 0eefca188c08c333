package http

import (
	"LinkRewards-Backend/internal/repository"
	"LinkRewards-Backend/internal/service"
	"encoding/json"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server wires the HTTP handlers onto a mux.
type Server struct {
	linksHandler    *LinksHandler
	redirectHandler *RedirectHandler
	statsHandler    *StatsHandler
	healthHandler   *HealthHandler
	log             *zap.Logger
}

// NewServer creates a new HTTP server.
func NewServer(
	storage repository.Storage,
	registrar *service.Registrar,
	redirector *service.Redirector,
	stats *service.StatsService,
	processor ProcessorStats,
	log *zap.Logger,
) *Server {
	return &Server{
		linksHandler:    NewLinksHandler(registrar, log),
		redirectHandler: NewRedirectHandler(redirector, log),
		statsHandler:    NewStatsHandler(stats, log),
		healthHandler:   NewHealthHandler(storage, processor, log),
		log:             log,
	}
}

// SetupRoutes configures the routes.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/links", s.withCORS(s.linksHandler.CreateLink))
	mux.HandleFunc("/stats", s.withCORS(s.statsHandler.GetStats))

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Redirect catch-all must be registered last.
	mux.HandleFunc("/", s.redirectHandler.HandleRedirect)

	return mux
}

// withCORS adds CORS headers to a handler.
func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		handler(w, r)
	}
}

// Helper functions shared by the handlers.

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
