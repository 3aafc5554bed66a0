package httpapi

import (
	"net/http"
	"time"

	"rfid-access/backend/internal/config"
	"rfid-access/backend/internal/metrics"
	"rfid-access/backend/internal/store"

	"github.com/prometheus/client_golang/prometheus"
)

type Server struct {
	cfg        config.Config
	store      store.Store
	issuer     *TokenIssuer
	mux        *http.ServeMux
	metrics    *metrics.Collector
	registry   *prometheus.Registry
	scanLimits *scanLimiter
}

func NewServer(cfg config.Config, st store.Store) *Server {
	registry := prometheus.NewRegistry()
	s := &Server{
		cfg:        cfg,
		store:      st,
		issuer:     NewTokenIssuer(cfg.JWTSecret),
		mux:        http.NewServeMux(),
		metrics:    metrics.NewCollector(registry),
		registry:   registry,
		scanLimits: newScanLimiter(cfg.ScanRatePerSec, cfg.ScanBurst),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = recoverMiddleware(h)
	h = requestIDMiddleware(h)
	h = s.loggingMiddleware(h)
	return h
}

// Close stops the background goroutines the server owns.
func (s *Server) Close() {
	s.scanLimits.Stop()
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	s.mux.HandleFunc("/api/signup", s.handleSignup)
	s.mux.HandleFunc("/api/login", s.handleLogin)
	s.mux.HandleFunc("/api/profile", s.requireAuth(s.handleProfile))

	s.mux.HandleFunc("/api/users", s.requireAuth(s.requireAdmin(s.handleUsers)))
	s.mux.HandleFunc("/api/users/{id}", s.requireAuth(s.requireAdmin(s.handleUserDelete)))

	s.mux.HandleFunc("/api/rfid/scan", s.handleScan)

	s.mux.Handle("/metrics", metrics.Handler(s.registry))

	s.mux.HandleFunc("/", s.handleNotFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
