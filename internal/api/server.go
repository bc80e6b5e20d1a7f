package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/everbloom/weddings/internal/api/handler"
	mw "github.com/everbloom/weddings/internal/api/middleware"
	"github.com/everbloom/weddings/internal/config"
	"github.com/everbloom/weddings/internal/core"
	"github.com/everbloom/weddings/internal/dns"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	resolver := dns.NewNetResolver(cfg.DNSLookupTimeout)
	tokens := core.NewTokenSource(cfg.TokenSecret())
	services := core.NewServices(pool, resolver, tokens, cfg.SiteDomainSuffix, core.DomainSettings{
		CNAMETarget:       cfg.PlatformCNAMETarget,
		LBAddress:         cfg.PlatformLBAddress,
		ReservedSuffixes:  []string{cfg.SiteDomainSuffix, cfg.PlatformCNAMETarget},
		MaxVerifyAttempts: cfg.MaxVerifyAttempts,
		VerifyBudget:      cfg.VerifyBudget,
	})

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		pool:     pool,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.pool))

		// Weddings
		wedding := handler.NewWedding(s.services)
		r.Post("/weddings", wedding.Create)
		r.Get("/weddings/{id}", wedding.Get)

		// Custom domains
		customDomain := handler.NewCustomDomain(s.services)
		r.Get("/weddings/{weddingID}/custom-domain", customDomain.Get)
		r.Post("/weddings/{weddingID}/custom-domain", customDomain.Attach)
		r.Delete("/weddings/{weddingID}/custom-domain", customDomain.Delete)
		r.Post("/weddings/{weddingID}/custom-domain/verify", customDomain.Verify)
		r.Post("/weddings/{weddingID}/custom-domain/certificate", customDomain.ConfirmCertificate)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
