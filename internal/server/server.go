package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/horizonfin/horizon/internal/advisory"
	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/config"
	"github.com/horizonfin/horizon/internal/storage"
)

// Version is the API version reported by the welcome endpoint.
const Version = "1.0.0"

// Server wires the profile store, the calculation engine and the advisory
// backend behind the HTTP API.
type Server struct {
	store   *storage.Store
	engine  *calculation.Engine
	advisor advisory.Advisor
	parser  *config.InputParser
	cfg     config.Service
	log     zerolog.Logger
}

// New assembles a server from its dependencies.
func New(cfg config.Service, store *storage.Store, engine *calculation.Engine, advisor advisory.Advisor, log zerolog.Logger) *Server {
	if advisor == nil {
		advisor = advisory.Disabled{}
	}
	return &Server{
		store:   store,
		engine:  engine,
		advisor: advisor,
		parser:  config.NewInputParser(),
		cfg:     cfg,
		log:     log,
	}
}

// Router builds the chi router with the full route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleCreateProfile)
			r.Get("/email/{email}", s.handleGetProfileByEmail)
			r.Route("/{profileID}", func(r chi.Router) {
				r.Get("/", s.handleGetProfile)
				r.Put("/", s.handleUpdateProfile)
				r.Delete("/", s.handleDeleteProfile)
				r.Post("/clone", s.handleCloneProfile)
			})
		})

		r.Route("/retirement", func(r chi.Router) {
			r.Get("/status", s.handleRetirementStatus)
			r.Post("/calculate", s.handleCalculate)
			r.Post("/scenario", s.handleScenario)
			r.Get("/readiness/{profileID}", s.handleReadiness)
			r.Post("/required-savings", s.handleRequiredSavings)
		})

		r.Post("/assist", s.handleAssist)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.ListenAddr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.log.Info().Msg("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

// requestLogger emits one structured log line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
