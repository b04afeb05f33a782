// Package web serves the browser dashboard over one shared ledger.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/perftrack/internal/config"
	"github.com/theirongolddev/perftrack/internal/ledger"
	"github.com/theirongolddev/perftrack/internal/report"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Config holds server configuration.
type Config struct {
	Addr   string
	Log    zerolog.Logger
	Ledger *ledger.Ledger
	Plan   config.PlanConfig
}

// Server is the dashboard HTTP server. The ledger it holds outlives every
// request; handlers take mu because net/http serves requests concurrently.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	tmpl    *template.Template
	metrics *metrics

	mu     sync.Mutex
	ledger *ledger.Ledger
	plan   config.PlanConfig
}

type metrics struct {
	registry *prometheus.Registry
	saves    *prometheus.CounterVec
}

// New creates a new dashboard server.
func New(cfg Config) (*Server, error) {
	if cfg.Ledger == nil {
		return nil, errors.New("web: nil ledger")
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "web").Logger(),
		tmpl:   tmpl,
		ledger: cfg.Ledger,
		plan:   cfg.Plan,
	}
	s.metrics = s.newMetrics()

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

func (s *Server) newMetrics() *metrics {
	reg := prometheus.NewRegistry()

	saves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "perftrack_record_saves_total",
		Help: "Record submissions from the dashboard by outcome.",
	}, []string{"result"})

	recorded := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "perftrack_months_recorded",
		Help: "Number of months with a profit record.",
	}, func() float64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		return float64(s.ledger.Len())
	})

	cumulative := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "perftrack_cumulative_profit",
		Help: "Sum of actual profit over all recorded months.",
	}, func() float64 {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.ledger.Recalculate().CumulativeProfit.InexactFloat64()
	})

	reg.MustRegister(saves, recorded, cumulative)
	return &metrics{registry: reg, saves: saves}
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Post("/records", s.handleSaveRecord)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
	})

	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.server.Addr).Msg("dashboard listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down dashboard")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("dashboard http server: %w", err)
	}
}

// snapshot builds the report under the lock.
func (s *Server) snapshot() report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.Build(s.ledger, s.plan)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}
