// Package server serves the built manual over HTTP. Alongside the static
// site it exposes health and build status endpoints, an optional Prometheus
// metrics endpoint, and can rebuild the manual on a fixed schedule.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/refman/internal/config"
	"git.home.luguber.info/inful/refman/internal/logfields"
	"git.home.luguber.info/inful/refman/internal/metrics"
	"git.home.luguber.info/inful/refman/internal/site"
)

// Server hosts the manual and its operational endpoints on one listener.
type Server struct {
	cfg     *config.Config
	builder *site.Builder
	dir     string
	reg     *prom.Registry
	start   time.Time

	// baseCtx bounds rebuilds triggered outside a request lifetime. Run
	// replaces it with its own context.
	baseCtx context.Context

	mu   sync.RWMutex
	last *site.BuildReport

	building atomic.Bool
}

// New creates a server for the builder's output directory.
func New(cfg *config.Config, builder *site.Builder) *Server {
	return &Server{
		cfg:     cfg,
		builder: builder,
		dir:     builder.OutDir(),
		start:   time.Now(),
		baseCtx: context.Background(),
	}
}

// WithMetricsRegistry exposes reg on the configured metrics path.
func (s *Server) WithMetricsRegistry(reg *prom.Registry) *Server {
	s.reg = reg
	return s
}

// SetLastReport records the report surfaced by the status endpoints.
func (s *Server) SetLastReport(r *site.BuildReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r
}

func (s *Server) lastReport() *site.BuildReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Handler returns the complete route set wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.dir)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/build/status", s.handleBuildStatus)
	mux.HandleFunc("/api/build/trigger", s.handleBuildTrigger)
	if s.cfg.Serve.Metrics && s.reg != nil {
		mux.Handle(s.cfg.Serve.MetricsPath, metrics.HTTPHandler(s.reg))
	}
	return chain(slog.Default(), mux)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx

	// Bind before anything else starts so an occupied port fails fast.
	ln, err := net.Listen("tcp", s.cfg.Serve.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Serve.Addr, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	sched, err := s.startScheduler()
	if err != nil {
		_ = srv.Close()
		return err
	}

	slog.Info("Manual server listening",
		slog.String("addr", s.cfg.Serve.Addr),
		logfields.Dir(s.dir))

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		s.stopScheduler(sched)
		return fmt.Errorf("http server: %w", err)
	}

	s.stopScheduler(sched)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Manual server stopped")
	return nil
}

// startScheduler arms the periodic rebuild job. Returns nil when the
// configuration disables scheduling.
func (s *Server) startScheduler() (gocron.Scheduler, error) {
	interval := s.cfg.RebuildInterval()
	if interval == 0 {
		return nil, nil
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.runBuild("schedule") }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule periodic rebuild: %w", err)
	}
	sched.Start()
	slog.Info("Periodic rebuilds scheduled", slog.Duration("interval", interval))
	return sched, nil
}

func (s *Server) stopScheduler(sched gocron.Scheduler) {
	if sched == nil {
		return
	}
	if err := sched.Shutdown(); err != nil {
		slog.Warn("Scheduler shutdown error", logfields.Error(err))
	}
}

// runBuild serializes rebuilds. A trigger arriving while one runs is
// dropped; the running build already picks up the current sources.
func (s *Server) runBuild(reason string) {
	if !s.building.CompareAndSwap(false, true) {
		slog.Debug("Rebuild already running, skipping", slog.String("reason", reason))
		return
	}
	defer s.building.Store(false)

	slog.Info("Rebuilding manual", slog.String("reason", reason))
	report, err := s.builder.Build(s.baseCtx)
	if report != nil {
		s.SetLastReport(report)
	}
	if err != nil {
		slog.Warn("Rebuild failed", slog.String("reason", reason), logfields.Error(err))
	}
}
