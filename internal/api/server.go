// Package api serves the filtered well views over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/wellplay/internal/dashboard"
	"github.com/sells-group/wellplay/internal/dataset"
	"github.com/sells-group/wellplay/internal/filter"
	"github.com/sells-group/wellplay/internal/model"
)

// Snapshot is an immutable enriched dataset shared by all requests.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Wells    []model.EnrichedWell
	Sources  []*dataset.LoadStats
}

// NewSnapshot stamps wells with a fresh snapshot ID.
func NewSnapshot(wells []model.EnrichedWell, sources []*dataset.LoadStats) *Snapshot {
	return &Snapshot{
		ID:       uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Wells:    wells,
		Sources:  sources,
	}
}

// Defaults for record pagination.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Config configures a Server.
type Config struct {
	AllowedOrigins []string
	Seed           uint64
	Defaults       model.FilterCriteria
	TopOperators   filter.TopOperatorOptions
	Dashboard      dashboard.Options
	RequestTimeout time.Duration
}

// Server answers dashboard queries against one snapshot. Requests never
// mutate the snapshot; each runs its own filter over it.
type Server struct {
	snap    *Snapshot
	cfg     Config
	metrics *metrics
	router  chi.Router
}

// New builds a Server and its routes.
func New(snap *Snapshot, cfg Config) *Server {
	if cfg.Seed == 0 {
		cfg.Seed = filter.DefaultSeed
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{snap: snap, cfg: cfg, metrics: newMetrics()}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.metrics.middleware)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		r.Use(middleware.AllowContentType("application/json"))
		r.Get("/options", s.handleOptions)
		r.Post("/views", s.handleViews)
		r.Post("/records", s.handleRecords)
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("api: shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("api: starting server",
		zap.String("addr", addr),
		zap.String("snapshot_id", s.snap.ID),
		zap.Int("wells", len(s.snap.Wells)),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "api: listen")
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
