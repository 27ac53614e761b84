package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"sortbench/internal/benchmark"
	"sortbench/internal/telemetry"
)

// DefaultMaxSize caps datasets when Config.MaxSize is unset.
const DefaultMaxSize = 100000

// Config holds the server settings and the defaults applied to API runs.
type Config struct {
	Host string
	Port int
	// MaxSize caps every requested or uploaded dataset.
	MaxSize int
	// RatePerMinute limits benchmark runs; zero disables the limit.
	RatePerMinute int
	// Sizes are used by /api/run-multiple when the request names none.
	Sizes []int
	// Options are the base engine options; requests may override mode and algorithms.
	Options benchmark.Options
}

// RunnerFactory builds the runner for one request.
type RunnerFactory func(source benchmark.Source, opts benchmark.Options) benchmark.Runner

// Server exposes the benchmark over HTTP.
type Server struct {
	cfg       Config
	source    benchmark.Source
	metrics   *telemetry.Metrics
	limiter   *rate.Limiter
	newRunner RunnerFactory
	router    *gin.Engine
}

// NewServer creates a new web server. source supplies generated datasets;
// metrics may be nil.
func NewServer(cfg Config, source benchmark.Source, metrics *telemetry.Metrics) *Server {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	s := &Server{
		cfg:     cfg,
		source:  source,
		metrics: metrics,
		newRunner: func(src benchmark.Source, opts benchmark.Options) benchmark.Runner {
			return benchmark.NewEngine(src, opts)
		},
	}
	if cfg.RatePerMinute > 0 {
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}
	s.router = s.setupRoutes()
	return s
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) setupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.GET("/algorithms", s.handleAlgorithms)
		api.POST("/generate", s.handleGenerate)
		api.POST("/upload", s.handleUpload)

		runs := api.Group("")
		runs.Use(s.rateLimit())
		runs.POST("/run", s.handleRun)
		runs.POST("/run-multiple", s.handleRunMultiple)
	}
	return router
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.LogInfof("Starting benchmark API on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Shutting down benchmark API")
		return srv.Shutdown(shutdownCtx)
	}
}
