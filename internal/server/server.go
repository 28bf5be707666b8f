// Package server exposes detection and rewriting over HTTP, with a
// WebSocket feed of completed runs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/cache"
	"github.com/zxinyun/ai-humanizer-zh/internal/config"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
	"github.com/zxinyun/ai-humanizer-zh/internal/logger"
	"github.com/zxinyun/ai-humanizer-zh/internal/preserve"
	"github.com/zxinyun/ai-humanizer-zh/internal/ratelimit"
	"github.com/zxinyun/ai-humanizer-zh/internal/web"
	"github.com/zxinyun/ai-humanizer-zh/internal/websocket"
)

// Version is reported by /info and the CLI
var Version = "0.1.0"

const (
	statusInterval  = 30 * time.Second
	cleanupInterval = time.Minute
	clientMaxIdle   = 10 * time.Minute
)

// defaults are the rewrite options used when a request leaves them out.
// They are swapped as a whole on config reload.
type defaults struct {
	options  humanize.Options
	preserve []string
}

// Server represents the HTTP API server
type Server struct {
	config   *config.Config
	logger   *logger.Logger
	runner   preserve.Runner
	detector *cache.Detector
	cache    cache.DetectionCache
	limiter  *ratelimit.Limiter
	router   *mux.Router
	server   *http.Server
	wsHub    *websocket.Hub

	defaults   atomic.Pointer[defaults]
	started    time.Time
	runs       atomic.Int64
	detections atomic.Int64
}

// Option customizes a Server
type Option func(*Server)

// WithRunner replaces the rewrite pipeline
func WithRunner(r preserve.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithDetectionCache uses c instead of connecting to the configured Redis
func WithDetectionCache(c cache.DetectionCache) Option {
	return func(s *Server) { s.cache = c }
}

// New creates a new server instance
func New(cfg *config.Config, log *logger.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}

	s := &Server{
		config:  cfg,
		logger:  log.WithComponent("server"),
		router:  mux.NewRouter(),
		started: time.Now(),
		limiter: ratelimit.New(ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.runner == nil {
		s.runner = humanize.New(humanize.WithLogger(log.WithComponent("humanize").Logger))
	}

	if s.cache == nil && cfg.Cache.Enabled {
		rc, err := cache.NewRedisCache(&cache.Config{
			RedisURL:       cfg.Cache.RedisURL,
			MaxConnections: cfg.Cache.MaxConnections,
			MinIdleConns:   cfg.Cache.MinIdleConns,
			DefaultTTL:     cfg.Cache.DefaultTTL,
			KeyPrefix:      cfg.Cache.KeyPrefix,
		}, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create detection cache: %w", err)
		}
		s.cache = rc
	}
	s.detector = cache.NewDetector(s.cache, log.WithComponent("cache").Logger)

	if err := s.UpdateDefaults(cfg.Humanize); err != nil {
		return nil, err
	}

	ws := cfg.WebSocket
	s.wsHub = websocket.NewHub(&websocket.HubConfig{
		BroadcastRuns:        ws.Events.BroadcastRuns,
		BroadcastDetections:  ws.Events.BroadcastDetections,
		BroadcastSystem:      ws.Events.BroadcastSystem,
		BroadcastConnections: ws.Events.BroadcastConnections,
		Username:             ws.Username,
		Password:             ws.Password,
		AllowedOrigins:       ws.AllowedOrigins,
		ReadBufferSize:       ws.ReadBufferSize,
		WriteBufferSize:      ws.WriteBufferSize,
		PingInterval:         ws.PingInterval,
		PongTimeout:          ws.PongTimeout,
		WriteTimeout:         ws.WriteTimeout,
		MaxMessageSize:       ws.MaxMessageSize,
	}, log.Logger)

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/info", s.handleInfo).Methods(http.MethodGet)

	if s.config.WebSocket.Enabled {
		path := s.config.WebSocket.Path
		if path == "" {
			path = "/ws"
		}
		s.router.HandleFunc(path, s.wsHub.HandleWebSocket).Methods(http.MethodGet)
		s.router.HandleFunc("/", web.ServeDashboard).Methods(http.MethodGet)
		s.router.HandleFunc("/dashboard", web.ServeDashboard).Methods(http.MethodGet)
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/detect", s.handleDetect).Methods(http.MethodPost)
	api.HandleFunc("/humanize", s.handleHumanize).Methods(http.MethodPost)
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the WebSocket hub for broadcasting events
func (s *Server) Hub() *websocket.Hub {
	return s.wsHub
}

// UpdateDefaults swaps the options applied when a request omits them
func (s *Server) UpdateDefaults(h config.HumanizeConfig) error {
	style, err := humanize.ParseStyle(h.Style)
	if err != nil {
		return err
	}
	variability, err := humanize.ParseVariability(h.Variability)
	if err != nil {
		return err
	}

	s.defaults.Store(&defaults{
		options:  humanize.Options{Style: style, Variability: variability},
		preserve: append([]string(nil), h.Preserve...),
	})
	s.logger.Info("Default rewrite options set",
		zap.String("style", string(style)),
		zap.String("variability", string(variability)),
		zap.Int("preserve", len(h.Preserve)),
	)
	return nil
}

// Start serves until ctx is done or the listener fails
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting humanizer API server",
		zap.Int("port", s.config.Server.Port),
		zap.Bool("cache_enabled", s.detector.Enabled()),
		zap.Bool("rate_limit_enabled", s.config.RateLimit.Enabled),
		zap.Bool("websocket_enabled", s.config.WebSocket.Enabled),
	)

	go s.wsHub.Run(ctx)
	go s.limiter.StartCleanup(ctx, cleanupInterval, clientMaxIdle)
	go s.reportStatus(ctx, statusInterval)

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully stops the HTTP server and releases the cache
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping humanizer API server")
	err := s.server.Shutdown(ctx)
	if s.cache != nil {
		if cerr := s.cache.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close detection cache: %w", cerr)
		}
	}
	return err
}

func (s *Server) reportStatus(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.wsHub.BroadcastStatus(s.status())
		}
	}
}

func (s *Server) status() websocket.SystemStatusEvent {
	return websocket.SystemStatusEvent{
		Status:           "healthy",
		Uptime:           time.Since(s.started).Round(time.Second).String(),
		TotalRuns:        s.runs.Load(),
		TotalDetections:  s.detections.Load(),
		ConnectedClients: s.wsHub.ClientCount(),
		CacheEnabled:     s.detector.Enabled(),
	}
}
