package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/integraph/integraph/engine/agent"
	"github.com/integraph/integraph/engine/auth"
	"github.com/integraph/integraph/engine/connector"
	"github.com/integraph/integraph/engine/field"
	"github.com/integraph/integraph/engine/process"
	"github.com/integraph/integraph/engine/schedule"
	"github.com/integraph/integraph/engine/task"
	"github.com/integraph/integraph/engine/transformation"
	"github.com/integraph/integraph/pkg/config"
	"github.com/integraph/integraph/pkg/logger"
)

// Repos bundles the repositories the HTTP layer depends on. The caller
// decides whether they are backed by postgres or the in-memory store.
type Repos struct {
	Agents          agent.Repository
	Processes       process.Repository
	Schedules       schedule.Repository
	Tasks           task.Repository
	Fields          field.Repository
	Connectors      connector.Repository
	Transformations transformation.Repository
	Users           auth.Repository
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server hosts the HTTP API.
type Server struct {
	cfg    *config.Config
	log    logger.Logger
	repos  Repos
	tokens *auth.TokenManager
	health HealthChecker
	router *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithHealthChecker wires a store health probe into the health endpoint.
func WithHealthChecker(hc HealthChecker) Option {
	return func(s *Server) { s.health = hc }
}

// NewServer assembles the router and its middleware chain.
func NewServer(cfg *config.Config, log logger.Logger, repos Repos, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		log:    log,
		repos:  repos,
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// Router exposes the assembled handler, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(s.log))
	if len(s.cfg.Server.CORSOrigins) > 0 {
		r.Use(CORSMiddleware(s.cfg.Server.CORSOrigins))
	}
	s.registerRoutes(r)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "healthy"}
	if s.health != nil {
		if err := s.health.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body = gin.H{"status": "unhealthy"}
		}
	}
	c.JSON(status, body)
}

// Run serves until the context is canceled, then drains in-flight
// requests within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
