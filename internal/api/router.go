package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/tron-block-api/internal/api/handlers"
	"github.com/thanhnp/tron-block-api/internal/api/middleware"
	"github.com/thanhnp/tron-block-api/internal/metrics"
)

// RouteRegistrar is a group of routes mounted on the engine
type RouteRegistrar interface {
	RegisterRoutes(r gin.IRouter)
}

// Dependencies are the collaborators the HTTP surface is built from.
// Metrics may be nil to disable instrumentation and /metrics.
type Dependencies struct {
	Client    handlers.BlockFetcher
	Processor handlers.BlockProcessor
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Version   string
}

// Router wraps the Gin router with handlers
type Router struct {
	engine  *gin.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRouter creates a new Router with all route groups registered
func NewRouter(deps Dependencies) *Router {
	gin.SetMode(gin.ReleaseMode)

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		engine:  gin.New(),
		logger:  logger.With("component", "api"),
		metrics: deps.Metrics,
	}

	r.setupMiddleware()
	r.Register(
		handlers.NewHealthHandler(deps.Client, deps.Version),
		handlers.NewBlockHandler(deps.Client, deps.Processor, r.logger),
	)
	if deps.Metrics != nil {
		r.Register(metricsRoute{deps.Metrics})
	}

	return r
}

// setupMiddleware configures middleware
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
	if r.metrics != nil {
		r.engine.Use(middleware.Metrics(r.metrics))
	}
}

// Register mounts route groups on the engine in order
func (r *Router) Register(groups ...RouteRegistrar) {
	for _, g := range groups {
		g.RegisterRoutes(r.engine)
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

type metricsRoute struct {
	metrics *metrics.Metrics
}

func (m metricsRoute) RegisterRoutes(r gin.IRouter) {
	r.GET("/metrics", gin.WrapH(m.metrics.Handler()))
}
