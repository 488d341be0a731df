// Package api wires middleware, controllers and routes onto the gin
// engine.
package api

import (
	"biblio/api/book"
	"biblio/api/circulation"
	"biblio/api/health"
	"biblio/api/member"
	"biblio/api/middleware"
	"biblio/api/report"
	"biblio/config"

	"github.com/gin-gonic/gin"
)

// Router holds the engine and the controllers it routes to.
type Router struct {
	engine                *gin.Engine
	config                *config.Config
	healthController      *health.Controller
	memberController      *member.Controller
	bookController        *book.Controller
	circulationController *circulation.Controller
	reportController      *report.Controller
}

// NewRouter builds the engine with the middleware chain applied in
// order: request id, recovery, logging, CORS, rate limit.
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	memberController *member.Controller,
	bookController *book.Controller,
	circulationController *circulation.Controller,
	reportController *report.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:                engine,
		config:                cfg,
		healthController:      healthController,
		memberController:      memberController,
		bookController:        bookController,
		circulationController: circulationController,
		reportController:      reportController,
	}
}

// SetupRoutes registers every controller under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.memberController.RegisterRoutes(apiGroup)
		r.bookController.RegisterRoutes(apiGroup)
		r.circulationController.RegisterRoutes(apiGroup)
		r.reportController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
