// Package health exposes the liveness endpoint.
package health

import (
	"net/http"
	"time"

	"biblio/config"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cfg       *config.Config
	startedAt time.Time
}

func NewController(cfg *config.Config) *Controller {
	return &Controller{cfg: cfg, startedAt: time.Now()}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
}

func (c *Controller) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"name":    c.cfg.App.Name,
		"version": c.cfg.App.Version,
		"env":     c.cfg.App.Env,
		"uptime":  time.Since(c.startedAt).String(),
	})
}
