// Package report exposes the circulation report routes.
package report

import (
	"biblio/api/response"
	reportapp "biblio/application/report"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	reports *reportapp.Service
}

func NewController(reports *reportapp.Service) *Controller {
	return &Controller{reports: reports}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports/:kind", c.Generate)
}

func (c *Controller) Generate(ctx *gin.Context) {
	report, err := c.reports.Generate(ctx.Request.Context(), ctx.Param("kind"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, report, "Report generated successfully")
}
