// Package member exposes member registration and maintenance routes.
package member

import (
	"net/http"

	"biblio/api/response"
	memberapp "biblio/application/member"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	members *memberapp.Service
}

func NewController(members *memberapp.Service) *Controller {
	return &Controller{members: members}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/members")
	{
		group.POST("", c.Register)
		group.GET("/:id", c.Get)
		group.PATCH("/:id", c.Update)
		group.GET("/:id/history", c.History)
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req memberapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	m, err := c.members.Register(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, m, "Member registered successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	m, err := c.members.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, m, "Member retrieved successfully")
}

func (c *Controller) Update(ctx *gin.Context) {
	var req memberapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	m, err := c.members.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, m, "Member updated successfully")
}

func (c *Controller) History(ctx *gin.Context) {
	rows, err := c.members.History(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, rows, "Member history retrieved successfully")
}
