// Package book exposes catalog maintenance routes.
package book

import (
	"net/http"

	"biblio/api/response"
	bookapp "biblio/application/book"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	books *bookapp.Service
}

func NewController(books *bookapp.Service) *Controller {
	return &Controller{books: books}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/books")
	{
		group.POST("", c.Register)
		group.GET("/:id", c.Get)
		group.DELETE("/:id", c.Remove)
		group.GET("/:id/availability", c.Availability)
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req bookapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	b, err := c.books.Register(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, b, "Book registered successfully")
}

func (c *Controller) Get(ctx *gin.Context) {
	b, err := c.books.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, b, "Book retrieved successfully")
}

func (c *Controller) Remove(ctx *gin.Context) {
	if err := c.books.Remove(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

func (c *Controller) Availability(ctx *gin.Context) {
	availability, err := c.books.Availability(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, availability, "Book availability retrieved successfully")
}
