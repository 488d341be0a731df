// Package circulation exposes the loan lifecycle routes.
package circulation

import (
	"net/http"

	"biblio/api/response"
	circapp "biblio/application/circulation"

	"github.com/gin-gonic/gin"
)

// LoanRequest identifies the member and book of a lifecycle operation.
// Fields are not bind-required: missing identifiers are a business
// failure the engine reports itself, before any store access.
type LoanRequest struct {
	MemberID string `json:"member_id"`
	BookID   string `json:"book_id"`
}

type Controller struct {
	engine *circapp.Service
}

func NewController(engine *circapp.Service) *Controller {
	return &Controller{engine: engine}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/loans")
	{
		group.POST("/issue", c.Issue)
		group.POST("/return", c.Return)
		group.POST("/renew", c.Renew)
	}
}

func (c *Controller) Issue(ctx *gin.Context) {
	var req LoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.engine.Issue(ctx.Request.Context(), req.MemberID, req.BookID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, result, "Book issued successfully")
}

func (c *Controller) Return(ctx *gin.Context) {
	var req LoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.engine.Return(ctx.Request.Context(), req.MemberID, req.BookID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "Book returned successfully")
}

func (c *Controller) Renew(ctx *gin.Context) {
	var req LoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.engine.Renew(ctx.Request.Context(), req.MemberID, req.BookID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, result, "Loan renewed successfully")
}
