package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/service"
	"github.com/nomadtrail/nomad-backend-go/pkg/response"
)

// StayHandler handles HTTP requests for stay records
type StayHandler struct {
	service *service.StayService
}

// NewStayHandler creates a new stay handler
func NewStayHandler(service *service.StayService) *StayHandler {
	return &StayHandler{service: service}
}

// List handles GET /api/v1/stays
func (h *StayHandler) List(c *gin.Context) {
	var filter models.StayFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	stays, total, err := h.service.List(filter)
	if err != nil {
		response.InternalError(c, "Failed to list stays", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       stays,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}

// Get handles GET /api/v1/stays/:id
func (h *StayHandler) Get(c *gin.Context) {
	stay, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get stay", err)
		return
	}
	if stay == nil {
		response.NotFound(c, "Stay not found", nil)
		return
	}
	response.Success(c, stay)
}

// Create handles POST /api/v1/stays
func (h *StayHandler) Create(c *gin.Context) {
	var req models.CreateStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	stay, err := h.service.Record(req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "success", Data: stay})
}

// Supersede handles POST /api/v1/stays/:id/supersede. The old record is
// kept, marked superseded, and the correction is inserted in its place.
func (h *StayHandler) Supersede(c *gin.Context) {
	var req models.CreateStayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	replacement, err := h.service.Correct(c.Param("id"), req)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, replacement)
}

// Delete handles DELETE /api/v1/stays/:id (marks the record superseded;
// history is never physically removed).
func (h *StayHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Param("id")); err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, nil)
}
