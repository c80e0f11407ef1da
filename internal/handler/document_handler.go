package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/service"
	"github.com/nomadtrail/nomad-backend-go/pkg/response"
)

// DocumentHandler handles HTTP requests for travel documents
type DocumentHandler struct {
	service *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	ref, err := referenceDate(c)
	if err != nil {
		response.BadRequest(c, "Invalid reference date", err)
		return
	}

	statuses, err := h.service.Statuses(ref)
	if err != nil {
		response.InternalError(c, "Failed to list documents", err)
		return
	}
	response.Success(c, statuses)
}

// Expiring handles GET /api/v1/documents/expiring?within=90
func (h *DocumentHandler) Expiring(c *gin.Context) {
	ref, err := referenceDate(c)
	if err != nil {
		response.BadRequest(c, "Invalid reference date", err)
		return
	}

	within := 90
	if v := c.Query("within"); v != "" {
		within, err = strconv.Atoi(v)
		if err != nil || within < 0 {
			response.BadRequest(c, "Invalid within parameter", err)
			return
		}
	}

	statuses, err := h.service.Expiring(ref, within)
	if err != nil {
		response.InternalError(c, "Failed to list expiring documents", err)
		return
	}
	response.Success(c, statuses)
}

// Create handles POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	doc, err := h.service.Add(req)
	if err != nil {
		response.BadRequest(c, "Failed to add document", err)
		return
	}
	c.JSON(http.StatusCreated, response.Response{Code: 0, Message: "success", Data: doc})
}
