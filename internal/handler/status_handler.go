package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/service"
	"github.com/nomadtrail/nomad-backend-go/pkg/response"
)

// StatusHandler exposes derived compliance status. Status is always
// recomputed from history on demand; nothing here is cached.
type StatusHandler struct {
	service       *service.PresenceService
	defaultPolicy presence.Policy
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(service *service.PresenceService, defaultPolicy presence.Policy) *StatusHandler {
	return &StatusHandler{service: service, defaultPolicy: defaultPolicy}
}

// Overview handles GET /api/v1/status
func (h *StatusHandler) Overview(c *gin.Context) {
	ref, err := referenceDate(c)
	if err != nil {
		response.BadRequest(c, "Invalid reference date", err)
		return
	}
	policy, err := policyFromQuery(c, h.defaultPolicy)
	if err != nil {
		response.BadRequest(c, "Invalid counting policy", err)
		return
	}

	statuses, err := h.service.Overview(ref, policy, evalOptions(c))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, gin.H{
		"referenceDate": ref,
		"policy":        policy,
		"statuses":      statuses,
	})
}

// ByJurisdiction handles GET /api/v1/status/:jurisdiction
func (h *StatusHandler) ByJurisdiction(c *gin.Context) {
	ref, err := referenceDate(c)
	if err != nil {
		response.BadRequest(c, "Invalid reference date", err)
		return
	}
	policy, err := policyFromQuery(c, h.defaultPolicy)
	if err != nil {
		response.BadRequest(c, "Invalid counting policy", err)
		return
	}

	status, err := h.service.Jurisdiction(c.Param("jurisdiction"), ref, policy, evalOptions(c))
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, status)
}

// Schengen handles GET /api/v1/schengen
func (h *StatusHandler) Schengen(c *gin.Context) {
	ref, err := referenceDate(c)
	if err != nil {
		response.BadRequest(c, "Invalid reference date", err)
		return
	}
	policy, err := policyFromQuery(c, h.defaultPolicy)
	if err != nil {
		response.BadRequest(c, "Invalid counting policy", err)
		return
	}

	detail, err := h.service.Schengen(ref, policy)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, detail)
}

// SubstantialPresence handles GET /api/v1/substantial-presence
func (h *StatusHandler) SubstantialPresence(c *gin.Context) {
	ref, err := referenceDate(c)
	if err != nil {
		response.BadRequest(c, "Invalid reference date", err)
		return
	}
	policy, err := policyFromQuery(c, h.defaultPolicy)
	if err != nil {
		response.BadRequest(c, "Invalid counting policy", err)
		return
	}

	result, err := h.service.SubstantialPresence(ref, policy)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	response.Success(c, result)
}
