package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/service"
	"github.com/nomadtrail/nomad-backend-go/pkg/response"
)

// ScenarioHandler answers "what if I travel more" questions against a copy
// of the stored history.
type ScenarioHandler struct {
	service       *service.PresenceService
	defaultPolicy presence.Policy
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(service *service.PresenceService, defaultPolicy presence.Policy) *ScenarioHandler {
	return &ScenarioHandler{service: service, defaultPolicy: defaultPolicy}
}

// Project handles POST /api/v1/scenario
func (h *ScenarioHandler) Project(c *gin.Context) {
	var req models.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}
	if len(req.PlannedStays) == 0 {
		response.BadRequest(c, "At least one planned stay is required", nil)
		return
	}

	ref := presence.DateOf(time.Now())
	if req.ReferenceDate != "" {
		var err error
		ref, err = presence.ParseDate(req.ReferenceDate)
		if err != nil {
			response.BadRequest(c, "Invalid reference date", err)
			return
		}
	}
	policy, err := policyFromQuery(c, h.defaultPolicy)
	if err != nil {
		response.BadRequest(c, "Invalid counting policy", err)
		return
	}

	planned := make([]presence.Interval, 0, len(req.PlannedStays))
	for _, ps := range req.PlannedStays {
		start, err := presence.ParseDate(ps.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid planned stay start date", err)
			return
		}
		end, err := presence.ParseDate(ps.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid planned stay end date", err)
			return
		}
		planned = append(planned, presence.Interval{
			Jurisdiction: ps.Jurisdiction,
			Start:        start,
			End:          &end,
		})
	}

	projections, err := h.service.Project(planned, ref, policy, presence.EvalOptions{Domiciled: req.Domiciled})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	// Surface the crossings separately: they are the warning signal, not
	// just the absolute projected tiers.
	var crossed []string
	for id, proj := range projections {
		if proj.TierCrossed {
			crossed = append(crossed, id)
		}
	}

	response.Success(c, gin.H{
		"referenceDate": ref,
		"projections":   projections,
		"tierCrossings": crossed,
	})
}
