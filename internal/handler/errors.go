package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/pkg/response"
)

// writeEngineError maps the engine's typed validation failures onto HTTP
// codes. Anything unrecognized is a genuine server fault.
func writeEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, presence.ErrNotFound):
		response.NotFound(c, "Unknown jurisdiction", err)
	case errors.Is(err, presence.ErrUnsupportedRuleKind):
		response.Unprocessable(c, "Jurisdiction rule kind not supported", err)
	case errors.Is(err, presence.ErrInvalidInterval):
		response.Unprocessable(c, "Invalid stay interval", err)
	case errors.Is(err, presence.ErrInvalidReferenceDate):
		response.Unprocessable(c, "Reference date precedes an ongoing stay", err)
	case errors.Is(err, presence.ErrMissingCurrentYearEntry):
		response.Unprocessable(c, "Insufficient presence history for the current year", err)
	default:
		response.InternalError(c, "Evaluation failed", err)
	}
}
