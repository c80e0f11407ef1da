package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
)

// referenceDate reads the explicit ?ref=YYYY-MM-DD parameter, defaulting to
// today (UTC). The engine itself never reads a clock; the wall-clock
// default lives only here at the request boundary.
func referenceDate(c *gin.Context) (presence.Date, error) {
	if s := c.Query("ref"); s != "" {
		return presence.ParseDate(s)
	}
	return presence.DateOf(time.Now()), nil
}

// policyFromQuery applies per-request counting-policy overrides on top of
// the configured defaults. The policy is always an explicit parameter so
// the same history can be compared under different counting semantics.
func policyFromQuery(c *gin.Context, defaults presence.Policy) (presence.Policy, error) {
	p := defaults
	if v := c.Query("mode"); v != "" {
		p.Mode = presence.CountMode(v)
	}
	if v := c.Query("partial"); v != "" {
		p.PartialDayRule = presence.PartialDayRule(v)
	}
	if v := c.Query("countArrival"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return presence.Policy{}, err
		}
		p.CountArrivalDay = b
	}
	if v := c.Query("countDeparture"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return presence.Policy{}, err
		}
		p.CountDepartureDay = b
	}
	return p, p.Validate()
}

func evalOptions(c *gin.Context) presence.EvalOptions {
	domiciled, _ := strconv.ParseBool(c.Query("domiciled"))
	return presence.EvalOptions{Domiciled: domiciled}
}
