package models

import (
	"time"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
)

// Stay is a recorded entry/exit in one jurisdiction. EndDate == nil means
// the traveler is still there. Stays are immutable facts: a correction
// supersedes the old record and inserts a new one, it never edits history.
type Stay struct {
	ID           string         `json:"id" db:"id"`
	Jurisdiction string         `json:"jurisdictionId" db:"jurisdiction"`
	StartDate    presence.Date  `json:"startDate" db:"start_date"`
	EndDate      *presence.Date `json:"endDate,omitempty" db:"end_date"`
	Notes        string         `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	SupersededAt *time.Time     `json:"supersededAt,omitempty" db:"superseded_at"`
	SupersededBy string         `json:"supersededBy,omitempty" db:"superseded_by"`
}

// Interval converts the record into an engine interval.
func (s Stay) Interval() presence.Interval {
	return presence.Interval{
		Jurisdiction: s.Jurisdiction,
		Start:        s.StartDate,
		End:          s.EndDate,
	}
}

// StayFilter holds query parameters for listing stays.
type StayFilter struct {
	Jurisdiction      string `form:"jurisdiction"`
	From              string `form:"from"` // YYYY-MM-DD, inclusive on start_date
	To                string `form:"to"`   // YYYY-MM-DD, inclusive on start_date
	IncludeSuperseded bool   `form:"includeSuperseded"`
	Page              int    `form:"page"`
	PageSize          int    `form:"pageSize"`
}

// CreateStayRequest is the payload for recording a stay.
type CreateStayRequest struct {
	Jurisdiction string  `json:"jurisdictionId" binding:"required"`
	StartDate    string  `json:"startDate" binding:"required"`
	EndDate      *string `json:"endDate"`
	Notes        string  `json:"notes"`
}

// PlannedStayRequest is a hypothetical stay for scenario projection. Never
// written to the store.
type PlannedStayRequest struct {
	Jurisdiction string `json:"jurisdictionId" binding:"required"`
	StartDate    string `json:"startDate" binding:"required"`
	EndDate      string `json:"endDate" binding:"required"`
}

// ScenarioRequest asks "what happens if I take these trips".
type ScenarioRequest struct {
	PlannedStays  []PlannedStayRequest `json:"plannedStays" binding:"required"`
	ReferenceDate string               `json:"referenceDate"`
	Domiciled     bool                 `json:"domiciled"`
}
