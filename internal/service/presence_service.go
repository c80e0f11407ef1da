package service

import (
	"fmt"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/repository"
	"github.com/nomadtrail/nomad-backend-go/internal/rules"
)

// Substantial Presence Test constants: 183 weighted days over three years,
// with at least 31 days of physical presence in the current year.
const (
	sptPassThreshold      = 183
	sptCurrentYearMinimum = 31
	sptJurisdiction       = "US"
	sptLookbackYears      = 3
)

// PresenceService turns stored stay history into compliance facts. All
// computation is delegated to the presence engine; this layer only loads
// history, resolves rules and aggregates zone membership.
type PresenceService struct {
	stays    *repository.StayRepository
	registry *rules.Registry
}

// NewPresenceService creates a new presence service
func NewPresenceService(stays *repository.StayRepository, registry *rules.Registry) *PresenceService {
	return &PresenceService{stays: stays, registry: registry}
}

// historyByJurisdiction loads the active stay history grouped per
// jurisdiction. A stay in a zone member (e.g. France) also consumes the
// zone's shared allowance, so it is mirrored into the zone bucket.
func (s *PresenceService) historyByJurisdiction() (map[string][]presence.Interval, error) {
	records, err := s.stays.ListActive()
	if err != nil {
		return nil, err
	}

	byJur := make(map[string][]presence.Interval)
	for _, rec := range records {
		iv := rec.Interval()
		byJur[rec.Jurisdiction] = append(byJur[rec.Jurisdiction], iv)

		if zone, ok := s.registry.ZoneOf(rec.Jurisdiction); ok {
			mirrored := iv
			mirrored.Jurisdiction = zone
			byJur[zone] = append(byJur[zone], mirrored)
		}
	}
	return byJur, nil
}

// rulesFor resolves the rule for every jurisdiction id, failing closed on
// unknown jurisdictions or rule kinds.
func (s *PresenceService) rulesFor(ids map[string][]presence.Interval, extra []string) (map[string]presence.Rule, error) {
	out := make(map[string]presence.Rule, len(ids)+len(extra))
	for id := range ids {
		rule, err := s.registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		out[id] = rule
	}
	for _, id := range extra {
		if _, ok := out[id]; ok {
			continue
		}
		rule, err := s.registry.Lookup(id)
		if err != nil {
			return nil, err
		}
		out[id] = rule
	}
	return out, nil
}

// Overview evaluates every jurisdiction (and zone) with recorded presence.
func (s *PresenceService) Overview(ref presence.Date, p presence.Policy, opts presence.EvalOptions) ([]presence.JurisdictionStatus, error) {
	history, err := s.historyByJurisdiction()
	if err != nil {
		return nil, err
	}
	rulesByJur, err := s.rulesFor(history, nil)
	if err != nil {
		return nil, err
	}
	return presence.EvaluateAll(rulesByJur, history, p, ref, opts)
}

// Jurisdiction evaluates a single jurisdiction, with or without history.
func (s *PresenceService) Jurisdiction(id string, ref presence.Date, p presence.Policy, opts presence.EvalOptions) (presence.JurisdictionStatus, error) {
	rule, err := s.registry.Lookup(id)
	if err != nil {
		return presence.JurisdictionStatus{}, err
	}
	history, err := s.historyByJurisdiction()
	if err != nil {
		return presence.JurisdictionStatus{}, err
	}
	return presence.EvaluateJurisdiction(rule, history[id], p, ref, opts)
}

// SchengenDetail is the rolling-window breakdown for the Schengen zone.
type SchengenDetail struct {
	presence.RollingResult
	WindowDays  int           `json:"windowDays"`
	LimitDays   int           `json:"limitDays"`
	PercentUsed float64       `json:"percentUsed"`
	RiskTier    presence.Tier `json:"riskTier"`
	Members     []string      `json:"members"`
}

// Schengen evaluates the shared 90-in-180 allowance across all member
// stays.
func (s *PresenceService) Schengen(ref presence.Date, p presence.Policy) (SchengenDetail, error) {
	rule, err := s.registry.Lookup("SCHENGEN")
	if err != nil {
		return SchengenDetail{}, err
	}
	history, err := s.historyByJurisdiction()
	if err != nil {
		return SchengenDetail{}, err
	}

	roll, err := presence.EvaluateRollingWindow(history["SCHENGEN"], rule.RollingWindowDays, rule.DayLimit, p, ref)
	if err != nil {
		return SchengenDetail{}, err
	}

	cls := presence.Classify(roll.DaysUsed, rule.DayLimit)
	return SchengenDetail{
		RollingResult: roll,
		WindowDays:    rule.RollingWindowDays,
		LimitDays:     rule.DayLimit,
		PercentUsed:   cls.PercentUsed,
		RiskTier:      cls.RiskTier,
		Members:       s.registry.ZoneMembers("SCHENGEN"),
	}, nil
}

// SubstantialPresenceResult is the weighted three-year US presence test
// computed from stored history only. Years without records are simply
// absent from HistoryYears; prior-year totals are never fabricated.
type SubstantialPresenceResult struct {
	presence.WeightedResult
	PassThreshold      int   `json:"passThreshold"`
	CurrentYearMinimum int   `json:"currentYearMinimum"`
	HistoryYears       []int `json:"historyYears"`
}

// SubstantialPresence runs the weighted three-year test on recorded US
// stays. Returns presence.ErrMissingCurrentYearEntry when the current year
// has no recorded presence at all.
func (s *PresenceService) SubstantialPresence(ref presence.Date, p presence.Policy) (SubstantialPresenceResult, error) {
	history, err := s.historyByJurisdiction()
	if err != nil {
		return SubstantialPresenceResult{}, err
	}

	daysByOffset := make(map[int]int, sptLookbackYears)
	var years []int
	for offset := 0; offset < sptLookbackYears; offset++ {
		year := ref.Year() - offset
		days, err := yearDays(history[sptJurisdiction], year, p, ref)
		if err != nil {
			return SubstantialPresenceResult{}, err
		}
		if days > 0 {
			daysByOffset[offset] = days
			years = append(years, year)
		}
	}

	if _, ok := daysByOffset[0]; !ok {
		return SubstantialPresenceResult{}, fmt.Errorf("%w: no recorded US presence in %d", presence.ErrMissingCurrentYearEntry, ref.Year())
	}

	res, err := presence.EvaluateWeighted(presence.SubstantialPresenceEntries(daysByOffset), sptCurrentYearMinimum, sptPassThreshold)
	if err != nil {
		return SubstantialPresenceResult{}, err
	}

	return SubstantialPresenceResult{
		WeightedResult:     res,
		PassThreshold:      sptPassThreshold,
		CurrentYearMinimum: sptCurrentYearMinimum,
		HistoryYears:       years,
	}, nil
}

// yearDays counts policy days falling inside one calendar year, capped at
// the reference date. Whole days only: fractional half-day totals floor,
// matching the engine's per-term rule.
func yearDays(intervals []presence.Interval, year int, p presence.Policy, ref presence.Date) (int, error) {
	yearStart := presence.NewDate(year, 1, 1)
	yearEnd := presence.NewDate(year, 12, 31)
	if ref.Before(yearEnd) {
		yearEnd = ref
	}
	if yearEnd.Before(yearStart) {
		return 0, nil
	}

	var total float64
	for _, iv := range intervals {
		start := iv.Start
		end := ref
		if iv.End != nil {
			end = *iv.End
		} else if start.After(ref) {
			return 0, fmt.Errorf("%w (ongoing stay starts %s, reference %s)", presence.ErrInvalidReferenceDate, start, ref)
		}
		if start.After(end) {
			return 0, fmt.Errorf("%w (%s > %s)", presence.ErrInvalidInterval, start, end)
		}

		if end.Before(yearStart) || start.After(yearEnd) {
			continue
		}
		if start.Before(yearStart) {
			start = yearStart
		}
		if end.After(yearEnd) {
			end = yearEnd
		}

		clipped := end
		n, err := presence.CountDays(presence.Interval{Start: start, End: &clipped}, p, ref)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return int(total), nil
}

// Project evaluates hypothetical future stays against the stored history
// without touching it. Planned stays in zone members also count against the
// zone.
func (s *PresenceService) Project(planned []presence.Interval, ref presence.Date, p presence.Policy, opts presence.EvalOptions) (map[string]presence.Projection, error) {
	history, err := s.historyByJurisdiction()
	if err != nil {
		return nil, err
	}

	expanded := make([]presence.Interval, 0, len(planned))
	var plannedIDs []string
	for _, stay := range planned {
		expanded = append(expanded, stay)
		plannedIDs = append(plannedIDs, stay.Jurisdiction)
		if zone, ok := s.registry.ZoneOf(stay.Jurisdiction); ok {
			mirrored := stay
			mirrored.Jurisdiction = zone
			expanded = append(expanded, mirrored)
			plannedIDs = append(plannedIDs, zone)
		}
	}

	rulesByJur, err := s.rulesFor(history, plannedIDs)
	if err != nil {
		return nil, err
	}
	return presence.Project(rulesByJur, history, expanded, p, ref, opts)
}
