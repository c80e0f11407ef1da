package presence

import "fmt"

// Projection pairs the current status of a jurisdiction with the status it
// would have if the planned stays were taken. TierCrossed is the warning
// signal callers surface: the projection moved the jurisdiction into a worse
// tier than it is in today, not merely "the new tier is bad".
type Projection struct {
	Current     JurisdictionStatus `json:"current"`
	Projected   JurisdictionStatus `json:"projected"`
	TierCrossed bool               `json:"tierCrossed"`
}

// Project recomputes per-jurisdiction status with hypothetical future stays
// applied. Pure: the real history is never mutated, and planned stays are
// never merged into it. Multiple planned stays combine additively per
// jurisdiction.
//
// Planned stays must have an end date; an open-ended hypothetical stay has
// no defined day count.
//
// Rolling-window jurisdictions are re-evaluated at the latest planned end
// date (or ref when later) — evaluating a future stay against today's
// window would clip it away entirely. Ongoing real stays are pinned at ref
// first, so they do not silently grow while the window slides forward.
func Project(rulesByJur map[string]Rule, historyByJur map[string][]Interval, planned []Interval, p Policy, ref Date, opts EvalOptions) (map[string]Projection, error) {
	plannedByJur := make(map[string][]Interval)
	for _, stay := range planned {
		if stay.End == nil {
			return nil, fmt.Errorf("%w: planned stay in %s has no end date", ErrInvalidInterval, stay.Jurisdiction)
		}
		if stay.Start.After(*stay.End) {
			return nil, fmt.Errorf("%w (%s > %s)", ErrInvalidInterval, stay.Start, *stay.End)
		}
		plannedByJur[stay.Jurisdiction] = append(plannedByJur[stay.Jurisdiction], stay)
	}
	for id := range plannedByJur {
		if _, ok := rulesByJur[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
	}

	out := make(map[string]Projection, len(rulesByJur))
	for id, rule := range rulesByJur {
		current, err := EvaluateJurisdiction(rule, historyByJur[id], p, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("jurisdiction %s: %w", id, err)
		}

		adds := plannedByJur[id]
		if len(adds) == 0 {
			out[id] = Projection{Current: current, Projected: current}
			continue
		}

		projected, err := projectJurisdiction(rule, historyByJur[id], adds, p, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("jurisdiction %s: %w", id, err)
		}

		out[id] = Projection{
			Current:     current,
			Projected:   projected,
			TierCrossed: projected.RiskTier.Rank() > current.RiskTier.Rank(),
		}
	}
	return out, nil
}

func projectJurisdiction(rule Rule, history, planned []Interval, p Policy, ref Date, opts EvalOptions) (JurisdictionStatus, error) {
	// Projection reference: the end of the last planned stay, when it is
	// beyond today.
	projRef := ref
	for _, stay := range planned {
		if stay.End.After(projRef) {
			projRef = *stay.End
		}
	}

	pinned, err := pinOngoing(history, ref)
	if err != nil {
		return JurisdictionStatus{}, err
	}

	if rule.RollingWindowDays > 0 {
		combined := make([]Interval, 0, len(pinned)+len(planned))
		combined = append(combined, pinned...)
		combined = append(combined, planned...)
		return EvaluateJurisdiction(rule, combined, p, projRef, opts)
	}

	// Cumulative rule: planned days add onto the current total.
	current, err := EvaluateJurisdiction(rule, pinned, p, ref, opts)
	if err != nil {
		return JurisdictionStatus{}, err
	}
	extra, err := totalDays(planned, p, projRef)
	if err != nil {
		return JurisdictionStatus{}, err
	}

	limit := effectiveLimit(rule, opts)
	used := current.DaysUsed + extra
	cls := Classify(used, limit)
	return JurisdictionStatus{
		JurisdictionID: rule.Jurisdiction,
		Kind:           rule.Kind,
		Applicable:     current.Applicable,
		DayLimit:       limit,
		DaysUsed:       used,
		DaysRemaining:  cls.DaysRemaining,
		PercentUsed:    cls.PercentUsed,
		RiskTier:       cls.RiskTier,
	}, nil
}
