package presence

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// RuleKind is the closed set of jurisdiction rule shapes.
type RuleKind string

const (
	// RuleNone means the jurisdiction applies no residency test at all.
	RuleNone RuleKind = "none"
	// RuleDomicile means residency turns on domicile, not day counts.
	RuleDomicile RuleKind = "domicile"
	// RuleDayCount means residency turns on a day threshold.
	RuleDayCount RuleKind = "day_count"
	// RuleHybrid combines a domicile determination with a day threshold.
	RuleHybrid RuleKind = "hybrid"
)

// Rule is the static rule shape for one jurisdiction. RollingWindowDays is
// set only for Schengen-style trailing-window rules; zero means a plain
// cumulative counter. Read-only during evaluation.
type Rule struct {
	Jurisdiction      string   `json:"jurisdictionId"`
	Kind              RuleKind `json:"kind"`
	DayLimit          int      `json:"dayLimit"`
	SafeHarborDays    int      `json:"safeHarborDays,omitempty"`
	RollingWindowDays int      `json:"rollingWindowDays,omitempty"`
}

// EvalOptions carries per-evaluation caller inputs the registry cannot
// supply. Domiciled is the external domicile determination hybrid rules
// need; the engine never infers it.
type EvalOptions struct {
	Domiciled bool
}

// JurisdictionStatus is the derived compliance status for one jurisdiction.
// It is always recomputed from (intervals, policy, rule, reference date) and
// never persisted as a source of truth.
type JurisdictionStatus struct {
	JurisdictionID   string   `json:"jurisdictionId"`
	Kind             RuleKind `json:"kind"`
	Applicable       bool     `json:"applicable"`
	DayLimit         int      `json:"dayLimit"`
	DaysUsed         float64  `json:"daysUsed"`
	DaysRemaining    float64  `json:"daysRemaining"`
	PercentUsed      float64  `json:"percentUsed"`
	RiskTier         Tier     `json:"riskTier"`
	EarliestSafeExit *Date    `json:"earliestSafeExitDate,omitempty"`
}

// effectiveLimit resolves the day limit a traveler is measured against.
// Hybrid rules measure domiciled travelers against the safe-harbor count
// (domicile plus more than the safe-harbor days means resident) and
// non-domiciled travelers against the statutory limit.
func effectiveLimit(rule Rule, opts EvalOptions) int {
	if rule.Kind == RuleHybrid && opts.Domiciled && rule.SafeHarborDays > 0 {
		return rule.SafeHarborDays
	}
	return rule.DayLimit
}

// EvaluateJurisdiction turns one jurisdiction's stay history into its
// compliance status as of ref. Pure and stateless: identical inputs yield
// identical output.
func EvaluateJurisdiction(rule Rule, intervals []Interval, p Policy, ref Date, opts EvalOptions) (JurisdictionStatus, error) {
	status := JurisdictionStatus{
		JurisdictionID: rule.Jurisdiction,
		Kind:           rule.Kind,
	}

	switch rule.Kind {
	case RuleNone, RuleDomicile:
		// No day-count semantics. Days are still totted up for display,
		// but the tier is always safe and day-based alerts do not apply.
		used, err := totalDays(intervals, p, ref)
		if err != nil {
			return JurisdictionStatus{}, err
		}
		status.DaysUsed = used
		status.RiskTier = TierSafe
		return status, nil

	case RuleDayCount, RuleHybrid:
		status.Applicable = true
		limit := effectiveLimit(rule, opts)
		status.DayLimit = limit

		if rule.RollingWindowDays > 0 {
			roll, err := EvaluateRollingWindow(intervals, rule.RollingWindowDays, limit, p, ref)
			if err != nil {
				return JurisdictionStatus{}, err
			}
			cls := Classify(roll.DaysUsed, limit)
			status.DaysUsed = roll.DaysUsed
			status.DaysRemaining = roll.DaysRemaining
			status.PercentUsed = cls.PercentUsed
			status.RiskTier = cls.RiskTier
			status.EarliestSafeExit = roll.EarliestSafeExit
			return status, nil
		}

		used, err := totalDays(intervals, p, ref)
		if err != nil {
			return JurisdictionStatus{}, err
		}
		cls := Classify(used, limit)
		status.DaysUsed = used
		status.DaysRemaining = cls.DaysRemaining
		status.PercentUsed = cls.PercentUsed
		status.RiskTier = cls.RiskTier
		return status, nil

	default:
		return JurisdictionStatus{}, fmt.Errorf("%w: %q", ErrUnsupportedRuleKind, rule.Kind)
	}
}

// EvaluateAll evaluates every jurisdiction concurrently. Evaluations are
// independent (each reads only its own intervals and rule), so the fan-out
// needs no coordination beyond joining results.
func EvaluateAll(rulesByJur map[string]Rule, intervalsByJur map[string][]Interval, p Policy, ref Date, opts EvalOptions) ([]JurisdictionStatus, error) {
	ids := make([]string, 0, len(rulesByJur))
	for id := range rulesByJur {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]JurisdictionStatus, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			st, err := EvaluateJurisdiction(rulesByJur[id], intervalsByJur[id], p, ref, opts)
			if err != nil {
				return fmt.Errorf("jurisdiction %s: %w", id, err)
			}
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// totalDays sums policy day counts across intervals (cumulative rules).
func totalDays(intervals []Interval, p Policy, ref Date) (float64, error) {
	var total float64
	for _, iv := range intervals {
		n, err := CountDays(iv, p, ref)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
