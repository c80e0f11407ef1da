package presence

import (
	"fmt"
	"sort"
)

// Ratio is an exact rational weight. Integer arithmetic keeps terms like
// 90 x 1/3 at exactly 30, where float weights would land at 29.999….
type Ratio struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

func (r Ratio) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// apply computes days x r, floored to the nearest whole day. Per-term
// flooring is the documented fractional rule: each term is rounded down,
// never the sum.
func (r Ratio) apply(days int) int {
	if r.Den == 0 {
		return 0
	}
	return days * r.Num / r.Den
}

// WeightedYearEntry is one year of presence history for a weighted
// multi-year test. YearOffset 0 is the current year, 1 the year before, etc.
type WeightedYearEntry struct {
	YearOffset  int   `json:"yearOffset"`
	DaysPresent int   `json:"daysPresent"`
	Weight      Ratio `json:"weight"`
}

// WeightedResult is the outcome of a weighted multi-year evaluation.
type WeightedResult struct {
	WeightedTotal   int  `json:"weightedTotal"`
	CurrentYearDays int  `json:"currentYearDays"`
	Passes          bool `json:"passes"`
}

// SubstantialPresenceWeights are the canonical US test weights: the current
// year counts in full, the prior year at one third, the year before at one
// sixth.
var SubstantialPresenceWeights = map[int]Ratio{
	0: {1, 1},
	1: {1, 3},
	2: {1, 6},
}

// EvaluateWeighted applies a weighted multi-year presence test
// (Substantial-Presence-style). Both gates are mandatory: the current year
// must reach currentYearMinimum AND the weighted total must reach
// passThreshold; failing either alone fails the test.
func EvaluateWeighted(entries []WeightedYearEntry, currentYearMinimum, passThreshold int) (WeightedResult, error) {
	var res WeightedResult
	haveCurrent := false

	for _, e := range entries {
		if e.YearOffset == 0 {
			haveCurrent = true
			res.CurrentYearDays = e.DaysPresent
		}
		res.WeightedTotal += e.Weight.apply(e.DaysPresent)
	}
	if !haveCurrent {
		return WeightedResult{}, ErrMissingCurrentYearEntry
	}

	res.Passes = res.CurrentYearDays >= currentYearMinimum && res.WeightedTotal >= passThreshold
	return res, nil
}

// SubstantialPresenceEntries builds weighted entries from per-offset day
// totals using the canonical weights. Offsets without a weight are ignored;
// missing offsets are simply absent (never fabricated).
func SubstantialPresenceEntries(daysByOffset map[int]int) []WeightedYearEntry {
	entries := make([]WeightedYearEntry, 0, len(daysByOffset))
	for offset, days := range daysByOffset {
		w, ok := SubstantialPresenceWeights[offset]
		if !ok {
			continue
		}
		entries = append(entries, WeightedYearEntry{YearOffset: offset, DaysPresent: days, Weight: w})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].YearOffset < entries[j].YearOffset })
	return entries
}
