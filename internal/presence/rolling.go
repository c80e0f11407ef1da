package presence

import "fmt"

// RollingResult is the outcome of a trailing-window evaluation
// (Schengen-style 90-in-180).
type RollingResult struct {
	DaysUsed      float64 `json:"daysUsed"`
	DaysRemaining float64 `json:"daysRemaining"`
	// EarliestSafeExit is set only when the limit is reached: the first
	// reference date at which consumption drops back to the limit or below.
	EarliestSafeExit *Date `json:"earliestSafeExitDate,omitempty"`
}

// EvaluateRollingWindow computes days consumed inside the closed trailing
// window [ref-windowDays+1, ref] and, when the limit is reached, the
// earliest date at which the count slides back under it.
//
// Ongoing intervals are pinned at ref before the walk-forward search, so the
// safe-exit answer models "the traveler exits today". Clipping happens
// before the policy is applied: a clipped boundary day becomes the
// arrival/departure day of the clipped interval.
func EvaluateRollingWindow(intervals []Interval, windowDays, limitDays int, p Policy, ref Date) (RollingResult, error) {
	if windowDays <= 0 {
		return RollingResult{}, fmt.Errorf("rolling window: windowDays must be positive, got %d", windowDays)
	}

	pinned, err := pinOngoing(intervals, ref)
	if err != nil {
		return RollingResult{}, err
	}

	used, err := windowDaysUsed(pinned, windowDays, p, ref)
	if err != nil {
		return RollingResult{}, err
	}

	res := RollingResult{DaysUsed: used}
	if rem := float64(limitDays) - used; rem > 0 {
		res.DaysRemaining = rem
	}

	if used >= float64(limitDays) {
		// The window only loses days as it slides forward, so the
		// day-by-day walk is monotonic and bounded: after windowDays
		// steps the window holds nothing from the fixed history.
		d := ref
		for step := 0; step <= windowDays; step++ {
			u, err := windowDaysUsed(pinned, windowDays, p, d)
			if err != nil {
				return RollingResult{}, err
			}
			if u <= float64(limitDays) {
				exit := d
				res.EarliestSafeExit = &exit
				break
			}
			d = d.AddDays(1)
		}
	}

	return res, nil
}

// windowDaysUsed sums policy day counts of intervals clipped to the closed
// window ending at ref. Intervals must already be pinned (End set).
func windowDaysUsed(intervals []Interval, windowDays int, p Policy, ref Date) (float64, error) {
	winStart := ref.AddDays(-(windowDays - 1))

	var total float64
	for _, iv := range intervals {
		start, end, ok := clipRange(iv.Start, *iv.End, winStart, ref)
		if !ok {
			continue
		}
		e := end
		n, err := CountDays(Interval{Jurisdiction: iv.Jurisdiction, Start: start, End: &e}, p, ref)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
