package presence

import "fmt"

// Interval is a recorded stay in one jurisdiction. End == nil means the stay
// is ongoing and is resolved at the evaluation reference date. Intervals are
// immutable facts: corrections supersede a record, they never edit it.
type Interval struct {
	Jurisdiction string `json:"jurisdictionId"`
	Start        Date   `json:"start"`
	End          *Date  `json:"end,omitempty"`
}

// Ongoing reports whether the interval has no recorded exit.
func (iv Interval) Ongoing() bool { return iv.End == nil }

// resolve validates the interval and pins an ongoing end at ref.
func (iv Interval) resolve(ref Date) (start, end Date, err error) {
	if iv.End != nil {
		if iv.Start.After(*iv.End) {
			return Date{}, Date{}, fmt.Errorf("%w (%s > %s)", ErrInvalidInterval, iv.Start, *iv.End)
		}
		return iv.Start, *iv.End, nil
	}
	if iv.Start.After(ref) {
		return Date{}, Date{}, fmt.Errorf("%w (ongoing stay starts %s, reference %s)", ErrInvalidReferenceDate, iv.Start, ref)
	}
	return iv.Start, ref, nil
}

// clipRange intersects [start,end] with the closed window [winStart,winEnd].
// ok is false when the interval lies wholly outside the window.
func clipRange(start, end, winStart, winEnd Date) (Date, Date, bool) {
	if end.Before(winStart) || start.After(winEnd) {
		return Date{}, Date{}, false
	}
	return maxDate(start, winStart), minDate(end, winEnd), true
}

// pinOngoing resolves every interval against ref, fixing ongoing stays at
// ref. The result is safe to re-evaluate at later reference dates without
// the ongoing stays silently growing.
func pinOngoing(intervals []Interval, ref Date) ([]Interval, error) {
	out := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		start, end, err := iv.resolve(ref)
		if err != nil {
			return nil, err
		}
		e := end
		out = append(out, Interval{Jurisdiction: iv.Jurisdiction, Start: start, End: &e})
	}
	return out, nil
}
