package presence

import "fmt"

// CountMode selects whether presence is measured in days or nights.
type CountMode string

const (
	ModeDays   CountMode = "days"
	ModeNights CountMode = "nights"
)

// PartialDayRule controls how arrival and departure days are counted.
type PartialDayRule string

const (
	// PartialFull counts each flagged boundary day as a whole day.
	PartialFull PartialDayRule = "full"
	// PartialHalf counts each flagged boundary day as half a day.
	PartialHalf PartialDayRule = "half"
	// PartialExclude drops both boundary days entirely.
	PartialExclude PartialDayRule = "exclude"
)

// Policy is the day-counting configuration. It is pure data and is threaded
// explicitly into every evaluator call so the same history can be
// re-evaluated under different hypothetical policies.
type Policy struct {
	Mode              CountMode      `json:"mode"`
	PartialDayRule    PartialDayRule `json:"partialDayRule"`
	CountArrivalDay   bool           `json:"countArrivalDay"`
	CountDepartureDay bool           `json:"countDepartureDay"`
}

// DefaultPolicy counts whole days including both arrival and departure,
// which is how most day-count residency tests are written.
func DefaultPolicy() Policy {
	return Policy{
		Mode:              ModeDays,
		PartialDayRule:    PartialFull,
		CountArrivalDay:   true,
		CountDepartureDay: true,
	}
}

// Validate rejects unknown mode or partial-day values.
func (p Policy) Validate() error {
	switch p.Mode {
	case ModeDays, ModeNights:
	default:
		return fmt.Errorf("unknown counting mode %q", p.Mode)
	}
	switch p.PartialDayRule {
	case PartialFull, PartialHalf, PartialExclude:
	default:
		return fmt.Errorf("unknown partial-day rule %q", p.PartialDayRule)
	}
	return nil
}

// CountDays turns one stay interval into a concrete day count under the
// policy. The result may be fractional under the half-day rule. Ongoing
// intervals end at ref.
//
// Nights mode ignores the boundary flags: a stay spanning N calendar days is
// N-1 nights, and a same-day stay is zero nights.
func CountDays(iv Interval, p Policy, ref Date) (float64, error) {
	start, end, err := iv.resolve(ref)
	if err != nil {
		return 0, err
	}

	span := start.DaysUntil(end) + 1 // inclusive calendar days

	if p.Mode == ModeNights {
		if span <= 1 {
			return 0, nil
		}
		return float64(span - 1), nil
	}

	switch p.PartialDayRule {
	case PartialExclude:
		// Under two calendar days there is no interior to count.
		if span < 2 {
			return 0, nil
		}
		return float64(span - 2), nil

	case PartialHalf:
		if span == 1 {
			// Same-day in/out is one half day, not two halves.
			if p.CountArrivalDay || p.CountDepartureDay {
				return 0.5, nil
			}
			return 0, nil
		}
		total := float64(span - 2)
		if p.CountArrivalDay {
			total += 0.5
		}
		if p.CountDepartureDay {
			total += 0.5
		}
		return total, nil

	default: // PartialFull
		if span == 1 {
			if p.CountArrivalDay || p.CountDepartureDay {
				return 1, nil
			}
			return 0, nil
		}
		total := float64(span - 2)
		if p.CountArrivalDay {
			total++
		}
		if p.CountDepartureDay {
			total++
		}
		return total, nil
	}
}
