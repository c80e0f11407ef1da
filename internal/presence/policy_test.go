package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(s string) *Date {
	d := MustDate(s)
	return &d
}

func TestCountDays(t *testing.T) {
	ref := MustDate("2025-12-31")
	tenDays := Interval{Start: MustDate("2025-01-01"), End: datePtr("2025-01-10")}
	sameDay := Interval{Start: MustDate("2025-01-05"), End: datePtr("2025-01-05")}
	twoDays := Interval{Start: MustDate("2025-01-01"), End: datePtr("2025-01-02")}

	cases := []struct {
		name   string
		iv     Interval
		policy Policy
		want   float64
	}{
		{"full both boundaries", tenDays, Policy{ModeDays, PartialFull, true, true}, 10},
		{"full arrival only", tenDays, Policy{ModeDays, PartialFull, true, false}, 9},
		{"full neither boundary", tenDays, Policy{ModeDays, PartialFull, false, false}, 8},
		{"full same-day", sameDay, Policy{ModeDays, PartialFull, true, true}, 1},
		{"full same-day neither", sameDay, Policy{ModeDays, PartialFull, false, false}, 0},
		{"half both boundaries", tenDays, Policy{ModeDays, PartialHalf, true, true}, 9},
		{"half arrival only", tenDays, Policy{ModeDays, PartialHalf, true, false}, 8.5},
		{"half same-day is one half not two", sameDay, Policy{ModeDays, PartialHalf, true, true}, 0.5},
		{"half same-day neither", sameDay, Policy{ModeDays, PartialHalf, false, false}, 0},
		{"exclude drops boundaries", tenDays, Policy{ModeDays, PartialExclude, true, true}, 8},
		{"exclude two-day stay", twoDays, Policy{ModeDays, PartialExclude, true, true}, 0},
		{"exclude same-day", sameDay, Policy{ModeDays, PartialExclude, true, true}, 0},
		{"nights multi-day", tenDays, Policy{ModeNights, PartialFull, true, true}, 9},
		{"nights same-day", sameDay, Policy{ModeNights, PartialFull, true, true}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CountDays(tc.iv, tc.policy, ref)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCountDaysOngoing(t *testing.T) {
	iv := Interval{Start: MustDate("2025-06-01")}

	got, err := CountDays(iv, DefaultPolicy(), MustDate("2025-06-30"))
	require.NoError(t, err)
	assert.Equal(t, 30.0, got)

	// Ongoing stay that has not started yet as of the reference date.
	_, err = CountDays(iv, DefaultPolicy(), MustDate("2025-05-01"))
	assert.ErrorIs(t, err, ErrInvalidReferenceDate)
}

func TestCountDaysInvalidInterval(t *testing.T) {
	iv := Interval{Start: MustDate("2025-06-10"), End: datePtr("2025-06-01")}
	_, err := CountDays(iv, DefaultPolicy(), MustDate("2025-12-31"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	bad := DefaultPolicy()
	bad.Mode = "weeks"
	assert.Error(t, bad.Validate())

	bad = DefaultPolicy()
	bad.PartialDayRule = "quarter"
	assert.Error(t, bad.Validate())
}
