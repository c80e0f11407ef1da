package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRollingWindow_SchengenScenario(t *testing.T) {
	// Three 30-day stays, all inside the trailing 180-day window as of
	// July 1: the full 90-day allowance is consumed.
	intervals := []Interval{
		{Jurisdiction: "SCHENGEN", Start: MustDate("2025-01-15"), End: datePtr("2025-02-13")},
		{Jurisdiction: "SCHENGEN", Start: MustDate("2025-03-01"), End: datePtr("2025-03-30")},
		{Jurisdiction: "SCHENGEN", Start: MustDate("2025-06-01"), End: datePtr("2025-06-30")},
	}
	ref := MustDate("2025-07-01")

	res, err := EvaluateRollingWindow(intervals, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)

	assert.Equal(t, 90.0, res.DaysUsed)
	assert.Equal(t, 0.0, res.DaysRemaining)
	assert.Equal(t, TierCritical, Classify(res.DaysUsed, 90).RiskTier)

	// Exactly at the limit: today already satisfies "count <= limit".
	require.NotNil(t, res.EarliestSafeExit)
	assert.True(t, res.EarliestSafeExit.Equal(ref))
}

func TestEvaluateRollingWindow_EarliestSafeExitWalksForward(t *testing.T) {
	// 95 days consumed; the count drops to 90 only once the first five
	// days of the January stay slide out of the window.
	intervals := []Interval{
		{Start: MustDate("2025-01-15"), End: datePtr("2025-02-13")}, // 30 days
		{Start: MustDate("2025-03-01"), End: datePtr("2025-03-30")}, // 30 days
		{Start: MustDate("2025-05-27"), End: datePtr("2025-06-30")}, // 35 days
	}
	ref := MustDate("2025-07-01")

	res, err := EvaluateRollingWindow(intervals, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)

	assert.Equal(t, 95.0, res.DaysUsed)
	assert.Equal(t, 0.0, res.DaysRemaining)
	require.NotNil(t, res.EarliestSafeExit)
	// Window start must reach Jan 20, i.e. reference date Jul 18.
	assert.Equal(t, "2025-07-18", res.EarliestSafeExit.String())
}

func TestEvaluateRollingWindow_BoundaryDayIncluded(t *testing.T) {
	ref := MustDate("2025-07-01")
	windowStart := ref.AddDays(-179)

	atBoundary := []Interval{{Start: windowStart, End: &windowStart}}
	res, err := EvaluateRollingWindow(atBoundary, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.DaysUsed, "day at the exact window boundary is included")

	beforeBoundary := windowStart.AddDays(-1)
	res, err = EvaluateRollingWindow([]Interval{{Start: beforeBoundary, End: &beforeBoundary}}, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.DaysUsed)
}

func TestEvaluateRollingWindow_Idempotent(t *testing.T) {
	intervals := []Interval{
		{Start: MustDate("2025-03-01"), End: datePtr("2025-03-30")},
		{Start: MustDate("2025-06-01")},
	}
	ref := MustDate("2025-07-01")

	first, err := EvaluateRollingWindow(intervals, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)
	second, err := EvaluateRollingWindow(intervals, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEvaluateRollingWindow_MonotonicInHistory(t *testing.T) {
	ref := MustDate("2025-07-01")
	history := []Interval{
		{Start: MustDate("2025-02-01"), End: datePtr("2025-02-10")},
	}

	prev, err := EvaluateRollingWindow(history, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)

	additions := []Interval{
		{Start: MustDate("2025-04-01"), End: datePtr("2025-04-05")},
		{Start: MustDate("2025-05-10"), End: datePtr("2025-05-10")},
		{Start: MustDate("2024-06-01"), End: datePtr("2024-06-30")}, // outside window, adds nothing
	}
	for _, add := range additions {
		history = append(history, add)
		res, err := EvaluateRollingWindow(history, 180, 90, DefaultPolicy(), ref)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.DaysUsed, prev.DaysUsed)
		prev = res
	}
}

func TestEvaluateRollingWindow_OngoingPinnedAtReference(t *testing.T) {
	intervals := []Interval{{Start: MustDate("2025-06-01")}}
	ref := MustDate("2025-06-30")

	res, err := EvaluateRollingWindow(intervals, 180, 90, DefaultPolicy(), ref)
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.DaysUsed)
	assert.Equal(t, 60.0, res.DaysRemaining)
	assert.Nil(t, res.EarliestSafeExit)
}

func TestEvaluateRollingWindow_Errors(t *testing.T) {
	ref := MustDate("2025-07-01")

	_, err := EvaluateRollingWindow([]Interval{{Start: MustDate("2025-08-01")}}, 180, 90, DefaultPolicy(), ref)
	assert.ErrorIs(t, err, ErrInvalidReferenceDate)

	_, err = EvaluateRollingWindow(nil, 0, 90, DefaultPolicy(), ref)
	assert.Error(t, err)
}
