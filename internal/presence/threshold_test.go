package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_CanonicalBands(t *testing.T) {
	cases := []struct {
		daysUsed float64
		want     Tier
	}{
		{0, TierSafe},
		{99, TierSafe},
		{100, TierMonitor},
		{149, TierMonitor},
		{150, TierWarning},
		{174, TierWarning},
		{175, TierDanger},
		{182, TierDanger},
		{183, TierCritical},
		{200, TierCritical},
	}
	for _, tc := range cases {
		got := Classify(tc.daysUsed, 183)
		assert.Equal(t, tc.want, got.RiskTier, "daysUsed=%v", tc.daysUsed)
	}
}

func TestClassify_BandsScaleProportionally(t *testing.T) {
	// A 90-day Schengen limit must warn at equivalent exposure to the
	// canonical 183-day bands.
	cases := []struct {
		daysUsed float64
		want     Tier
	}{
		{49, TierSafe},
		{50, TierMonitor},
		{74, TierWarning},
		{87, TierDanger},
		{90, TierCritical},
	}
	for _, tc := range cases {
		got := Classify(tc.daysUsed, 90)
		assert.Equal(t, tc.want, got.RiskTier, "daysUsed=%v", tc.daysUsed)
	}
}

func TestClassify_ZeroLimitIsAlwaysSafe(t *testing.T) {
	got := Classify(400, 0)
	assert.Equal(t, TierSafe, got.RiskTier)
	assert.Equal(t, 0.0, got.PercentUsed)
	assert.Equal(t, 0.0, got.DaysRemaining)
}

func TestClassify_RemainingAndPercent(t *testing.T) {
	got := Classify(60, 90)
	assert.Equal(t, 30.0, got.DaysRemaining)
	assert.InDelta(t, 66.67, got.PercentUsed, 0.01)

	over := Classify(95, 90)
	assert.Equal(t, 0.0, over.DaysRemaining, "never negative")
	assert.Equal(t, TierCritical, over.RiskTier)
}

func TestTierRank(t *testing.T) {
	assert.Less(t, TierSafe.Rank(), TierMonitor.Rank())
	assert.Less(t, TierMonitor.Rank(), TierWarning.Rank())
	assert.Less(t, TierWarning.Rank(), TierDanger.Rank())
	assert.Less(t, TierDanger.Rank(), TierCritical.Rank())
}
