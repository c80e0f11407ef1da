package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomadtrail/nomad-backend-go/internal/database"
	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/repository"
	"github.com/nomadtrail/nomad-backend-go/internal/rules"
)

// Seeded history, evaluated at 2025-07-01 throughout:
//
//	FR 2025-01-15..2025-02-13  30 days (Schengen member)
//	ES 2025-03-01..2025-03-30  30 days (Schengen member)
//	US 2023-06-01..2023-09-28  120 days
//	US 2024-01-01..2024-04-29  120 days
//	US 2025-04-01..2025-05-30  60 days
var seedStays = []struct {
	jurisdiction, start, end string
}{
	{"FR", "2025-01-15", "2025-02-13"},
	{"ES", "2025-03-01", "2025-03-30"},
	{"US", "2023-06-01", "2023-09-28"},
	{"US", "2024-01-01", "2024-04-29"},
	{"US", "2025-04-01", "2025-05-30"},
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "nomad-service-test")
	if err != nil {
		panic(err)
	}

	if err := database.Init(database.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		panic(err)
	}
	if err := database.RunMigrations(database.GetDB()); err != nil {
		panic(err)
	}

	repo := repository.NewStayRepository(database.GetDB())
	for _, s := range seedStays {
		end := presence.MustDate(s.end)
		stay := &models.Stay{
			ID:           uuid.NewString(),
			Jurisdiction: s.jurisdiction,
			StartDate:    presence.MustDate(s.start),
			EndDate:      &end,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.Insert(stay); err != nil {
			panic(err)
		}
	}

	code := m.Run()

	_ = database.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newPresenceService(t *testing.T) *PresenceService {
	t.Helper()
	registry, err := rules.Load()
	require.NoError(t, err)
	return NewPresenceService(repository.NewStayRepository(database.GetDB()), registry)
}

func TestOverviewMirrorsZoneStays(t *testing.T) {
	svc := newPresenceService(t)
	ref := presence.MustDate("2025-07-01")

	statuses, err := svc.Overview(ref, presence.DefaultPolicy(), presence.EvalOptions{})
	require.NoError(t, err)

	byID := make(map[string]presence.JurisdictionStatus, len(statuses))
	for _, st := range statuses {
		byID[st.JurisdictionID] = st
	}

	// Member stays consume the shared zone allowance too.
	require.Contains(t, byID, "SCHENGEN")
	assert.Equal(t, 60.0, byID["SCHENGEN"].DaysUsed)

	require.Contains(t, byID, "FR")
	assert.Equal(t, 30.0, byID["FR"].DaysUsed)
	assert.Equal(t, presence.TierSafe, byID["FR"].RiskTier)

	// Sorted output, not map order.
	for i := 1; i < len(statuses); i++ {
		assert.Less(t, statuses[i-1].JurisdictionID, statuses[i].JurisdictionID)
	}
}

func TestJurisdictionUnknownFailsClosed(t *testing.T) {
	svc := newPresenceService(t)

	_, err := svc.Jurisdiction("XX", presence.MustDate("2025-07-01"), presence.DefaultPolicy(), presence.EvalOptions{})
	assert.ErrorIs(t, err, presence.ErrNotFound)
}

func TestSchengenDetail(t *testing.T) {
	svc := newPresenceService(t)

	detail, err := svc.Schengen(presence.MustDate("2025-07-01"), presence.DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 60.0, detail.DaysUsed)
	assert.Equal(t, 30.0, detail.DaysRemaining)
	assert.Equal(t, 180, detail.WindowDays)
	assert.Equal(t, 90, detail.LimitDays)
	assert.Equal(t, presence.TierMonitor, detail.RiskTier)
	assert.Contains(t, detail.Members, "FR")
	assert.Contains(t, detail.Members, "ES")
	assert.Nil(t, detail.EarliestSafeExit, "under the limit, no exit date needed")
}

func TestSubstantialPresence(t *testing.T) {
	svc := newPresenceService(t)

	res, err := svc.SubstantialPresence(presence.MustDate("2025-07-01"), presence.DefaultPolicy())
	require.NoError(t, err)

	// 60 + 120/3 + 120/6 = 120 weighted days: under the 183 threshold.
	assert.Equal(t, 120, res.WeightedTotal)
	assert.Equal(t, 60, res.CurrentYearDays)
	assert.False(t, res.Passes)
	assert.Equal(t, []int{2025, 2024, 2023}, res.HistoryYears)
}

func TestSubstantialPresenceNoCurrentYear(t *testing.T) {
	svc := newPresenceService(t)

	// 2022: all seeded US stays are in the future relative to this ref, so
	// the current year has no recorded presence.
	_, err := svc.SubstantialPresence(presence.MustDate("2022-07-01"), presence.DefaultPolicy())
	assert.ErrorIs(t, err, presence.ErrMissingCurrentYearEntry)
}

func TestProjectCrossesSchengenTier(t *testing.T) {
	svc := newPresenceService(t)
	ref := presence.MustDate("2025-07-01")

	before, err := svc.stays.ListActive()
	require.NoError(t, err)

	end := presence.MustDate("2025-08-03")
	planned := []presence.Interval{{
		Jurisdiction: "FR",
		Start:        presence.MustDate("2025-07-05"),
		End:          &end,
	}}

	projections, err := svc.Project(planned, ref, presence.DefaultPolicy(), presence.EvalOptions{})
	require.NoError(t, err)

	// The planned member stay projects both the member and the zone.
	require.Contains(t, projections, "FR")
	require.Contains(t, projections, "SCHENGEN")

	// Zone window re-evaluated at the planned end 2025-08-03: the window
	// keeps 9 of the FR days and all 30 ES days, plus 30 planned = 69.
	zone := projections["SCHENGEN"]
	assert.Equal(t, 60.0, zone.Current.DaysUsed)
	assert.Equal(t, 69.0, zone.Projected.DaysUsed)
	assert.Equal(t, presence.TierMonitor, zone.Current.RiskTier)
	assert.Equal(t, presence.TierWarning, zone.Projected.RiskTier)
	assert.True(t, zone.TierCrossed)

	// France's own cumulative count grows without changing tier.
	fr := projections["FR"]
	assert.Equal(t, 30.0, fr.Current.DaysUsed)
	assert.Equal(t, 60.0, fr.Projected.DaysUsed)
	assert.False(t, fr.TierCrossed)

	// Projection never writes to the store.
	after, err := svc.stays.ListActive()
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
}

func TestProjectUnknownJurisdiction(t *testing.T) {
	svc := newPresenceService(t)

	end := presence.MustDate("2025-08-03")
	planned := []presence.Interval{{Jurisdiction: "XX", Start: presence.MustDate("2025-07-05"), End: &end}}

	_, err := svc.Project(planned, presence.MustDate("2025-07-01"), presence.DefaultPolicy(), presence.EvalOptions{})
	assert.ErrorIs(t, err, presence.ErrNotFound)
}
