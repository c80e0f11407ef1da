package repository

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
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "nomad-repo-test")
	if err != nil {
		panic(err)
	}

	if err := database.Init(database.Config{Path: filepath.Join(dir, "test.db")}); err != nil {
		panic(err)
	}
	if err := database.RunMigrations(database.GetDB()); err != nil {
		panic(err)
	}

	code := m.Run()

	_ = database.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newStay(jurisdiction, start string, end *string) *models.Stay {
	s := &models.Stay{
		ID:           uuid.NewString(),
		Jurisdiction: jurisdiction,
		StartDate:    presence.MustDate(start),
		CreatedAt:    time.Now().UTC(),
	}
	if end != nil {
		d := presence.MustDate(*end)
		s.EndDate = &d
	}
	return s
}

func strPtr(s string) *string { return &s }

func TestStayInsertAndList(t *testing.T) {
	repo := NewStayRepository(database.GetDB())

	stay := newStay("TH", "2025-01-01", strPtr("2025-01-30"))
	require.NoError(t, repo.Insert(stay))

	ongoing := newStay("TH", "2025-03-01", nil)
	require.NoError(t, repo.Insert(ongoing))

	stays, total, err := repo.List(models.StayFilter{Jurisdiction: "TH"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))

	var found *models.Stay
	for i := range stays {
		if stays[i].ID == ongoing.ID {
			found = &stays[i]
		}
	}
	require.NotNil(t, found)
	assert.Nil(t, found.EndDate, "ongoing stay round-trips with no end date")
	assert.Equal(t, "2025-03-01", found.StartDate.String())
}

func TestStayGetByID(t *testing.T) {
	repo := NewStayRepository(database.GetDB())

	stay := newStay("JP", "2025-02-01", strPtr("2025-02-10"))
	require.NoError(t, repo.Insert(stay))

	got, err := repo.GetByID(stay.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "JP", got.Jurisdiction)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2025-02-10", got.EndDate.String())

	missing, err := repo.GetByID(uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStaySupersede(t *testing.T) {
	repo := NewStayRepository(database.GetDB())

	original := newStay("MX", "2025-04-01", strPtr("2025-04-20"))
	require.NoError(t, repo.Insert(original))

	corrected := newStay("MX", "2025-04-02", strPtr("2025-04-19"))
	require.NoError(t, repo.Supersede(original.ID, corrected))

	got, err := repo.GetByID(original.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.SupersededAt)
	assert.Equal(t, corrected.ID, got.SupersededBy)

	// Active history only sees the correction.
	active, err := repo.ListActive()
	require.NoError(t, err)
	ids := make(map[string]bool, len(active))
	for _, s := range active {
		ids[s.ID] = true
	}
	assert.False(t, ids[original.ID])
	assert.True(t, ids[corrected.ID])

	// Superseding twice fails: history is immutable once corrected.
	err = repo.Supersede(original.ID, nil)
	assert.ErrorIs(t, err, presence.ErrNotFound)
}

func TestStaySupersedeWithoutReplacement(t *testing.T) {
	repo := NewStayRepository(database.GetDB())

	stay := newStay("BR", "2025-05-01", strPtr("2025-05-05"))
	require.NoError(t, repo.Insert(stay))
	require.NoError(t, repo.Supersede(stay.ID, nil))

	got, err := repo.GetByID(stay.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.SupersededAt)
	assert.Empty(t, got.SupersededBy)
}

func TestDocumentRepository(t *testing.T) {
	repo := NewDocumentRepository(database.GetDB())

	passport := &models.TravelDocument{
		ID:        uuid.NewString(),
		DocType:   models.DocPassport,
		Label:     "primary passport",
		ExpiresOn: presence.MustDate("2026-03-01"),
		CreatedAt: time.Now().UTC(),
	}
	visa := &models.TravelDocument{
		ID:           uuid.NewString(),
		DocType:      models.DocVisa,
		Jurisdiction: "TH",
		ExpiresOn:    presence.MustDate("2025-09-15"),
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(passport))
	require.NoError(t, repo.Insert(visa))

	docs, err := repo.List()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(docs), 2)

	expiring, err := repo.ExpiringBefore(presence.MustDate("2025-12-31"))
	require.NoError(t, err)
	ids := make(map[string]bool, len(expiring))
	for _, d := range expiring {
		ids[d.ID] = true
	}
	assert.True(t, ids[visa.ID])
	assert.False(t, ids[passport.ID])
}
