package presence

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 1, d.Day())

	_, err = ParseDate("07/01/2025")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	start := MustDate("2025-01-01")
	end := MustDate("2025-01-30")

	assert.Equal(t, 29, start.DaysUntil(end))
	assert.Equal(t, -29, end.DaysUntil(start))
	assert.Equal(t, 0, start.DaysUntil(start))

	// Leap-day boundary
	assert.Equal(t, MustDate("2024-03-01"), MustDate("2024-02-28").AddDays(2))
	assert.Equal(t, MustDate("2024-02-29"), MustDate("2024-03-01").AddDays(-1))
}

func TestDateJSON(t *testing.T) {
	raw, err := json.Marshal(MustDate("2025-06-15"))
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-15"`, string(raw))

	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-15"`), &d))
	assert.True(t, d.Equal(MustDate("2025-06-15")))

	assert.Error(t, json.Unmarshal([]byte(`"June 15"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-02-28"))
	assert.Equal(t, "2025-02-28", d.String())

	require.NoError(t, d.Scan([]byte("2024-12-31")))
	assert.Equal(t, "2024-12-31", d.String())

	assert.Error(t, d.Scan(42))
}
