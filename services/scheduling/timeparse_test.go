package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	iso, err := ParseDate("2025-11-24")
	require.NoError(t, err)
	br, err := ParseDate("24/11/2025")
	require.NoError(t, err)

	assert.True(t, iso.Equal(br))
	assert.Equal(t, time.Monday, iso.Weekday())

	for _, bad := range []string{"", "24-11-2025", "11/24/2025", "2025/11/24", "yesterday"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"", "9h30", "24:00", "12:60", "12.30"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "23:59", FormatClock(1439))
	// The end-of-day boundary is not midnight of the next day.
	assert.Equal(t, "24:00", FormatClock(1440))
}

func TestBeforeDay(t *testing.T) {
	// A parsed date sits at UTC midnight; the clock may run in any zone. Only
	// the calendar fields decide ordering.
	hst := time.FixedZone("HST", -10*3600)
	date := time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC)

	assert.False(t, beforeDay(date, time.Date(2025, 11, 23, 10, 0, 0, 0, hst)))
	assert.False(t, beforeDay(date, time.Date(2025, 11, 23, 23, 59, 0, 0, hst)))
	assert.True(t, beforeDay(date, time.Date(2025, 11, 24, 0, 1, 0, 0, hst)))
	assert.False(t, beforeDay(date, time.Date(2025, 11, 22, 23, 59, 0, 0, hst)))

	assert.True(t, beforeDay(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, beforeDay(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}
