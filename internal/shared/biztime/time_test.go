package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTimezone(t *testing.T, tz string) {
	t.Helper()
	require.NoError(t, Init(tz))
	t.Cleanup(func() { _ = Init(DefaultTimezone) })
}

func TestDayBoundaries_UTC(t *testing.T) {
	withTimezone(t, "UTC")
	ts := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
	assert.Equal(t, time.Date(2024, 3, 9, 23, 59, 59, 999999999, time.UTC), EndOfDayUTC(ts))
}

func TestDayBoundaries_BusinessTimezone(t *testing.T) {
	withTimezone(t, "Asia/Shanghai")
	// 2024-03-09 20:00 UTC is already 2024-03-10 in Shanghai.
	ts := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 9, 16, 0, 0, 0, time.UTC), StartOfDayUTC(ts))
	assert.Equal(t, 2024, Year(ts))
}

func TestParseDate(t *testing.T) {
	withTimezone(t, "UTC")

	d, err := ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), d.UTC())

	_, err = ParseDate("31/01/2024")
	assert.Error(t, err)
}

func TestInit_UnknownZone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus"))
	assert.Equal(t, time.UTC, Location())
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)
	c := NewFixedClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start.Add(time.Minute), c.Advance(time.Minute))
	assert.Equal(t, 2025, c.Now().Year())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestSystemClock_MillisecondPrecision(t *testing.T) {
	now := SystemClock{}.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}
