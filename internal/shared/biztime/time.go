// Package biztime provides the clock and business timezone used for day boundaries.
// All storage is UTC; the business timezone only decides where a calendar day
// starts and ends when a date range is filtered.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "UTC"

// DateLayout is the calendar date format accepted by filters.
const DateLayout = "2006-01-02"

var (
	locMu       sync.RWMutex
	bizLocation = time.UTC
)

// Init sets the business timezone. An empty name selects UTC.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	locMu.Lock()
	bizLocation = loc
	locMu.Unlock()
	return nil
}

// Location returns the business timezone.
func Location() *time.Location {
	locMu.RLock()
	defer locMu.RUnlock()
	return bizLocation
}

// Clock supplies the current instant. Timestamps written by the ticket core
// all come from one Clock so tests can pin them.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC at millisecond precision, the
// resolution timestamps are stored with.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FixedClock returns a settable instant. Safe for concurrent use.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t.UTC()
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new instant.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// StartOfDayUTC returns 00:00:00 of t's business day, in UTC.
func StartOfDayUTC(t time.Time) time.Time {
	loc := Location()
	b := t.In(loc)
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, loc).UTC()
}

// EndOfDayUTC returns the last nanosecond of t's business day, in UTC.
func EndOfDayUTC(t time.Time) time.Time {
	loc := Location()
	b := t.In(loc)
	return time.Date(b.Year(), b.Month(), b.Day(), 23, 59, 59, 999999999, loc).UTC()
}

// ParseDate parses YYYY-MM-DD as midnight in the business timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Year returns the calendar year of t in the business timezone.
func Year(t time.Time) int {
	return t.In(Location()).Year()
}
