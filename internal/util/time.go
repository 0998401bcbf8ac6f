package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider resolves the wall-clock interpretation of report timestamps.
// Upstream date strings carry no timezone marker, so the location used for
// day boundaries and display formatting is configurable rather than fixed.
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the
// specified timezone name ("Local", "UTC", "America/Bogota", ...).
func InitializeTimeProvider(timezone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider, defaulting to the Local
// timezone when nothing was initialized.
func GetTimeProvider() *TimeProvider {
	if globalTimeProvider == nil {
		InitializeTimeProvider("Local")
	}
	return globalTimeProvider
}

// NewTimeProvider builds a standalone provider, falling back to Local when
// the timezone name does not resolve.
func NewTimeProvider(timezone string) *TimeProvider {
	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		provider.location = time.Local
	}
	return provider
}

// SetTimezone updates the location used by this provider.
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/Bogota, Europe/Madrid", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the configured location.
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone.
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}

// In converts a time to the configured timezone.
func (tp *TimeProvider) In(t time.Time) time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location)
}

// Format formats a time according to the layout in the configured timezone.
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location).Format(layout)
}

// SameDay reports whether two instants fall on the same calendar date in
// the configured location. Day boundaries compare dates, not elapsed time.
func (tp *TimeProvider) SameDay(a, b time.Time) bool {
	loc := tp.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DayLabel renders a chat-style date separator label for t relative to now:
// "Today", "Yesterday", or dd/mm/yyyy.
func (tp *TimeProvider) DayLabel(t, now time.Time) string {
	if tp.SameDay(t, now) {
		return "Today"
	}
	if tp.SameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return tp.Format(t, "02/01/2006")
}
