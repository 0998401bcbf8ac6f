package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeProviderFallsBackToLocal(t *testing.T) {
	tp := NewTimeProvider("Not/AZone")
	assert.Equal(t, time.Local, tp.Location())
}

func TestSetTimezone(t *testing.T) {
	tp := NewTimeProvider("UTC")
	require.NoError(t, tp.SetTimezone("America/Bogota"))
	assert.Equal(t, "America/Bogota", tp.Location().String())

	assert.Error(t, tp.SetTimezone("Nowhere/Fake"))
}

func TestSameDay(t *testing.T) {
	tp := NewTimeProvider("UTC")

	a := time.Date(2024, time.March, 10, 0, 1, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, time.March, 11, 0, 0, 1, 0, time.UTC)

	assert.True(t, tp.SameDay(a, b))
	assert.False(t, tp.SameDay(b, c))

	// One minute apart is still a day boundary; elapsed time is irrelevant.
	assert.False(t, tp.SameDay(
		time.Date(2024, time.March, 10, 23, 59, 30, 0, time.UTC),
		time.Date(2024, time.March, 11, 0, 0, 30, 0, time.UTC)))
}

func TestSameDayAcrossLocations(t *testing.T) {
	tp := NewTimeProvider("America/Bogota")

	// 2024-03-10 02:00 UTC is 2024-03-09 21:00 in Bogota.
	a := time.Date(2024, time.March, 10, 2, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 9, 20, 0, 0, 0, time.UTC)

	assert.True(t, tp.SameDay(a, b))
	assert.False(t, NewTimeProvider("UTC").SameDay(a, b))
}

func TestDayLabel(t *testing.T) {
	tp := NewTimeProvider("UTC")
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		when     time.Time
		expected string
	}{
		{"today", time.Date(2024, time.March, 10, 0, 30, 0, 0, time.UTC), "Today"},
		{"yesterday", time.Date(2024, time.March, 9, 23, 0, 0, 0, time.UTC), "Yesterday"},
		{"two days ago", time.Date(2024, time.March, 8, 12, 0, 0, 0, time.UTC), "08/03/2024"},
		{"last year", time.Date(2023, time.December, 24, 12, 0, 0, 0, time.UTC), "24/12/2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tp.DayLabel(tt.when, now))
		})
	}
}
