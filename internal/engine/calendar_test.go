package engine_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-cumplebot/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestCalendarBuild_EventsAndTodayCount(t *testing.T) {
	// Scenario: one birthday today, one later in the year.
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: now},
		FormatSummary: func(name string) string {
			return fmt.Sprintf("Cumpleaños: %s", name)
		},
	}

	records := []engine.PersonRecord{
		{ID: "1", Name: "Hoy", RawDate: "1990-06-01"},
		{ID: "2", Name: "Luego", RawDate: "1990-12-31"},
	}

	ics, today, err := builder.Build(records)

	require.NoError(t, err)
	assert.Equal(t, 1, today, "exactly one birthday falls on June 1st")

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "SUMMARY:Cumpleaños: Hoy")
	assert.Contains(t, icsStr, "SUMMARY:Cumpleaños: Luego")

	// Previous, current and next year per person.
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20240601")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250601")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260601")
	assert.Equal(t, 6, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestCalendarBuild_SkipsUnresolvableDates(t *testing.T) {
	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	records := []engine.PersonRecord{
		{ID: "1", Name: "SinFecha", RawDate: "garbage"},
	}

	ics, today, err := builder.Build(records)

	require.NoError(t, err)
	assert.Equal(t, 0, today)
	assert.NotContains(t, string(ics), "BEGIN:VEVENT")
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR", "empty feed must still be a valid calendar")
}

func TestCalendarBuild_SkipsYearsBeforeBirth(t *testing.T) {
	// Born mid-2025; no event may exist for 2024.
	builder := &engine.CalendarBuilder{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	records := []engine.PersonRecord{
		{ID: "1", Name: "Bebé", RawDate: "2025-05-01"},
	}

	ics, _, err := builder.Build(records)

	require.NoError(t, err)
	icsStr := string(ics)
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260501")
}
