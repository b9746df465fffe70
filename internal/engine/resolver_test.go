package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindToday_MatchesMonthDay(t *testing.T) {
	today := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "1", Name: "Ana", RawDate: "1990-03-10"},
		{ID: "2", Name: "Berto", RawDate: "1985-11-02"},
		{ID: "3", Name: "Clara", RawDate: "2001-03-10"},
	}

	matches := FindToday(records, today)

	require.Len(t, matches, 2)
	assert.Equal(t, "Ana", matches[0].Name)
	assert.Equal(t, "Clara", matches[1].Name)
}

// TestFindToday_ExcludesUnresolvable verifies that records without a
// resolvable date are silently dropped, not errored.
func TestFindToday_ExcludesUnresolvable(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "1", Name: "NoDate", RawDate: ""},
		{ID: "2", Name: "Garbage", RawDate: "soon!"},
	}

	assert.Empty(t, FindToday(records, today))
}

func TestFindNext_TodayIsZeroDays(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "a", Name: "A", RawDate: "2020-03-10"},
	}

	result := FindNext(records, today)

	require.True(t, result.Found)
	assert.Equal(t, 0, result.DaysUntil, "same month/day means the birthday is today")
	assert.Equal(t, "A", result.Primary.Name)
	assert.Empty(t, result.Others)
}

func TestFindNext_TomorrowIsOneDay(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "a", Name: "A", RawDate: "1999-03-11"},
	}

	result := FindNext(records, today)

	require.True(t, result.Found)
	assert.Equal(t, 1, result.DaysUntil)
}

// TestFindNext_SameDayTieGrouping checks that everyone sharing the winning
// occurrence date is surfaced: one primary, the rest in Others.
func TestFindNext_SameDayTieGrouping(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "2", Name: "B", RawDate: "2020-03-10"},
		{ID: "1", Name: "A", RawDate: "2020-03-10"},
	}

	result := FindNext(records, today)

	require.True(t, result.Found)
	assert.Equal(t, 0, result.DaysUntil)
	// Deterministic tie-break: smallest ID wins regardless of input order.
	assert.Equal(t, "A", result.Primary.Name)
	require.Len(t, result.Others, 1)
	assert.Equal(t, "B", result.Others[0].Name)
}

func TestFindNext_PastBirthdayRollsToNextYear(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "a", Name: "A", RawDate: "1990-01-01"},
	}

	result := FindNext(records, today)

	require.True(t, result.Found)
	assert.Equal(t, 2025, result.Occurrence.Year())
	assert.Equal(t, time.January, result.Occurrence.Month())
	assert.Equal(t, 1, result.Occurrence.Day())
	assert.Equal(t, 200, result.DaysUntil)
}

// TestFindNext_LeapDayFallsBackToFeb28 covers both branches: the current
// non-leap year and the next-year rollover.
func TestFindNext_LeapDayFallsBackToFeb28(t *testing.T) {
	records := []PersonRecord{
		{ID: "leap", Name: "Leap", RawDate: "2000-02-29"},
	}

	// 2025 is not a leap year: the occurrence lands on Feb 28, 2025.
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	result := FindNext(records, today)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), result.Occurrence)

	// After Feb 28, 2025 the next occurrence is Feb 28, 2026 (also non-leap).
	today = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	result = FindNext(records, today)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), result.Occurrence)

	// 2028 is a leap year: Feb 29 is preserved.
	today = time.Date(2028, 1, 1, 0, 0, 0, 0, time.UTC)
	result = FindNext(records, today)
	require.True(t, result.Found)
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), result.Occurrence)
}

func TestFindNext_NoResolvableDates(t *testing.T) {
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []PersonRecord{
		{ID: "1", Name: "A", RawDate: ""},
		{ID: "2", Name: "B", RawDate: "???"},
	}

	result := FindNext(records, today)
	assert.False(t, result.Found)
}
