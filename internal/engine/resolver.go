package engine

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/tartampluch/go-cumplebot/internal/config"
)

// OccurrenceCandidate is the ephemeral projection of one record onto its
// next concrete birthday date. Recomputed on every resolver call.
type OccurrenceCandidate struct {
	Person     PersonRecord
	Date       CanonicalDate
	Occurrence time.Time
	DaysUntil  int
}

// NextResult describes the nearest upcoming birthday across a record set.
type NextResult struct {
	Found      bool
	Primary    PersonRecord
	Occurrence time.Time
	DaysUntil  int

	// Others lists every additional person sharing the exact same
	// occurrence date as Primary.
	Others []PersonRecord
}

// FindToday returns the records whose birthday month/day matches today.
// Records without a resolvable date are silently excluded.
func FindToday(records []PersonRecord, today time.Time) []PersonRecord {
	var matches []PersonRecord
	for _, rec := range records {
		d := Normalize(rec.RawDate)
		if d == nil {
			continue
		}
		if d.Month == today.Month() && d.Day == today.Day() {
			matches = append(matches, rec)
		}
	}
	return matches
}

// FindNext computes the single nearest upcoming birthday relative to today.
// Ties on the occurrence date are grouped: the candidate with the smallest
// record ID becomes the primary, the rest are listed in Others.
func FindNext(records []PersonRecord, today time.Time) NextResult {
	todayStart := startOfDay(today)

	var candidates []OccurrenceCandidate
	for _, rec := range records {
		d := Normalize(rec.RawDate)
		if d == nil {
			if rec.RawDate != "" {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyValue, rec.RawDate)
			}
			continue
		}

		occ := nextOccurrence(*d, todayStart)
		candidates = append(candidates, OccurrenceCandidate{
			Person:     rec,
			Date:       *d,
			Occurrence: occ,
			DaysUntil:  daysBetween(todayStart, occ),
		})
	}

	if len(candidates) == 0 {
		return NextResult{}
	}

	// Deterministic selection: nearest first, then by record ID so the
	// outcome does not depend on store fetch order.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DaysUntil != candidates[j].DaysUntil {
			return candidates[i].DaysUntil < candidates[j].DaysUntil
		}
		return candidates[i].Person.ID < candidates[j].Person.ID
	})

	winner := candidates[0]
	result := NextResult{
		Found:      true,
		Primary:    winner.Person,
		Occurrence: winner.Occurrence,
		DaysUntil:  winner.DaysUntil,
	}
	for _, c := range candidates[1:] {
		if c.Occurrence.Equal(winner.Occurrence) {
			result.Others = append(result.Others, c.Person)
		}
	}
	return result
}

// nextOccurrence binds a canonical month/day to the current year, or the
// following year if the date has already passed. Feb 29 resolves to Feb 28
// whenever the target year is not a leap year; both branches apply the
// fallback independently.
func nextOccurrence(d CanonicalDate, todayStart time.Time) time.Time {
	occ := occurrenceIn(todayStart.Year(), d, todayStart.Location())
	if occ.Before(todayStart) {
		occ = occurrenceIn(todayStart.Year()+1, d, todayStart.Location())
	}
	return occ
}

// occurrenceIn materializes a canonical date in a concrete year.
func occurrenceIn(year int, d CanonicalDate, loc *time.Location) time.Time {
	day := d.Day
	if d.Month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, d.Month, day, 0, 0, 0, 0, loc)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b. Rounding absorbs the odd
// hour introduced by DST transitions between the two midnights.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
