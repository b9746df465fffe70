package engine

import (
	"strings"
	"time"

	"github.com/tartampluch/go-cumplebot/internal/config"
)

// CanonicalDate is a month/day pair describing a yearly recurring date.
// Year and YearKnown are transient parsing artifacts: they are used for
// calendar feed generation and display, never for recurrence logic.
type CanonicalDate struct {
	Month     time.Month
	Day       int
	Year      int
	YearKnown bool
}

// parseStrategy attempts one interpretation of a raw date string.
// Strategies are tried in order; the first success wins.
type parseStrategy func(s string) (CanonicalDate, bool)

var parseStrategies = []parseStrategy{
	parseISO,
	parseExplicitLayouts,
	parseHeuristic,
}

// Normalize converts a raw birthdate string into a CanonicalDate.
// It returns nil for empty input or when every strategy fails, so the
// caller can distinguish "no date" from any concrete date. It never
// returns an error and never panics.
func Normalize(raw string) *CanonicalDate {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// Trailing Z timezone markers only get in the way of date-only layouts.
	s = strings.TrimSuffix(s, "Z")

	for _, strat := range parseStrategies {
		if d, ok := strat(s); ok {
			return &d
		}
	}
	return nil
}

// parseISO covers strict ISO-8601 date and date-time inputs.
func parseISO(s string) (CanonicalDate, bool) {
	for _, layout := range []string{config.DateFormatFullDash, config.DateFormatFullT} {
		if t, err := time.Parse(layout, s); err == nil {
			return fromTime(t), true
		}
	}
	return CanonicalDate{}, false
}

// parseExplicitLayouts tries the fixed ordered list of known formats.
func parseExplicitLayouts(s string) (CanonicalDate, bool) {
	layouts := []string{
		config.DateFormatFullT,
		config.DateFormatFullTFrac,
		config.DateFormatFullDash,
		config.DateFormatDayFirst,
		config.DateFormatDayDash,
		config.DateFormatUSSlash,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fromTime(t), true
		}
	}
	return CanonicalDate{}, false
}

// parseHeuristic is the last-resort tokenizer. It uniformizes separators,
// picks the first token containing a digit and splits it into three
// segments. A 4-character leading segment is read as Y-M-D, anything else
// as D-M-Y. Inputs like "01-02-03" are inherently ambiguous here; this is
// a lossy fallback, not a guarantee.
func parseHeuristic(s string) (CanonicalDate, bool) {
	uniform := strings.NewReplacer("T", " ", "/", "-").Replace(s)

	var token string
	for _, part := range strings.Fields(uniform) {
		if strings.ContainsAny(part, "0123456789") {
			token = part
			break
		}
	}
	if token == "" {
		return CanonicalDate{}, false
	}

	segs := strings.Split(token, "-")
	if len(segs) != 3 {
		return CanonicalDate{}, false
	}

	nums := make([]int, 3)
	for i, seg := range segs {
		n, ok := atoiStrict(seg)
		if !ok {
			return CanonicalDate{}, false
		}
		nums[i] = n
	}

	var year, month, day int
	if len(segs[0]) == 4 {
		year, month, day = nums[0], nums[1], nums[2]
	} else {
		day, month, year = nums[0], nums[1], nums[2]
	}

	return makeCanonical(year, month, day)
}

// fromTime builds a CanonicalDate out of a successfully parsed absolute date.
func fromTime(t time.Time) CanonicalDate {
	return CanonicalDate{
		Month:     t.Month(),
		Day:       t.Day(),
		Year:      t.Year(),
		YearKnown: true,
	}
}

// makeCanonical validates a year/month/day triple. The day is checked
// against a leap reference year so that Feb 29 is accepted regardless of
// the written year; the recurrence logic maps it to Feb 28 when needed.
func makeCanonical(year, month, day int) (CanonicalDate, bool) {
	if month < 1 || month > 12 || day < 1 {
		return CanonicalDate{}, false
	}
	ref := time.Date(config.DefaultLeapYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if ref.Month() != time.Month(month) || ref.Day() != day {
		return CanonicalDate{}, false
	}
	return CanonicalDate{
		Month:     time.Month(month),
		Day:       day,
		Year:      year,
		YearKnown: true,
	}, true
}

func atoiStrict(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
