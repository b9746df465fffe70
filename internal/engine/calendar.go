package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-cumplebot/internal/config"
)

// CalendarBuilder turns a record set into an iCalendar feed of upcoming
// birthdays. FormatSummary lets the caller inject localized event titles.
type CalendarBuilder struct {
	Clock         Clock
	FormatSummary func(name string) string
}

// Build renders the ICS feed and reports how many birthdays fall today.
// Records without a resolvable date are skipped, never fatal.
func (b *CalendarBuilder) Build(records []PersonRecord) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays are local calendar dates; UTC is only used for stamping.
	now := b.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ total, withBday, today int }{len(records), 0, 0}

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
		stats.withBday++

		events, isToday := b.buildEvents(rec, *d, now)
		if isToday {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, rec.Name)
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	b.logBuildStats(stats)

	// A calendar without components is invalid; serve a constant stub so
	// feed clients never flag the endpoint.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), stats.today, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), stats.today, nil
}

// buildEvents generates one event per target year (previous, current, next)
// so calendar clients can scroll without an immediate refresh.
func (b *CalendarBuilder) buildEvents(rec PersonRecord, d CanonicalDate, now time.Time) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	// Deterministic UID so feed refreshes do not duplicate events.
	input := fmt.Sprintf(config.FormatHashInput, rec.ID, rec.Name, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])

	summary := fmt.Sprintf("%s %s", config.ICalCalName, rec.Name)
	if b.FormatSummary != nil {
		summary = b.FormatSummary(rec.Name)
	}

	todayYear, todayMonth, todayDay := now.Date()

	var events []*ical.Event
	isToday := false

	for _, y := range targetYears {
		// Skip years before the recorded birth year, when known.
		if d.YearKnown && d.Year > y {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		eventDate := occurrenceIn(y, d, loc)
		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events, isToday
}

func (b *CalendarBuilder) logBuildStats(stats struct{ total, withBday, today int }) {
	slog.Info(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompEngine,
		slog.Group("stats",
			slog.Int(config.LogKeyTotal, stats.total),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}
