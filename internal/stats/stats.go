// Package stats aggregates usage-log entries into a daily summary and
// renders the hourly activity chart.
package stats

import (
	"sort"
	"strconv"
	"time"

	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/tartampluch/go-cumplebot/internal/usagelog"
)

// HoursPerDay sizes the hourly histogram axis.
const HoursPerDay = 24

// Summary is the aggregated view of one day of command usage.
type Summary struct {
	TopUser    string
	TopCount   int
	PerCommand map[string]int
	Hourly     [HoursPerDay]int
	Total      int
}

// Summarize computes the usage summary for a batch of entries.
// Entries with unparseable timestamps still count toward user and command
// totals; they just fall out of the hourly histogram.
func Summarize(entries []usagelog.Entry) Summary {
	s := Summary{
		PerCommand: make(map[string]int),
		Total:      len(entries),
	}

	userCounts := make(map[string]int)
	for _, e := range entries {
		userCounts[e.User]++
		s.PerCommand[e.Command]++

		if t, err := time.Parse(config.DateFormatFullT, e.Timestamp); err == nil {
			s.Hourly[t.Hour()]++
		}
	}

	for user, count := range userCounts {
		if count > s.TopCount || (count == s.TopCount && user < s.TopUser) {
			s.TopUser = user
			s.TopCount = count
		}
	}
	return s
}

// CommandLines renders the per-command counts as "cmd: n" lines, sorted by
// command name for stable output.
func (s Summary) CommandLines() []string {
	commands := make([]string, 0, len(s.PerCommand))
	for cmd := range s.PerCommand {
		commands = append(commands, cmd)
	}
	sort.Strings(commands)

	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, cmd+": "+strconv.Itoa(s.PerCommand[cmd]))
	}
	return lines
}
