package bot

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/tartampluch/go-cumplebot/internal/engine"
	"github.com/tartampluch/go-cumplebot/internal/stats"
)

// BirthdayJob announces today's birthdays to the configured chat and
// refreshes the calendar feed. It is invoked once daily by its trigger
// and degrades to a no-op when the source is not configured.
func (b *Bot) BirthdayJob(ctx context.Context) {
	log := slog.With(
		config.LogKeyComponent, config.CompJob,
		config.LogKeyJob, config.JobBirthday,
	)

	if b.Source == nil {
		log.Warn(config.MsgStoreSkipped)
		return
	}

	records := b.fetchRecords(ctx)
	todays := engine.FindToday(records, b.Clock.Now())

	var message string
	if len(todays) > 0 {
		names := make([]string, 0, len(todays))
		for _, p := range todays {
			names = append(names, p.Name)
		}
		message = b.Translator.MsgData(config.TKeyBdayToday, map[string]any{
			"Names": b.Translator.JoinNames(names),
		})
	} else {
		message = b.Translator.Msg(config.TKeyBdayNone)
	}

	if b.Settings.ChatID != 0 {
		if err := b.Messenger.SendText(b.Settings.ChatID, message); err != nil {
			log.Error(config.ErrSendText, config.LogKeyError, err)
		} else {
			log.Info(config.MsgBdaySent, config.LogKeyCount, len(todays))
		}
	} else {
		log.Info(config.MsgBdayNotSent, config.LogKeyValue, message)
	}

	b.updateFeed(records)
}

// StatsJob posts the nightly usage report and clears the log afterwards.
func (b *Bot) StatsJob(ctx context.Context) {
	b.runStatsReport(ctx, b.Settings.ChatID, true)
}

// runStatsReport assembles and delivers the usage report. Scheduled runs
// (clear=true) delete the log and the rendered chart afterwards; on-demand
// runs keep both.
func (b *Bot) runStatsReport(_ context.Context, chatID int64, clear bool) {
	log := slog.With(
		config.LogKeyComponent, config.CompJob,
		config.LogKeyJob, config.JobStats,
	)

	entries, err := b.Recorder.DrainAll()
	if err != nil {
		log.Error(config.ErrUsageRead, config.LogKeyError, err)
		if chatID != 0 && !clear {
			b.reply(chatID, b.Translator.Msg(config.TKeyNothingReport))
		}
		return
	}

	if entries == nil && clear {
		log.Info(config.MsgStatsNoLog)
		return
	}

	if len(entries) == 0 {
		if chatID != 0 {
			b.reply(chatID, b.Translator.Msg(config.TKeyStatsEmpty))
		}
		b.clearUsageLog(clear, "", log)
		return
	}

	summary := stats.Summarize(entries)

	chartPath := ""
	if path, err := stats.RenderChart(summary, config.DefaultChartPath); err != nil {
		log.Error(config.ErrChartRender, config.LogKeyError, err)
	} else {
		chartPath = path
	}

	if chatID != 0 {
		if chartPath != "" {
			if err := b.Messenger.SendImage(chatID, chartPath); err != nil {
				log.Error(config.ErrSendImage, config.LogKeyError, err)
			}
		}

		b.reply(chatID, b.Translator.MsgData(config.TKeyStatsTopUser, map[string]any{
			"User":  summary.TopUser,
			"Count": summary.TopCount,
		}))

		b.reply(chatID, b.Translator.MsgData(config.TKeyStatsSummary, map[string]any{
			"Lines": strings.Join(summary.CommandLines(), "\n"),
		}))

		log.Info(config.MsgStatsSent, config.LogKeyCount, summary.Total)
	} else {
		log.Info(config.MsgBdayNotSent, config.LogKeyCount, summary.Total)
	}

	b.clearUsageLog(clear, chartPath, log)
}

// updateFeed regenerates the ICS feed from the latest record set.
func (b *Bot) updateFeed(records []engine.PersonRecord) {
	if b.Feed == nil {
		return
	}

	builder := &engine.CalendarBuilder{
		Clock: b.Clock,
		FormatSummary: func(name string) string {
			return b.Translator.MsgData(config.TKeyEvtSummary, map[string]any{"Name": name})
		},
	}

	ics, _, err := builder.Build(records)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompJob,
			config.LogKeyError, err)
		return
	}
	b.Feed.Update(ics)
}

func (b *Bot) clearUsageLog(clear bool, chartPath string, log *slog.Logger) {
	if !clear {
		return
	}
	if err := b.Recorder.Clear(); err != nil {
		log.Warn(config.ErrUsageWrite, config.LogKeyError, err)
	} else {
		log.Info(config.MsgStatsCleared)
	}
	if chartPath != "" {
		_ = os.Remove(chartPath)
	}
}
