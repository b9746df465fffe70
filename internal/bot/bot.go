// Package bot wires the Telegram command surface to the birthday engine,
// the usage log and the daily jobs.
package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/tartampluch/go-cumplebot/internal/engine"
	"github.com/tartampluch/go-cumplebot/internal/i18n"
	"github.com/tartampluch/go-cumplebot/internal/server"
	"github.com/tartampluch/go-cumplebot/internal/store"
	"github.com/tartampluch/go-cumplebot/internal/usagelog"
)

// Bot hosts command handling and the two daily jobs. All collaborators sit
// behind interfaces; failures inside one handler or job never leak into
// another.
type Bot struct {
	Settings   config.Settings
	Translator *i18n.Translator
	Clock      engine.Clock

	Source    store.Source
	Recorder  usagelog.Recorder
	Messenger Messenger

	// Feed is optional; nil disables calendar publication.
	Feed *server.FeedServer
}

// Poll consumes Telegram updates until the context is cancelled.
func (b *Bot) Poll(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = config.PollTimeoutSeconds
	updates := api.GetUpdatesChan(u)

	slog.Info(config.MsgPolling, config.LogKeyComponent, config.CompBot)

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate processes one inbound update. Only commands are acted on;
// every command is logged before dispatch so the nightly report sees the
// full day, including commands whose handlers later fail.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		slog.Debug(config.MsgUpdateIgnored, config.LogKeyComponent, config.CompBot)
		return
	}

	user := displayName(msg.From)
	b.logCommand(user, msg.Text)

	command := msg.Command()
	chatID := msg.Chat.ID

	log := slog.With(
		config.LogKeyComponent, config.CompBot,
		config.LogKeyCommand, command,
		config.LogKeyUser, user,
	)

	switch command {
	case config.CmdStart:
		b.reply(chatID, b.greeting(msg.From))
	case config.CmdHelp:
		b.reply(chatID, b.Translator.Msg(config.TKeyHelp))
	case config.CmdGetCumple:
		b.handleGetCumple(ctx, chatID)
	case config.CmdStats:
		// On-demand report: the log is preserved.
		b.runStatsReport(ctx, chatID, false)
	case config.CmdPing:
		b.reply(chatID, b.Translator.Msg(config.TKeyPong))
	default:
		b.reply(chatID, b.Translator.Msg(config.TKeyHelp))
	}

	log.Debug(config.MsgCommandHandled)
}

// handleGetCumple answers with the nearest upcoming birthday.
func (b *Bot) handleGetCumple(ctx context.Context, chatID int64) {
	records := b.fetchRecords(ctx)

	result := engine.FindNext(records, b.Clock.Now())
	if !result.Found {
		b.reply(chatID, b.Translator.Msg(config.TKeyBdayNotFound))
		return
	}

	text := b.Translator.MsgData(config.TKeyBdayNext, map[string]any{
		"Name": result.Primary.Name,
		"Date": result.Occurrence.Format(config.DateFormatDisplay),
		"Days": result.DaysUntil,
	})

	if len(result.Others) > 0 {
		names := make([]string, 0, len(result.Others))
		for _, p := range result.Others {
			names = append(names, p.Name)
		}
		text += "\n" + b.Translator.MsgData(config.TKeyBdayNextAlso, map[string]any{
			"Names": b.Translator.JoinNames(names),
		})
	}

	b.reply(chatID, text)
}

// fetchRecords pulls the record set from the configured source. Any
// collaborator failure degrades to an empty result set; it never escapes.
func (b *Bot) fetchRecords(ctx context.Context) []engine.PersonRecord {
	if b.Source == nil {
		return nil
	}
	records, err := b.Source.Fetch(ctx)
	if err != nil {
		slog.Warn(config.MsgFetchFailed,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyError, err)
		return nil
	}
	return records
}

// logCommand appends the command to the usage log, stripping the @botname
// suffix used in group chats.
func (b *Bot) logCommand(user, text string) {
	command := strings.TrimSpace(strings.SplitN(text, config.BotNameSeparator, 2)[0])

	err := b.Recorder.Append(usagelog.Entry{
		Timestamp: b.Clock.Now().Format(config.DateFormatFullT),
		User:      user,
		Command:   command,
	})
	if err != nil {
		slog.Error(config.ErrUsageWrite,
			config.LogKeyComponent, config.CompUsageLog,
			config.LogKeyError, err)
		return
	}
	slog.Debug(config.MsgCommandLogged,
		config.LogKeyComponent, config.CompUsageLog,
		config.LogKeyUser, user,
		config.LogKeyCommand, command)
}

func (b *Bot) greeting(from *tgbotapi.User) string {
	if from == nil || from.FirstName == "" {
		return b.Translator.Msg(config.TKeyGreetingAnon)
	}
	return b.Translator.MsgData(config.TKeyGreeting, map[string]any{
		"Name": from.FirstName,
	})
}

// reply sends text to the chat; delivery failures are logged, not retried.
func (b *Bot) reply(chatID int64, text string) {
	if err := b.Messenger.SendText(chatID, text); err != nil {
		slog.Error(config.ErrSendText,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyChatID, chatID,
			config.LogKeyError, err)
	}
}

func displayName(from *tgbotapi.User) string {
	if from == nil {
		return ""
	}
	if from.UserName != "" {
		return from.UserName
	}
	return from.FirstName
}
