package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/tartampluch/go-cumplebot/internal/bot"
	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/tartampluch/go-cumplebot/internal/engine"
	"github.com/tartampluch/go-cumplebot/internal/i18n"
	"github.com/tartampluch/go-cumplebot/internal/sched"
	"github.com/tartampluch/go-cumplebot/internal/server"
	"github.com/tartampluch/go-cumplebot/internal/store"
	"github.com/tartampluch/go-cumplebot/internal/usagelog"
)

// main delegates to runMain so that deferred calls (like closing the log
// file) run before the process terminates. os.Exit() skips defers.
func main() {
	os.Exit(runMain())
}

// runMain manages the process lifecycle, argument parsing, and exit codes.
func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// Structured logging comes up first to capture startup issues.
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	if err := run(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires dependencies, arms the daily triggers and blocks on the
// Telegram polling loop until the context is cancelled.
func run(ctx context.Context) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	api, err := tgbotapi.NewBotAPI(settings.BotToken)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBotInit, err)
	}
	slog.Info(config.MsgBotAuthorized,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyUser, api.Self.UserName,
	)

	source := buildSource(settings)

	var feed *server.FeedServer
	if settings.FeedPort != "" {
		feed = server.NewFeedServer(settings.FeedPort)
		go func() {
			if err := feed.Start(ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyError, err,
				)
			}
		}()
	} else {
		slog.Info(config.MsgFeedDisabled, config.LogKeyComponent, config.CompMain)
	}

	b := &bot.Bot{
		Settings:   settings,
		Translator: i18n.New(settings.Language),
		Clock:      engine.RealClock{},
		Source:     source,
		Recorder:   usagelog.NewFileRecorder(settings.UsageLogPath),
		Messenger:  &bot.TelegramMessenger{API: api},
		Feed:       feed,
	}

	// Two independent daily triggers: birthday delivery and the nightly
	// usage report. Each runs in its own goroutine; a slow job stalls only
	// its own next fire, never the other trigger or command handling.
	birthdayTrigger := &sched.Trigger{
		Name:   config.JobBirthday,
		Hour:   settings.BirthdayHour,
		Minute: settings.BirthdayMinute,
		Job:    b.BirthdayJob,
	}
	statsTrigger := &sched.Trigger{
		Name:   config.JobStats,
		Hour:   settings.StatsHour,
		Minute: settings.StatsMinute,
		Job:    b.StatsJob,
	}
	go birthdayTrigger.Run(ctx)
	go statsTrigger.Run(ctx)

	b.Poll(ctx, api)
	return nil
}

// buildSource selects the birthday source. A missing REST configuration is
// not fatal: the birthday job degrades to a warned no-op.
func buildSource(settings config.Settings) store.Source {
	switch settings.SourceMode {
	case config.SourceModeLocal:
		if settings.LocalPath == "" {
			slog.Warn(config.ErrLocalPathEmpty, config.LogKeyComponent, config.CompMain)
			return nil
		}
		return &store.VCardSource{Path: settings.LocalPath}
	case config.SourceModeRest:
		if !settings.HasStore() {
			slog.Warn(config.MsgStoreSkipped, config.LogKeyComponent, config.CompMain)
			return nil
		}
		return store.NewRESTStore(settings.StoreURL, settings.StoreKey)
	default:
		slog.Warn(config.ErrModeUnsupport,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyMode, settings.SourceMode,
		)
		return nil
	}
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	writers = append(writers, os.Stdout)

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", err
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
