package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
)

// Settings holds the runtime configuration resolved from the environment.
// Only the bot token is mandatory; everything else degrades gracefully.
type Settings struct {
	BotToken string

	StoreURL string
	StoreKey string

	// ChatID is the delivery target for scheduled messages.
	// Zero means "log instead of send".
	ChatID int64

	BirthdayHour   int
	BirthdayMinute int
	StatsHour      int
	StatsMinute    int

	Language string

	SourceMode string // SourceModeRest or SourceModeLocal
	LocalPath  string // vCard file path when SourceMode is local

	// FeedPort enables the ICS feed server when non-empty.
	FeedPort string

	UsageLogPath string
}

// LoadSettings reads configuration from a .env file (if present) and the
// process environment. It returns ErrTokenMissing if no bot token can be
// resolved from either the environment or the system keyring.
func LoadSettings() (Settings, error) {
	log := slog.With(LogKeyComponent, CompConfig)

	if err := godotenv.Load(); err != nil {
		log.Debug(MsgEnvFileMissing)
	}

	s := Settings{
		BotToken:       os.Getenv(EnvBotToken),
		StoreURL:       os.Getenv(EnvStoreURL),
		StoreKey:       os.Getenv(EnvStoreKey),
		ChatID:         envInt64(EnvChatID, 0),
		BirthdayHour:   envIntClamped(EnvBirthdayHour, DefaultBirthdayHour, 0, 23),
		BirthdayMinute: envIntClamped(EnvBirthdayMinute, DefaultBirthdayMinute, 0, 59),
		StatsHour:      envIntClamped(EnvStatsHour, DefaultStatsHour, 0, 23),
		StatsMinute:    envIntClamped(EnvStatsMinute, DefaultStatsMinute, 0, 59),
		Language:       envString(EnvLanguage, DefaultLanguage),
		SourceMode:     envString(EnvSourceMode, DefaultSourceMode),
		LocalPath:      os.Getenv(EnvLocalPath),
		FeedPort:       os.Getenv(EnvFeedPort),
		UsageLogPath:   envString(EnvUsageLogPath, DefaultUsageLogPath),
	}

	if s.BotToken == "" {
		// Fall back to the system keyring before giving up.
		token, err := keyring.Get(KeyringService, KeyringTokenKey)
		if err != nil {
			log.Warn(MsgKeyringMiss, LogKeyError, err)
		}
		s.BotToken = token
	}

	if s.BotToken == "" {
		return Settings{}, errors.New(ErrTokenMissing)
	}

	return s, nil
}

// HasStore reports whether the REST store is fully configured.
func (s Settings) HasStore() bool {
	return s.StoreURL != "" && s.StoreKey != ""
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envIntClamped(key string, fallback, minVal, maxVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < minVal || n > maxVal {
		return fallback
	}
	return n
}
