package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Cumplebot/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Cumplebot"
	AppID             = "com.github.tartampluch.go-cumplebot"
	KeyringService    = "com.github.tartampluch.go-cumplebot"
	KeyringTokenKey   = "bot_token"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and the usage log.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment Variables
// -----------------------------------------------------------------------------

const (
	EnvBotToken       = "TELEGRAM_BOT_TOKEN"
	EnvStoreURL       = "SUPABASE_URL"
	EnvStoreKey       = "SUPABASE_KEY"
	EnvChatID         = "BIRTHDAY_CHAT_ID"
	EnvBirthdayHour   = "BIRTHDAY_HOUR"
	EnvBirthdayMinute = "BIRTHDAY_MINUTE"
	EnvStatsHour      = "STATS_HOUR"
	EnvStatsMinute    = "STATS_MINUTE"
	EnvLanguage       = "BOT_LANGUAGE"
	EnvSourceMode     = "BIRTHDAY_SOURCE"
	EnvLocalPath      = "BIRTHDAY_VCF_PATH"
	EnvFeedPort       = "CALENDAR_FEED_PORT"
	EnvUsageLogPath   = "USAGE_LOG_PATH"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeRest  = "rest"
	SourceModeLocal = "local"

	DefaultBirthdayHour   = 9
	DefaultBirthdayMinute = 0
	DefaultStatsHour      = 23
	DefaultStatsMinute    = 55
	DefaultLanguage       = "es"
	DefaultSourceMode     = SourceModeRest
	DefaultUsageLogPath   = "commands_log.json"
	DefaultChartPath      = "stats.png"
	DefaultLeapYear       = 2000 // Leap year reference used to validate Feb 29 inputs.

	// TriggerInterval is the fixed repeat period of the daily jobs.
	// The trigger self-advances by this amount with no drift correction.
	TriggerInterval = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Telegram Commands
// -----------------------------------------------------------------------------

const (
	CmdStart     = "start"
	CmdHelp      = "help"
	CmdGetCumple = "getCumple"
	CmdStats     = "stats"
	CmdPing      = "ping"

	CommandPrefix    = "/"
	BotNameSeparator = "@"

	// PollTimeoutSeconds is the long-polling timeout passed to the Telegram API.
	PollTimeoutSeconds = 60
)

// -----------------------------------------------------------------------------
// Data Store (PostgREST)
// -----------------------------------------------------------------------------

const (
	StoreTable       = "Cumples"
	StoreSelect      = "id,nombre,cumple"
	StorePathFormat  = "%s/rest/v1/%s"
	StoreQuerySelect = "select"

	HeaderAPIKey     = "apikey"
	HeaderAuth       = "Authorization"
	AuthBearerPrefix = "Bearer "
)

// -----------------------------------------------------------------------------
// Record Field Keys (lowercased at ingestion)
// -----------------------------------------------------------------------------

var (
	// DateFieldKeys are probed in order against the lowercased row map.
	DateFieldKeys = []string{"cumple", "cumple_date", "fecha", "birthday"}

	// NameFieldKeys are probed in order against the lowercased row map.
	NameFieldKeys = []string{"nombre", "name"}
)

const RecordIDKey = "id"

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Cumplebot//Engine//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gocumplebot"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
	UIDSalt         = "go-cumplebot-v1-"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Date Layouts
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullT     = "2006-01-02T15:04:05"
	DateFormatFullTFrac = "2006-01-02T15:04:05.000000"
	DateFormatDayFirst  = "02/01/2006"
	DateFormatDayDash   = "02-01-2006"
	DateFormatUSSlash   = "01/02/2006"
	DateFormatDisplay   = "2006-01-02"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB: birthday tables stay small
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderLastModified = "Last-Modified"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderIfModSince   = "If-Modified-Since"
	HeaderAccept       = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyGreeting      = "msg_greeting"
	TKeyGreetingAnon  = "msg_greeting_anon"
	TKeyHelp          = "msg_help"
	TKeyPong          = "msg_pong"
	TKeyBdayToday     = "msg_bday_today"
	TKeyBdayNone      = "msg_bday_none"
	TKeyBdayNext      = "msg_bday_next"
	TKeyBdayNextAlso  = "msg_bday_next_also"
	TKeyBdayNotFound  = "msg_bday_not_found"
	TKeyStatsTopUser  = "msg_stats_top_user"
	TKeyStatsSummary  = "msg_stats_summary"
	TKeyStatsEmpty    = "msg_stats_empty"
	TKeyNothingReport = "msg_nothing_to_report"
	TKeyConjunction   = "word_conjunction"
	TKeyEvtSummary    = "event_summary"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrTokenMissing   = "configuration error: bot token is not set"
	ErrStoreURLEmpty  = "configuration error: store URL is empty"
	ErrLocalPathEmpty = "configuration error: local vCard path is empty"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrStoreDecode    = "failed to decode store response"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrUsageRead      = "failed to read usage log"
	ErrUsageWrite     = "failed to write usage log"
	ErrChartRender    = "failed to render stats chart"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrBotInit        = "failed to initialize Telegram client"
	ErrSendText       = "failed to send message"
	ErrSendImage      = "failed to send image"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgFeedDisabled   = "Calendar feed disabled (no port configured)"
	MsgTriggerArmed   = "Trigger armed"
	MsgTriggerFired   = "Trigger fired"
	MsgTriggerStop    = "Trigger stopping due to context cancellation"
	MsgFetchStarted   = "Birthday fetch started"
	MsgFetchFailed    = "Birthday fetch failed, using empty result set"
	MsgStoreBadStatus = "Store returned error status"
	MsgRowsFetched    = "Birthday rows fetched"
	MsgVCardSkipped   = "Skipping malformed vCard"
	MsgCardsLoaded    = "Birthday cards loaded"
	MsgStoreSkipped   = "Store credentials not set; skipping birthday job"
	MsgBdayToday      = "Birthday found today"
	MsgBdaySent       = "Birthday message sent"
	MsgBdayNotSent    = "No chat configured, birthday message not sent"
	MsgStatsSent      = "Stats report sent"
	MsgStatsNoLog     = "No usage log found, skipping stats job"
	MsgStatsCleared   = "Usage log cleared after scheduled report"
	MsgCommandLogged  = "Command logged"
	MsgCommandHandled = "Command handled"
	MsgUpdateIgnored  = "Update ignored (not a command)"
	MsgBotAuthorized  = "Telegram client authorized"
	MsgPolling        = "Polling for updates"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedRecord  = "Skipping record without resolvable date"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgKeyringMiss    = "Keyring lookup failed (token may be env-only)"
	MsgEnvFileMissing = "No .env file found, using process environment"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"
	LogKeyChatID    = "chat_id"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDate      = "date"
	LogKeyDays      = "days_until"
	LogKeyValue     = "value"
	LogKeyFireAt    = "fire_at"
	LogKeyJob       = "job"
	LogKeyTotal     = "total_records"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompConfig   = "config"
	CompEngine   = "engine"
	CompStore    = "store"
	CompServer   = "server"
	CompBot      = "bot"
	CompJob      = "job"
	CompSched    = "sched"
	CompUsageLog = "usagelog"
	CompStats    = "stats"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// Job Names (log values)
// -----------------------------------------------------------------------------

const (
	JobBirthday = "birthday"
	JobStats    = "stats"
)
