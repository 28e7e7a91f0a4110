package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	//nolint:gosec // False positive.
	// Bearer token for the companion scraping service.
	ScrapeAPIToken = "SCRAPE_API_TOKEN"

	// Base URL of the companion scraping service; when empty the page is
	// scraped directly.
	ScrapeAPIURL = "SCRAPE_API_URL"

	// Public page watched by the primary feed.
	PageURL = "PAGE_URL"

	// RSS/Atom URL of the updates feed.
	UpdatesFeedURL = "UPDATES_FEED_URL"

	// Interval between two checks of the page feed. Duration type.
	PageCheckInterval = "PAGE_CHECK_INTERVAL"

	// Interval between two checks of the updates feed. Duration type.
	UpdatesCheckInterval = "UPDATES_CHECK_INTERVAL"

	// Timeout applied to feed fetches. Duration type.
	FetchTimeout = "FETCH_TIMEOUT"

	// User agent sent on outgoing fetches.
	UserAgent = "USER_AGENT"

	// Registry backend from [file, sqlite, message].
	StoreBackend = "STORE_BACKEND"

	// Directory holding the JSON config files of the file backend.
	StoreDir = "STORE_DIR"

	// Chat whose pinned message holds the config of the message backend.
	StoreChatID = "STORE_CHAT_ID"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Probe port.
	ProbePort = "PROBE_PORT"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	defaultTelegramBotToken     = ""
	defaultScrapeAPIToken       = ""
	defaultScrapeAPIURL         = ""
	defaultPageURL              = "https://www.facebook.com/LGRIDofficial"
	defaultUpdatesFeedURL       = ""
	defaultPageCheckInterval    = 60 * time.Second
	defaultUpdatesCheckInterval = 120 * time.Second
	defaultFetchTimeout         = 15 * time.Second
	defaultUserAgent            = "getrich-notifier"
	defaultStoreBackend         = StoreBackendFile
	defaultStoreDir             = "."
	defaultStoreChatID          = 0
	defaultSqliteURL            = "getrich-notifier.db"
	defaultProbePort            = 9090
	defaultHealthCrontab        = "* * * * *"
	defaultLogLevel             = zerolog.InfoLevel
)

const (
	StoreBackendFile    = "file"
	StoreBackendSqlite  = "sqlite"
	StoreBackendMessage = "message"
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		TelegramBotToken:     defaultTelegramBotToken,
		ScrapeAPIToken:       defaultScrapeAPIToken,
		ScrapeAPIURL:         defaultScrapeAPIURL,
		PageURL:              defaultPageURL,
		UpdatesFeedURL:       defaultUpdatesFeedURL,
		PageCheckInterval:    defaultPageCheckInterval,
		UpdatesCheckInterval: defaultUpdatesCheckInterval,
		FetchTimeout:         defaultFetchTimeout,
		UserAgent:            defaultUserAgent,
		StoreBackend:         defaultStoreBackend,
		StoreDir:             defaultStoreDir,
		StoreChatID:          defaultStoreChatID,
		SqliteURL:            defaultSqliteURL,
		ProbePort:            defaultProbePort,
		HealthCronTab:        defaultHealthCrontab,
		LogLevel:             defaultLogLevel.String(),
	}
}
