package telegram

import (
	"errors"
	"time"

	"getrich-notifier/pkg/observer"
	"getrich-notifier/repositories/destinations"
	facebookService "getrich-notifier/services/facebook"
	updatesService "getrich-notifier/services/updates"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/patrickmn/go-cache"
)

var (
	ErrTokenIsMissing         = errors.New("telegram token is missing")
	ErrBotNotInitialized      = errors.New("telegram bot is not ready yet")
	ErrFailedToStartListening = errors.New("telegram bot can't start to listen command")
)

const (
	// Telegram caps message bodies at 4096 characters.
	maxMessageLength = 4096

	// Sent and immediately retracted to trigger platform notifications
	// without leaving a visible marker message.
	attentionMarker = "📣"

	statsCacheKey = "event_stats"
)

type Service interface {
	observer.Observer
	ListenAndDispatch() error
}

type Impl struct {
	bot      *gotgbot.Bot
	updater  *ext.Updater
	destRepo destinations.Repository

	facebookService facebookService.Service
	updatesService  updatesService.Service

	cache          *cache.Cache
	statsUpdatedAt time.Time
}
