package updates

import (
	"errors"
	"sync"
	"time"

	"getrich-notifier/models/entities"
	"getrich-notifier/pkg/observer"

	"github.com/mmcdole/gofeed"
)

type Service interface {
	RegisterObserver(o observer.Observer)
	CheckForUpdates()
	FetchLatest() ([]*entities.Post, []string, error)
	LastDetectedAt() (time.Time, bool)
}

var ErrFeedNotConfigured = errors.New("updates feed URL is not configured")

type Impl struct {
	feedURL    string
	feedParser *gofeed.Parser
	timeout    time.Duration

	cycle           sync.Mutex
	lastFingerprint string
	lastDetectedAt  time.Time

	observers map[observer.Observer]struct{}
}
