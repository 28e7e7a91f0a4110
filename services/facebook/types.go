package facebook

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"getrich-notifier/models/entities"
	"getrich-notifier/pkg/observer"
)

type Service interface {
	RegisterObserver(o observer.Observer)
	CheckForUpdates()
	FetchLatest() (*entities.Post, error)
	LastDetectedAt() (time.Time, bool)
}

var (
	ErrNoPostFound      = errors.New("page has no readable post")
	ErrUnexpectedStatus = errors.New("scrape service answered with an unexpected status")
)

type Impl struct {
	pageURL   string
	apiURL    string
	apiToken  string
	userAgent string
	client    *http.Client

	// One check-and-broadcast cycle at a time; a slow broadcast must not
	// overlap with the next tick's fingerprint update.
	cycle           sync.Mutex
	lastFingerprint string
	lastDetectedAt  time.Time

	observers map[observer.Observer]struct{}
}
