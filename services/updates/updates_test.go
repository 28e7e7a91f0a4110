package updates

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"getrich-notifier/pkg/observer"

	"github.com/mmcdole/gofeed"
)

type recordingObserver struct {
	events []observer.Event
}

func (r *recordingObserver) OnNotify(e observer.Event) {
	r.events = append(r.events, e)
}

type feedServer struct {
	mu    sync.Mutex
	items []string
}

func (fs *feedServer) setItems(items ...string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.items = items
}

// rss renders the configured titles as feed items, oldest first in document
// order but each with a distinct publication date so sorting is exercised.
func (fs *feedServer) rss() string {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>Updates</title>`)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, item := range fs.items {
		published := base.Add(time.Duration(i) * time.Hour)
		fmt.Fprintf(&sb,
			`<item><title>%s</title><link>https://updates/%d</link><description>%s body</description><pubDate>%s</pubDate></item>`,
			item, i, item, published.Format(time.RFC1123Z))
	}
	sb.WriteString(`</channel></rss>`)
	return sb.String()
}

func newTestService(url string) *Impl {
	return &Impl{
		feedURL:    url,
		feedParser: gofeed.NewParser(),
		timeout:    5 * time.Second,
		observers:  map[observer.Observer]struct{}{},
	}
}

func startFeed(t *testing.T, fs *feedServer) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, fs.rss())
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchLatestOrdersMostRecentFirst(t *testing.T) {
	fs := &feedServer{}
	fs.setItems("Patch 1.0", "Patch 1.1", "Patch 1.2")
	server := startFeed(t, fs)

	service := newTestService(server.URL)
	posts, fingerprints, err := service.FetchLatest()
	if err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if len(posts) != 3 || len(fingerprints) != 3 {
		t.Fatalf("expected 3 posts with parallel fingerprints, got %d/%d", len(posts), len(fingerprints))
	}
	if posts[0].Title != "Patch 1.2" {
		t.Errorf("newest entry must come first, got %q", posts[0].Title)
	}
}

func TestFirstBatchIsAlwaysNew(t *testing.T) {
	fs := &feedServer{}
	fs.setItems("Patch 1.0")
	server := startFeed(t, fs)

	service := newTestService(server.URL)
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	service.CheckForUpdates()
	if len(recorder.events) != 1 {
		t.Fatalf("first batch must broadcast, got %d events", len(recorder.events))
	}
	if recorder.events[0].FeedType() != "updates" {
		t.Errorf("event must carry the updates feed type, got %q", recorder.events[0].FeedType())
	}
}

func TestUnchangedBatchIsSuppressed(t *testing.T) {
	fs := &feedServer{}
	fs.setItems("Patch 1.0", "Patch 1.1")
	server := startFeed(t, fs)

	service := newTestService(server.URL)
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	service.CheckForUpdates()
	service.CheckForUpdates()
	if len(recorder.events) != 1 {
		t.Errorf("an unchanged batch must not broadcast again, got %d", len(recorder.events))
	}
}

func TestRememberedEntryStillInBatchSuppressesBroadcast(t *testing.T) {
	fs := &feedServer{}
	fs.setItems("Patch 1.1")
	server := startFeed(t, fs)

	service := newTestService(server.URL)
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)
	service.CheckForUpdates()

	// The remembered entry is still present, only reordered deeper into the
	// batch; continuity holds, so nothing fires.
	fs.setItems("Patch 1.1", "Patch 1.0-repost")
	service.CheckForUpdates()

	if len(recorder.events) != 1 {
		t.Errorf("continuity with the remembered entry must suppress, got %d events", len(recorder.events))
	}
}

func TestBatchWithoutRememberedEntryBroadcasts(t *testing.T) {
	fs := &feedServer{}
	fs.setItems("Patch 1.0")
	server := startFeed(t, fs)

	service := newTestService(server.URL)
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)
	service.CheckForUpdates()

	fs.setItems("Patch 1.1", "Patch 1.2")
	service.CheckForUpdates()

	if len(recorder.events) != 2 {
		t.Fatalf("absence of the remembered entry must broadcast, got %d events", len(recorder.events))
	}
	if recorder.events[1].Post.Title != "Patch 1.2" {
		t.Errorf("only the newest entry is broadcast, got %q", recorder.events[1].Post.Title)
	}
}

func TestFeedErrorSkipsCycle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := newTestService(server.URL)
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	service.CheckForUpdates()
	if len(recorder.events) != 0 {
		t.Error("a failed fetch must not broadcast")
	}
}

func TestMissingFeedURL(t *testing.T) {
	service := newTestService("")
	if _, _, err := service.FetchLatest(); err != ErrFeedNotConfigured {
		t.Errorf("expected ErrFeedNotConfigured, got %v", err)
	}
}
