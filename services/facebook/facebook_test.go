package facebook

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"getrich-notifier/pkg/observer"
)

type recordingObserver struct {
	events []observer.Event
}

func (r *recordingObserver) OnNotify(e observer.Event) {
	r.events = append(r.events, e)
}

func newTestService(apiURL string, pageURL string) *Impl {
	return &Impl{
		pageURL:   pageURL,
		apiURL:    apiURL,
		userAgent: "test-agent",
		client:    &http.Client{Timeout: 5 * time.Second},
		observers: map[observer.Observer]struct{}{},
	}
}

func TestFetchLatestFromScrapeService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Error("expected a bearer token header")
		}
		fmt.Fprint(w, `{"url":"https://page/post/1","content":"Hello players"}`)
	}))
	defer server.Close()

	service := newTestService(server.URL, "https://page")
	service.apiToken = "secret"

	post, err := service.FetchLatest()
	if err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if post.URL != "https://page/post/1" || post.Content != "Hello players" {
		t.Errorf("unexpected post: %+v", post)
	}
}

func TestFetchLatestNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	service := newTestService(server.URL, "https://page")
	post, err := service.FetchLatest()
	if err != nil || post != nil {
		t.Errorf("expected nil post without error, got %+v, %v", post, err)
	}
}

func TestFetchLatestScrapesPageDirectly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div data-ad-preview="message"> Big update tonight! </div></body></html>`)
	}))
	defer server.Close()

	service := newTestService("", server.URL)
	post, err := service.FetchLatest()
	if err != nil {
		t.Fatalf("FetchLatest() error: %v", err)
	}
	if post.Content != "Big update tonight!" {
		t.Errorf("unexpected content: %q", post.Content)
	}
	if post.URL != server.URL {
		t.Errorf("post URL should point at the page, got %q", post.URL)
	}
}

func TestFirstFetchIsAlwaysBroadcast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"url":"a","content":"X"}`)
	}))
	defer server.Close()

	service := newTestService(server.URL, "https://page")
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	service.CheckForUpdates()
	if len(recorder.events) != 1 {
		t.Fatalf("first successful fetch must always broadcast, got %d events", len(recorder.events))
	}
	if recorder.events[0].Post.Content != "X" {
		t.Errorf("unexpected broadcast payload: %+v", recorder.events[0].Post)
	}
}

func TestIdenticalContentIsBroadcastOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"url":"a","content":"X"}`)
	}))
	defer server.Close()

	service := newTestService(server.URL, "https://page")
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	service.CheckForUpdates()
	service.CheckForUpdates()
	service.CheckForUpdates()

	if len(recorder.events) != 1 {
		t.Errorf("identical fetches must broadcast exactly once, got %d", len(recorder.events))
	}
}

func TestChangedContentIsBroadcastAgain(t *testing.T) {
	contents := []string{"first post", "first post", "second post"}
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"url":"a","content":"%s"}`, contents[calls])
		calls++
	}))
	defer server.Close()

	service := newTestService(server.URL, "https://page")
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	for range contents {
		service.CheckForUpdates()
	}

	if len(recorder.events) != 2 {
		t.Errorf("expected 2 broadcasts for 2 distinct contents, got %d", len(recorder.events))
	}
}

func TestFetchFailureSkipsCycleSilently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := newTestService(server.URL, "https://page")
	recorder := &recordingObserver{}
	service.RegisterObserver(recorder)

	service.CheckForUpdates()
	if len(recorder.events) != 0 {
		t.Error("a failed fetch must not broadcast")
	}
	if _, detected := service.LastDetectedAt(); detected {
		t.Error("a failed fetch must not count as a detection")
	}
}
