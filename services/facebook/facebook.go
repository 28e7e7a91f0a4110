package facebook

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"getrich-notifier/models/constants"
	"getrich-notifier/models/entities"
	"getrich-notifier/pkg/observer"
	"getrich-notifier/utils/hashes"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Selector of the post body in the page markup, used by the direct-scrape
// fallback when no companion scrape service is configured.
const postSelector = `div[data-ad-preview="message"]`

func New(scheduler gocron.Scheduler) (*Impl, error) {
	service := &Impl{
		pageURL:   viper.GetString(constants.PageURL),
		apiURL:    strings.TrimSuffix(viper.GetString(constants.ScrapeAPIURL), "/"),
		apiToken:  viper.GetString(constants.ScrapeAPIToken),
		userAgent: viper.GetString(constants.UserAgent),
		client: &http.Client{
			Timeout: viper.GetDuration(constants.FetchTimeout),
		},
		observers: map[observer.Observer]struct{}{},
	}

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(viper.GetDuration(constants.PageCheckInterval)),
		gocron.NewTask(func() { service.CheckForUpdates() }),
		gocron.WithName("Check page feed"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

// CheckForUpdates runs one fetch-compare-broadcast cycle. It fails soft: a
// fetch error only means no update this cycle, the next tick retries.
func (service *Impl) CheckForUpdates() {
	service.cycle.Lock()
	defer service.cycle.Unlock()

	post, err := service.FetchLatest()
	if err != nil {
		log.Error().Err(err).
			Str(constants.LogFeedType, string(constants.FeedTypePage)).
			Str(constants.LogFeedURL, service.pageURL).
			Msg("Cannot fetch latest post, skipping cycle")
		return
	}
	if post == nil {
		return
	}

	fingerprint := hashes.Fingerprint(post.Content)
	if fingerprint == service.lastFingerprint {
		log.Debug().
			Str(constants.LogFeedType, string(constants.FeedTypePage)).
			Str(constants.LogFingerprint, fingerprint).
			Msg("Content unchanged, nothing to broadcast")
		return
	}

	// Remember the fingerprint before broadcasting so a slow delivery does
	// not get the same content reprocessed.
	service.lastFingerprint = fingerprint
	service.lastDetectedAt = time.Now()

	log.Info().
		Str(constants.LogFeedType, string(constants.FeedTypePage)).
		Str(constants.LogFeedURL, post.URL).
		Msg("New post detected")
	for o := range service.observers {
		o.OnNotify(observer.NewPagePostEvent(post))
	}
}

// FetchLatest returns the newest post of the watched page, through the
// companion scrape service when one is configured, by direct scrape
// otherwise.
func (service *Impl) FetchLatest() (*entities.Post, error) {
	if service.apiURL != "" {
		return service.fetchFromScrapeService()
	}
	return service.scrapePage()
}

func (service *Impl) LastDetectedAt() (time.Time, bool) {
	return service.lastDetectedAt, !service.lastDetectedAt.IsZero()
}

func (service *Impl) fetchFromScrapeService() (*entities.Post, error) {
	endpoint := fmt.Sprintf("%s/latest-post?page=%s", service.apiURL, url.QueryEscape(service.pageURL))
	request, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+service.apiToken)
	request.Header.Set("User-Agent", service.userAgent)

	response, errCall := service.client.Do(request)
	if errCall != nil {
		return nil, errCall
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, response.Status)
	}

	var post entities.Post
	if errJSON := json.NewDecoder(response.Body).Decode(&post); errJSON != nil {
		return nil, errJSON
	}
	if post.Content == "" {
		return nil, nil
	}

	return &post, nil
}

func (service *Impl) scrapePage() (*entities.Post, error) {
	request, err := http.NewRequest(http.MethodGet, service.pageURL, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", service.userAgent)

	response, errCall := service.client.Do(request)
	if errCall != nil {
		return nil, errCall
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, response.Status)
	}

	document, errParse := goquery.NewDocumentFromReader(response.Body)
	if errParse != nil {
		return nil, errParse
	}

	node := document.Find(postSelector).First()
	if node.Length() == 0 {
		return nil, ErrNoPostFound
	}

	return &entities.Post{
		URL:     service.pageURL,
		Content: strings.TrimSpace(node.Text()),
	}, nil
}
