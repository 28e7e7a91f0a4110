package updates

import (
	"context"
	"sort"
	"time"

	"getrich-notifier/models/constants"
	"getrich-notifier/models/entities"
	"getrich-notifier/pkg/observer"
	"getrich-notifier/utils/hashes"

	"github.com/go-co-op/gocron/v2"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(scheduler gocron.Scheduler) (*Impl, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = viper.GetString(constants.UserAgent)

	service := &Impl{
		feedURL:    viper.GetString(constants.UpdatesFeedURL),
		feedParser: fp,
		timeout:    viper.GetDuration(constants.FetchTimeout),
		observers:  map[observer.Observer]struct{}{},
	}

	_, errJob := scheduler.NewJob(
		gocron.DurationJob(viper.GetDuration(constants.UpdatesCheckInterval)),
		gocron.NewTask(func() { service.CheckForUpdates() }),
		gocron.WithName("Check updates feed"),
	)
	if errJob != nil {
		return nil, errJob
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

// CheckForUpdates runs one fetch-compare-broadcast cycle on the updates feed.
// Change is detected by absence of continuity: the batch is considered new
// when the remembered fingerprint no longer appears anywhere in it. This
// tolerates reordering of recent entries but can miss one when several new
// entries push the remembered one out within a single tick.
func (service *Impl) CheckForUpdates() {
	service.cycle.Lock()
	defer service.cycle.Unlock()

	posts, fingerprints, err := service.FetchLatest()
	if err != nil {
		log.Error().Err(err).
			Str(constants.LogFeedType, string(constants.FeedTypeUpdates)).
			Str(constants.LogFeedURL, service.feedURL).
			Msg("Cannot fetch updates feed, skipping cycle")
		return
	}
	if len(posts) == 0 {
		return
	}

	if !service.isNewBatch(fingerprints) {
		log.Debug().
			Str(constants.LogFeedType, string(constants.FeedTypeUpdates)).
			Int(constants.LogFeedItemNumber, len(posts)).
			Msg("Remembered entry still present, nothing to broadcast")
		return
	}

	service.lastFingerprint = fingerprints[0]
	service.lastDetectedAt = time.Now()

	newest := posts[0]
	log.Info().
		Str(constants.LogFeedType, string(constants.FeedTypeUpdates)).
		Str(constants.LogFeedURL, newest.URL).
		Msg("New update detected")
	for o := range service.observers {
		o.OnNotify(observer.NewUpdatePostEvent(newest))
	}
}

// FetchLatest returns the feed entries most-recent first along with their
// fingerprints, index for index.
func (service *Impl) FetchLatest() ([]*entities.Post, []string, error) {
	if service.feedURL == "" {
		return nil, nil, ErrFeedNotConfigured
	}

	ctx, cancel := context.WithTimeout(context.Background(), service.timeout)
	defer cancel()
	feed, err := service.feedParser.ParseURLWithContext(service.feedURL, ctx)
	if err != nil {
		return nil, nil, err
	}

	items := make([]*gofeed.Item, len(feed.Items))
	copy(items, feed.Items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].PublishedParsed == nil || items[j].PublishedParsed == nil {
			return false
		}
		return items[i].PublishedParsed.After(*items[j].PublishedParsed)
	})

	posts := make([]*entities.Post, 0, len(items))
	fingerprints := make([]string, 0, len(items))
	for _, item := range items {
		content := item.Content
		if content == "" {
			content = item.Description
		}
		posts = append(posts, &entities.Post{
			URL:     item.Link,
			Content: content,
			Title:   item.Title,
		})
		fingerprints = append(fingerprints, hashes.Fingerprint(content))
	}

	return posts, fingerprints, nil
}

func (service *Impl) LastDetectedAt() (time.Time, bool) {
	return service.lastDetectedAt, !service.lastDetectedAt.IsZero()
}

func (service *Impl) isNewBatch(fingerprints []string) bool {
	if service.lastFingerprint == "" {
		return true
	}
	for _, fingerprint := range fingerprints {
		if fingerprint == service.lastFingerprint {
			return false
		}
	}
	return true
}
