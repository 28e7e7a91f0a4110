package destinations

import (
	"fmt"
	"sync"

	"getrich-notifier/models/constants"
	"getrich-notifier/utils/stores"

	"github.com/rs/zerolog/log"
)

type Impl struct {
	store stores.KeyValueStore
	mu    sync.RWMutex
	maps  map[constants.FeedType]map[string]string
}

// New loads both feed maps from the backing store. A corrupt store must not
// prevent the bot from starting: load failures degrade to an empty map and
// only lose previously registered destinations.
func New(store stores.KeyValueStore) *Impl {
	repo := &Impl{
		store: store,
		maps:  make(map[constants.FeedType]map[string]string),
	}

	for _, feedType := range []constants.FeedType{constants.FeedTypePage, constants.FeedTypeUpdates} {
		values, err := store.Load(namespace(feedType))
		if err != nil {
			log.Warn().Err(err).
				Str(constants.LogNamespace, namespace(feedType)).
				Msg("Cannot load destinations, starting with none")
			values = make(map[string]string)
		}
		repo.maps[feedType] = values
	}

	return repo
}

func (repo *Impl) Register(feedType constants.FeedType, communityID string, destinationID string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	previous, existed := repo.maps[feedType][communityID]
	repo.maps[feedType][communityID] = destinationID

	if err := repo.store.SaveAll(namespace(feedType), repo.maps[feedType]); err != nil {
		if existed {
			repo.maps[feedType][communityID] = previous
		} else {
			delete(repo.maps[feedType], communityID)
		}
		return fmt.Errorf("failed to persist destinations: %w", err)
	}

	log.Info().
		Str(constants.LogFeedType, string(feedType)).
		Str(constants.LogCommunityID, communityID).
		Str(constants.LogDestinationID, destinationID).
		Msg("Destination registered")
	return nil
}

func (repo *Impl) Resolve(feedType constants.FeedType, communityID string) (string, bool) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	destinationID, found := repo.maps[feedType][communityID]
	return destinationID, found
}

// FetchAll returns a copy; broadcast loops iterate it without holding the
// repository lock.
func (repo *Impl) FetchAll(feedType constants.FeedType) map[string]string {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	values := make(map[string]string, len(repo.maps[feedType]))
	for communityID, destinationID := range repo.maps[feedType] {
		values[communityID] = destinationID
	}

	return values
}

func namespace(feedType constants.FeedType) string {
	if feedType == constants.FeedTypeUpdates {
		return updatesNamespace
	}
	return pageNamespace
}
