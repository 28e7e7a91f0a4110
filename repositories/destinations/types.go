package destinations

import (
	"getrich-notifier/models/constants"
)

// Repository maps community chats to destination chats, one map per feed
// type. Maps are loaded once at startup and persisted wholesale after every
// mutation.
type Repository interface {
	Register(feedType constants.FeedType, communityID string, destinationID string) error
	Resolve(feedType constants.FeedType, communityID string) (string, bool)
	FetchAll(feedType constants.FeedType) map[string]string
}

// Store namespaces, kept as the historical file names of the bot.
const (
	pageNamespace    = "serverConfigs"
	updatesNamespace = "updateConfigs"
)
