package constants

import "github.com/rs/zerolog"

const (
	LogFileName       = "fileName"
	LogFeedType       = "feedType"
	LogFeedURL        = "feedURL"
	LogFeedItemNumber = "feedItemNumber"
	LogFingerprint    = "fingerprint"
	LogCommunityID    = "communityID"
	LogDestinationID  = "destinationID"
	LogChatID         = "chatID"
	LogNamespace      = "namespace"
	LogLevelFallback  = zerolog.InfoLevel
)
