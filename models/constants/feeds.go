package constants

// FeedType identifies one watched content source.
type FeedType string

const (
	FeedTypePage    FeedType = "page"
	FeedTypeUpdates FeedType = "updates"
)
