package entities

// Destination maps a community chat to the chat receiving a feed's
// notifications. Rows are rewritten wholesale by the sqlite store backend.
type Destination struct {
	Namespace     string `gorm:"primaryKey"`
	CommunityID   string `gorm:"primaryKey"`
	DestinationID string
}
