package observer

import (
	"getrich-notifier/models/constants"
	"getrich-notifier/models/entities"
)

type EventType int

const (
	PagePostEvent   EventType = 1
	UpdatePostEvent EventType = 2
)

type Event struct {
	E    EventType
	Post *entities.Post
}

func NewPagePostEvent(post *entities.Post) Event {
	return Event{Post: post, E: PagePostEvent}
}

func NewUpdatePostEvent(post *entities.Post) Event {
	return Event{Post: post, E: UpdatePostEvent}
}

// FeedType resolves the feed an event belongs to.
func (e Event) FeedType() constants.FeedType {
	if e.E == UpdatePostEvent {
		return constants.FeedTypeUpdates
	}
	return constants.FeedTypePage
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	RegisterObserver(Observer)
}
