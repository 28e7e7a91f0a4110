package telegram

import (
	"strconv"

	"getrich-notifier/models/constants"
	"getrich-notifier/models/entities"
	"getrich-notifier/pkg/markup"
	"getrich-notifier/pkg/observer"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/zerolog/log"
)

// OnNotify receives a new-post event from a feed service and fans it out to
// every destination registered for that feed. Destinations are independent:
// one failed delivery never stops the loop.
func (service *Impl) OnNotify(e observer.Event) {
	feedType := e.FeedType()
	headline := "New post on LINE Let's Get Rich Facebook page"
	if e.E == observer.UpdatePostEvent {
		headline = "New update notes for LINE Let's Get Rich"
	}

	destinationMap := service.destRepo.FetchAll(feedType)
	log.Info().
		Str(constants.LogFeedType, string(feedType)).
		Int("destinations", len(destinationMap)).
		Msg("Broadcasting new content")

	for communityID, destinationID := range destinationMap {
		if err := service.deliver(destinationID, headline, e.Post); err != nil {
			log.Error().Err(err).
				Str(constants.LogCommunityID, communityID).
				Str(constants.LogDestinationID, destinationID).
				Msg("Delivery failed, continuing with remaining destinations")
		}
	}
}

// deliver sends the attention marker, retracts it, then sends the formatted
// content. A failed marker never blocks the content; ordering is best effort,
// not transactional.
func (service *Impl) deliver(destinationID string, headline string, post *entities.Post) error {
	chatID, err := strconv.ParseInt(destinationID, 10, 64)
	if err != nil {
		return err
	}

	marker, errMarker := service.bot.SendMessage(chatID, attentionMarker, nil)
	if errMarker != nil {
		log.Warn().Err(errMarker).
			Str(constants.LogDestinationID, destinationID).
			Msg("Cannot send attention marker, sending content anyway")
	} else if _, errDelete := service.bot.DeleteMessage(chatID, marker.MessageId, nil); errDelete != nil {
		log.Warn().Err(errDelete).
			Str(constants.LogDestinationID, destinationID).
			Msg("Cannot retract attention marker")
	}

	text := composeAnnouncement(headline, post)
	for _, chunk := range markup.SplitChunks(text, maxMessageLength) {
		if _, errSend := service.bot.SendMessage(chatID, chunk, &gotgbot.SendMessageOpts{ParseMode: "Markdown"}); errSend != nil {
			return errSend
		}
	}

	return nil
}

func composeAnnouncement(headline string, post *entities.Post) string {
	text := "*" + headline + "*\n"
	if post.Title != "" {
		text += "*" + post.Title + "*\n"
	}
	text += "\n" + markup.ToDisplay(post.Content)
	if post.URL != "" {
		text += "\n\n" + post.URL
	}
	return text
}
