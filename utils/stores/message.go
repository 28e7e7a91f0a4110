package stores

import (
	"encoding/json"
	"strings"

	"getrich-notifier/models/constants"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/rs/zerolog/log"
)

const (
	fenceOpen  = "```json\n"
	fenceClose = "\n```"
)

type messageStore struct {
	bot       *gotgbot.Bot
	chatID    int64
	messageID int64
	header    string
}

// NewMessageStore persists all namespaces inside a fenced JSON block held by
// the pinned message of a designated chat. An unusual backing store, kept to
// avoid running a database: the bot reads the pinned message back at startup
// and rewrites it wholesale on every save.
func NewMessageStore(bot *gotgbot.Bot, chatID int64) KeyValueStore {
	return &messageStore{
		bot:    bot,
		chatID: chatID,
		header: constants.ExternalName + " config, do not edit by hand.\n",
	}
}

func (store *messageStore) Load(namespace string) (map[string]string, error) {
	doc, err := store.loadDocument()
	if err != nil {
		return make(map[string]string), err
	}

	values, ok := doc[namespace]
	if !ok {
		return make(map[string]string), nil
	}

	return values, nil
}

func (store *messageStore) SaveAll(namespace string, values map[string]string) error {
	if store.chatID == 0 {
		return ErrStoreChatMissing
	}

	// Whole-document read-modify-write; a load failure only costs the other
	// namespaces, never blocks the save.
	doc, err := store.loadDocument()
	if err != nil {
		log.Warn().Err(err).
			Str(constants.LogNamespace, namespace).
			Msg("Cannot read config message back, rewriting from scratch")
		doc = make(map[string]map[string]string)
	}
	doc[namespace] = values

	content, errJSON := json.MarshalIndent(doc, "", "  ")
	if errJSON != nil {
		return errJSON
	}
	body := store.header + fenceOpen + string(content) + fenceClose

	if store.messageID != 0 {
		_, _, errEdit := store.bot.EditMessageText(body, &gotgbot.EditMessageTextOpts{
			ChatId:    store.chatID,
			MessageId: store.messageID,
		})
		return errEdit
	}

	message, errSend := store.bot.SendMessage(store.chatID, body, nil)
	if errSend != nil {
		return errSend
	}
	store.messageID = message.MessageId

	if _, errPin := store.bot.PinChatMessage(store.chatID, message.MessageId, nil); errPin != nil {
		log.Warn().Err(errPin).
			Int64(constants.LogChatID, store.chatID).
			Msg("Cannot pin config message; it will not survive a restart")
	}

	return nil
}

func (store *messageStore) loadDocument() (map[string]map[string]string, error) {
	if store.chatID == 0 {
		return nil, ErrStoreChatMissing
	}

	chat, err := store.bot.GetChat(store.chatID, nil)
	if err != nil {
		return nil, err
	}

	if chat.PinnedMessage == nil {
		return make(map[string]map[string]string), nil
	}
	store.messageID = chat.PinnedMessage.MessageId

	content, errFence := extractFencedJSON(chat.PinnedMessage.Text)
	if errFence != nil {
		return nil, errFence
	}

	doc := make(map[string]map[string]string)
	if errJSON := json.Unmarshal([]byte(content), &doc); errJSON != nil {
		return nil, errJSON
	}

	return doc, nil
}

func extractFencedJSON(body string) (string, error) {
	start := strings.Index(body, fenceOpen)
	if start == -1 {
		return "", ErrMalformedStoreBody
	}
	start += len(fenceOpen)

	end := strings.LastIndex(body, fenceClose)
	if end == -1 || end < start {
		return "", ErrMalformedStoreBody
	}

	return body[start:end], nil
}
