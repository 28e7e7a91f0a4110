package telegram

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"getrich-notifier/models/constants"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const statsAddPrefix = "!stats_add"

// !stats_add "<event>" "<items>" <nGacha> <nModal> [*<extraNote>]
var statsAddPattern = regexp.MustCompile(`^!stats_add\s+"([^"]+)"\s+"([^"]+)"\s+(\d+)\s+(\d+)(?:\s+\*(.+))?\s*$`)

func isStatsAddMessage(message *gotgbot.Message) bool {
	return strings.HasPrefix(message.Text, statsAddPrefix)
}

func (service *Impl) statsCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "stats").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")

	value, found := service.cache.Get(statsCacheKey)
	if !found {
		service.reply(ctx, "No event stats recorded yet.")
		return nil
	}

	text := value.(string)
	if !service.statsUpdatedAt.IsZero() {
		text += "\n_Updated " + humanize.Time(service.statsUpdatedAt) + "._"
	}
	service.reply(ctx, text)
	return nil
}

func (service *Impl) statsAddMsg(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "stats_add").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("stats update received")

	stats, err := parseStatsCommand(ctx.EffectiveMessage.Text)
	if err != nil {
		service.reply(ctx, invalidStatsMessage())
		return nil
	}

	// Single-slot overwrite; there is no history of previous events.
	service.cache.Set(statsCacheKey, formatStats(stats), cache.NoExpiration)
	service.statsUpdatedAt = time.Now()

	service.reply(ctx, "Event stats updated. Query them with /stats.")
	return nil
}

type eventStats struct {
	event     string
	items     string
	nGacha    string
	nModal    string
	extraNote string
}

func parseStatsCommand(text string) (eventStats, error) {
	matches := statsAddPattern.FindStringSubmatch(text)
	if matches == nil {
		return eventStats{}, fmt.Errorf("text does not match the %s format", statsAddPrefix)
	}

	return eventStats{
		event:     matches[1],
		items:     matches[2],
		nGacha:    matches[3],
		nModal:    matches[4],
		extraNote: strings.TrimSpace(matches[5]),
	}, nil
}

func formatStats(stats eventStats) string {
	text := "🎲 *" + stats.event + "*\n"
	text += "🎁 Items: " + stats.items + "\n"
	text += "🎰 Gacha: " + stats.nGacha + "\n"
	text += "💎 Modal: " + stats.nModal
	if stats.extraNote != "" {
		text += "\n📝 " + stats.extraNote
	}
	return text
}

func invalidStatsMessage() string {
	msg := "Invalid format. 😔\n\n"
	msg += "Usage: `" + statsAddPrefix + " \"<event>\" \"<items>\" <nGacha> <nModal> [*<extraNote>]`\n"
	msg += "Example: `" + statsAddPrefix + " \"Spring Festival\" \"Lucky Hat\" 10 500 *limited run`"
	return msg
}
