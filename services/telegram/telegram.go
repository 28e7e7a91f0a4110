package telegram

import (
	"strconv"
	"time"

	"getrich-notifier/models/constants"
	"getrich-notifier/repositories/destinations"
	facebookService "getrich-notifier/services/facebook"
	updatesService "getrich-notifier/services/updates"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/dustin/go-humanize"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

func New(token string,
	destRepo destinations.Repository,
	facebookSvc facebookService.Service,
	updatesSvc updatesService.Service) (*Impl, error) {

	if token == "" {
		return &Impl{}, ErrTokenIsMissing
	}

	b, err := gotgbot.NewBot(token, nil)
	if err != nil {
		return &Impl{}, ErrBotNotInitialized
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Warn().Err(err).Msg("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})

	service := Impl{
		bot:             b,
		destRepo:        destRepo,
		facebookService: facebookSvc,
		updatesService:  updatesSvc,
		cache:           cache.New(cache.NoExpiration, cache.NoExpiration),
	}
	dispatcher.AddHandler(handlers.NewCommand("start", service.startCmd))
	dispatcher.AddHandler(handlers.NewCommand("help", service.helpCmd))
	dispatcher.AddHandler(handlers.NewCommand("setup", service.setupCmd))
	dispatcher.AddHandler(handlers.NewCommand("setup_update", service.setupUpdateCmd))
	dispatcher.AddHandler(handlers.NewCommand("checkupdate", service.checkUpdateCmd))
	dispatcher.AddHandler(handlers.NewCommand("checknews", service.checkNewsCmd))
	dispatcher.AddHandler(handlers.NewCommand("stats", service.statsCmd))
	dispatcher.AddHandler(handlers.NewMessage(isStatsAddMessage, service.statsAddMsg))

	service.registerCommands()
	service.updater = ext.NewUpdater(dispatcher, nil)

	return &service, nil
}

func (service *Impl) registerCommands() {
	commands := []gotgbot.BotCommand{
		{Command: "setup", Description: "Register this chat for page notifications"},
		{Command: "setup_update", Description: "Register this chat for update notes"},
		{Command: "checkupdate", Description: "Check the latest page post manually"},
		{Command: "checknews", Description: "Check the latest update notes manually"},
		{Command: "stats", Description: "Show the cached event cost statistics"},
		{Command: "help", Description: "Show the help message"},
	}
	if _, err := service.bot.SetMyCommands(commands, nil); err != nil {
		log.Warn().Err(err).Msg("Cannot register bot commands, continuing without menu")
	}
}

func (service *Impl) ListenAndDispatch() error {
	err := service.updater.StartPolling(service.bot, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return ErrFailedToStartListening
	}

	service.updater.Idle()
	return nil
}

func (service *Impl) startCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "start").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	service.reply(ctx, welcomeMessage())
	return nil
}

func (service *Impl) helpCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "help").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")
	service.reply(ctx, helpMessage())
	return nil
}

func (service *Impl) setupCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	return service.registerDestination(ctx, "setup", constants.FeedTypePage)
}

func (service *Impl) setupUpdateCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	return service.registerDestination(ctx, "setup_update", constants.FeedTypeUpdates)
}

func (service *Impl) registerDestination(ctx *ext.Context, cmd string, feedType constants.FeedType) error {
	log.Info().Str("cmd", cmd).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")

	if !service.isAdmin(ctx) {
		log.Warn().Str("cmd", cmd).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("forbidden usage")
		service.reply(ctx, "Only chat administrators can register destinations.")
		return nil
	}

	destinationID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	if args := ctx.Args(); len(args) > 1 {
		parsed, errParse := strconv.ParseInt(args[1], 10, 64)
		if errParse != nil {
			service.reply(ctx, "That does not look like a chat identifier. Usage: /"+cmd+" [chatID]")
			return nil
		}
		destinationID = strconv.FormatInt(parsed, 10)
	}

	communityID := strconv.FormatInt(ctx.EffectiveChat.Id, 10)
	if err := service.destRepo.Register(feedType, communityID, destinationID); err != nil {
		log.Error().Err(err).Str("cmd", cmd).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("cannot register destination")
		service.reply(ctx, genericErrorMessage())
		return nil
	}

	if feedType == constants.FeedTypeUpdates {
		service.reply(ctx, "Update notes will be sent to chat `"+destinationID+"`.")
	} else {
		service.reply(ctx, "Page notifications will be sent to chat `"+destinationID+"`.")
	}
	return nil
}

// isAdmin allows private chats outright and requires the creator or an
// administrator everywhere else.
func (service *Impl) isAdmin(ctx *ext.Context) bool {
	if ctx.EffectiveChat.Type == "private" {
		return true
	}

	member, err := service.bot.GetChatMember(ctx.EffectiveChat.Id, ctx.EffectiveSender.Id(), nil)
	if err != nil {
		log.Warn().Err(err).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("cannot check member status")
		return false
	}

	status := member.GetStatus()
	return status == "creator" || status == "administrator"
}

func (service *Impl) checkUpdateCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "checkupdate").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")

	pending := service.replyPending(ctx, "🔍 Checking the page for the latest post...")

	post, err := service.facebookService.FetchLatest()
	if err != nil || post == nil {
		service.resolvePending(ctx, pending, "Error: No posts found.")
		return nil
	}

	text := composeAnnouncement("Latest post on LINE Let's Get Rich Facebook page", post)
	if detectedAt, ok := service.facebookService.LastDetectedAt(); ok {
		text += "\n_Last new post detected " + humanize.Time(detectedAt) + "._"
	}
	service.resolvePending(ctx, pending, text)
	return nil
}

func (service *Impl) checkNewsCmd(b *gotgbot.Bot, ctx *ext.Context) error {
	log.Info().Str("cmd", "checknews").Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("command received")

	pending := service.replyPending(ctx, "🔍 Checking the update notes feed...")

	posts, _, err := service.updatesService.FetchLatest()
	if err != nil || len(posts) == 0 {
		service.resolvePending(ctx, pending, "Error: No update notes found.")
		return nil
	}

	service.resolvePending(ctx, pending, composeAnnouncement("Latest update notes for LINE Let's Get Rich", posts[0]))
	return nil
}

// reply sends a plain Markdown answer in the chat the command came from.
func (service *Impl) reply(ctx *ext.Context, text string) {
	_, err := service.bot.SendMessage(ctx.EffectiveChat.Id, text, &gotgbot.SendMessageOpts{ParseMode: "Markdown"})
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("cannot send reply")
	}
}

// replyPending posts a placeholder that resolvePending later edits into the
// final answer; when the placeholder failed, resolvePending falls back to a
// fresh reply.
func (service *Impl) replyPending(ctx *ext.Context, text string) *gotgbot.Message {
	message, err := service.bot.SendMessage(ctx.EffectiveChat.Id, text, nil)
	if err != nil {
		log.Warn().Err(err).Int64(constants.LogChatID, ctx.EffectiveChat.Id).Msg("cannot send placeholder")
		return nil
	}
	return message
}

func (service *Impl) resolvePending(ctx *ext.Context, pending *gotgbot.Message, text string) {
	if pending == nil {
		service.reply(ctx, text)
		return
	}

	_, _, err := service.bot.EditMessageText(text, &gotgbot.EditMessageTextOpts{
		ChatId:    pending.Chat.Id,
		MessageId: pending.MessageId,
		ParseMode: "Markdown",
	})
	if err != nil {
		log.Error().Err(err).Int64(constants.LogChatID, pending.Chat.Id).Msg("cannot edit placeholder")
	}
}
