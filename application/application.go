package application

import (
	"fmt"

	"getrich-notifier/models/constants"
	"getrich-notifier/models/entities"
	destinationsRepo "getrich-notifier/repositories/destinations"
	facebookService "getrich-notifier/services/facebook"
	healthService "getrich-notifier/services/health"
	telegramService "getrich-notifier/services/telegram"
	updatesService "getrich-notifier/services/updates"
	databases "getrich-notifier/utils/databases"
	"getrich-notifier/utils/insights"
	"getrich-notifier/utils/stores"

	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() (*Impl, error) {
	store, db, errStore := newStore()
	if errStore != nil {
		return nil, errStore
	}

	isAlive := func() bool { return true }
	if db != nil {
		isAlive = db.IsConnected
	}
	probes := insights.NewProbes(isAlive)

	scheduler, errScheduler := gocron.NewScheduler()
	if errScheduler != nil {
		return nil, errScheduler
	}

	destRepo := destinationsRepo.New(store)

	facebookSvc, errFacebook := facebookService.New(scheduler)
	if errFacebook != nil {
		return nil, errFacebook
	}

	updatesSvc, errUpdates := updatesService.New(scheduler)
	if errUpdates != nil {
		return nil, errUpdates
	}

	healthSvc, errHealth := healthService.New(scheduler)
	if errHealth != nil {
		return nil, errHealth
	}

	telegramSvc, errTg := telegramService.New(viper.GetString(constants.TelegramBotToken), destRepo, facebookSvc, updatesSvc)
	if errTg != nil {
		return nil, errTg
	}

	facebookSvc.RegisterObserver(telegramSvc)
	updatesSvc.RegisterObserver(telegramSvc)

	return &Impl{
		scheduler:       scheduler,
		probes:          probes,
		healthService:   healthSvc,
		facebookService: facebookSvc,
		updatesService:  updatesSvc,
		telegramService: telegramSvc,
		db:              db,
	}, nil
}

// newStore builds the registry backing store selected by configuration. The
// sqlite backend also returns its connection so the application can close it
// on shutdown.
func newStore() (stores.KeyValueStore, databases.SqlConnection, error) {
	backend := viper.GetString(constants.StoreBackend)
	switch backend {
	case constants.StoreBackendFile:
		return stores.NewFileStore(viper.GetString(constants.StoreDir)), nil, nil

	case constants.StoreBackendSqlite:
		db := databases.New()
		if errDB := db.Run(); errDB != nil {
			return nil, nil, errDB
		}
		if errMigration := db.GetDB().AutoMigrate(&entities.Destination{}); errMigration != nil {
			return nil, nil, errMigration
		}
		return stores.NewDatabaseStore(db), db, nil

	case constants.StoreBackendMessage:
		bot, errBot := gotgbot.NewBot(viper.GetString(constants.TelegramBotToken), nil)
		if errBot != nil {
			return nil, nil, errBot
		}
		return stores.NewMessageStore(bot, viper.GetInt64(constants.StoreChatID)), nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", stores.ErrUnknownBackend, backend)
	}
}

func (app *Impl) Run() {
	app.scheduler.Start()
	go func() {
		if err := app.telegramService.ListenAndDispatch(); err != nil {
			log.Error().Err(err).Msg("Telegram listener stopped")
		}
	}()

	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	app.probes.ListenAndServe()
}

func (app *Impl) Shutdown() {
	if err := app.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
	}
	if app.db != nil {
		app.db.Shutdown()
	}
	log.Info().Msgf("Application is no longer running")
}
