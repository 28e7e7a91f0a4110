package application

import (
	facebookService "getrich-notifier/services/facebook"
	healthService "getrich-notifier/services/health"
	telegramService "getrich-notifier/services/telegram"
	updatesService "getrich-notifier/services/updates"
	databases "getrich-notifier/utils/databases"
	"getrich-notifier/utils/insights"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	Shutdown()
}

type Impl struct {
	scheduler       gocron.Scheduler
	probes          insights.Probes
	healthService   healthService.Service
	facebookService facebookService.Service
	updatesService  updatesService.Service
	telegramService telegramService.Service
	db              databases.SqlConnection
}
