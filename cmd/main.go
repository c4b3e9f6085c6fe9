package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/nearby-jobs-bot/internal/bot"
	"github.com/maxaizer/nearby-jobs-bot/internal/config"
	"github.com/maxaizer/nearby-jobs-bot/internal/logger"
	"github.com/maxaizer/nearby-jobs-bot/internal/metrics"
	"github.com/maxaizer/nearby-jobs-bot/internal/repositories"
	"github.com/maxaizer/nearby-jobs-bot/internal/services"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Port)

	dbContext, err := repositories.NewDbContext(cfg.DB.Driver, cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	users := repositories.NewCachedUsers(repositories.NewUsersRepository(dbContext.DB))
	vacancies := repositories.NewVacanciesRepository(dbContext.DB)
	subscriptions := repositories.NewSubscriptionsRepository(dbContext.DB)
	payments := repositories.NewPaymentsRepository(dbContext.DB)
	statistics := repositories.NewStatisticsRepository(dbContext.DB)
	sessions := repositories.NewSessionsRepository(dbContext.DB)

	bus := EventBus.New()

	api, err := bot.NewAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatalf("can't connect to telegram: %v", err)
	}
	notifier := bot.NewNotifier(api, cfg.Bot.MaxMessagesPerSecond)

	fanout := services.NewFanoutDispatcher(subscriptions, notifier, cfg.Board.FanoutWorkers)
	moderation := services.NewModerationService(bus, vacancies, users, fanout, cfg.Bot.AdminIDs)
	discovery := services.NewDiscoveryService(vacancies, cfg.Board.PageSize, cfg.Board.SearchRadiusKm)
	promotions := services.NewPromotionLedger(vacancies, payments, cfg.Board.PromotionDays)

	expirer, err := services.NewPromotionExpirer(vacancies, cfg.Board.ExpirePromotionsSchedule)
	if err != nil {
		log.Fatalf("can't create promotion expirer: %v", err)
	}
	defer expirer.Stop()

	tgbot, err := bot.NewBot(api, bus, bot.Dependencies{
		Users:         users,
		Vacancies:     vacancies,
		Sessions:      sessions,
		Statistics:    statistics,
		Discovery:     discovery,
		Moderation:    moderation,
		Subscriptions: services.NewSubscriptionService(subscriptions),
		Promotions:    promotions,
	})
	if err != nil {
		log.Fatalf("can't create bot: %v", err)
	}
	tgbot.WithPageSize(cfg.Board.PageSize)
	go tgbot.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	tgbot.Stop()
	notifier.Stop()
	log.Info("Services stopped.")
}
