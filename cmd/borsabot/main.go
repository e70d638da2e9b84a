package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"borsabot/internal/admin"
	"borsabot/internal/bot"
	"borsabot/internal/config"
	"borsabot/internal/logger"
	"borsabot/internal/repository"
	"borsabot/internal/service"
	"borsabot/internal/stock"
	"borsabot/internal/telegram"
)

const webhookPath = "/api/webhook"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info")
		fallback.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	users := repository.NewUserRepository(db)
	settings := repository.NewSettingRepository(db)
	joins := repository.NewJoinRequestRepository(db)
	favorites := repository.NewFavoriteRepository(db)

	tg, err := telegram.New(cfg.TelegramToken, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to telegram")
	}
	log.Info().Str("bot", tg.Username()).Msg("authorized on telegram")

	stocks := stock.NewProvider(cfg.CollectAPIKey, log)
	router := bot.NewRouter(tg, stocks, users, settings, joins, favorites, cfg.JoinWelcome, log)
	broadcaster := service.NewBroadcastService(users, tg, log)

	m := mux.NewRouter()
	router.RegisterWebhook(m, webhookPath, cfg.DatabaseSet)
	admin.RegisterHandlers(m, admin.Deps{
		Users:       users,
		Settings:    settings,
		Joins:       joins,
		Chats:       tg,
		Broadcaster: broadcaster,
		Log:         log,
	})

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      m,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.BaseURL != "" {
		url := strings.TrimRight(cfg.BaseURL, "/") + webhookPath
		if err := tg.SetWebhook(url); err != nil {
			log.Fatal().Err(err).Str("url", url).Msg("register webhook")
		}
		if info, err := tg.WebhookInfo(); err == nil {
			log.Info().Str("url", info.URL).Int("pending", info.PendingUpdateCount).Msg("webhook active")
		}
	} else {
		log.Warn().Msg("BASE_URL not set, webhook registration skipped")
	}

	var scheduler *service.SchedulerService
	if cfg.DigestTime != "" {
		loc, err := time.LoadLocation("Europe/Istanbul")
		if err != nil {
			loc = time.Local
		}
		digest := service.NewDigestService(users, favorites, stocks, tg, log)
		scheduler = service.NewSchedulerService(loc)
		if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if err := digest.SendDaily(jobCtx); err != nil {
				log.Error().Err(err).Msg("daily digest run")
			}
		}); err != nil {
			log.Fatal().Err(err).Str("time", cfg.DigestTime).Msg("schedule daily digest")
		}
		scheduler.Start()
		log.Info().Str("time", cfg.DigestTime).Msg("daily digest scheduled")
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if scheduler != nil {
		scheduler.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
		os.Exit(1)
	}
}
