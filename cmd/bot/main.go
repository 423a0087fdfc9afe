package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivanoskov/currency_bot/internal/bot"
	"github.com/ivanoskov/currency_bot/internal/config"
	"github.com/ivanoskov/currency_bot/internal/notifier"
	"github.com/ivanoskov/currency_bot/internal/rates"
	"github.com/ivanoskov/currency_bot/internal/repository"
	"github.com/ivanoskov/currency_bot/internal/service"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	store, err := repository.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init tracking store")
	}

	ctx := context.Background()

	var client rates.Client = rates.NewHTTPClient(cfg.Rates.BaseURL, cfg.Rates.AppID, cfg.Rates.Timeout)
	if cfg.Redis.Addr != "" {
		cached, err := rates.NewCachedClient(ctx, client, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.TTL)
		if err != nil {
			// Без redis бот работает, просто каждый запрос идет в API
			log.Warn().Err(err).Msg("redis unavailable, rates cache disabled")
		} else {
			client = cached
		}
	}

	exchanger := service.NewExchanger(client, cfg.Rates.BaseCurrency, cfg.Rates.HistoryDays)

	b, err := bot.NewBot(cfg.TelegramToken, exchanger, store, bot.NewSessionStore())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init bot")
	}

	digest := notifier.NewDailyDigest(store, exchanger, b.Transport(), cfg.Digest.Hour)
	go digest.Run(ctx)

	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}
