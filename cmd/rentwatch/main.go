package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/cwygoda/rentwatch/internal/adapter/rightmove"
	"github.com/cwygoda/rentwatch/internal/adapter/snapshot"
	"github.com/cwygoda/rentwatch/internal/adapter/twilio"
	"github.com/cwygoda/rentwatch/internal/config"
	"github.com/cwygoda/rentwatch/internal/domain"
	"github.com/cwygoda/rentwatch/internal/watcher"
)

func main() {
	// Optional .env for credential overrides; a missing file is fine.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", "err", err)
	}

	log.Info("starting rentwatch",
		"search", cfg.Search.URL,
		"interval", time.Duration(cfg.Interval),
		"history", cfg.HistoryFile)

	store, err := snapshot.New(cfg.HistoryFile)
	if err != nil {
		log.Fatal("failed to initialize history store", "err", err)
	}

	persisted, err := store.Load()
	if err != nil {
		log.Fatal("failed to load history snapshot", "err", err)
	}
	history := domain.RestoreHistory(cfg.MaxHistory, persisted)
	if history.Len() > 0 {
		log.Info("restored history", "tracked", history.Len())
	}

	client, err := rightmove.NewClient(rightmove.Options{
		SearchURL: cfg.Search.URL,
		Params:    cfg.Search.Params,
		Timeout:   time.Duration(cfg.HTTP.Timeout),
		UserAgent: cfg.HTTP.UserAgent,
	})
	if err != nil {
		log.Fatal("failed to build search client", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Login.Enabled() {
		if err := client.Login(ctx, cfg.Login.Email, cfg.Login.Password); err != nil {
			log.Fatal("site login failed", "err", err)
		}
		log.Info("site login succeeded", "email", cfg.Login.Email)
	}

	notifier := twilio.New(cfg.Twilio)

	w := watcher.New(client, store, notifier, history, watcher.Params{
		Interval:      time.Duration(cfg.Interval),
		CheckDepth:    cfg.CheckDepth,
		FailThreshold: cfg.FailThreshold,
	})

	w.Run(ctx)

	log.Info("shutdown complete")
}
