package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/app"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/config"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("storefront-worker", cfg.LogLevel)
	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS is required for the worker")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	infra, err := app.Connect(connectCtx, cfg, log)
	connectCancel()
	if err != nil {
		log.Error("failed to connect", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infra.Close(log)

	worker := app.NewWorker(cfg, app.NewSender(cfg, log), infra.Redis, log)
	defer func() { _ = worker.Close() }()

	log.Info("starting order confirmation worker", slog.Any("brokers", cfg.KafkaBrokers))
	if err := worker.Run(ctx); err != nil {
		log.Error("worker error", slog.String("error", err.Error()))
		return
	}
	log.Info("order confirmation worker stopped")
}
