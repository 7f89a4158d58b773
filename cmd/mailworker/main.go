package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"travelnest/internal/config"
	"travelnest/internal/mail"
	"travelnest/internal/platform/logger"
	"travelnest/internal/platform/redisclient"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer rdb.Close()

	worker := mail.NewWorker(mail.NewQueue(rdb), mail.NewSender(cfg.SMTP), log)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("mail worker stopped: %v", err)
	}
}
