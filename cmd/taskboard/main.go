package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"taskboard/internal/api"
	"taskboard/internal/bot"
	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(cfg.Log.Level, cfg.Log.Format)
	entry := logg.WithField("service", "taskboard")

	db, err := repository.NewDB(cfg.Database, entry)
	if err != nil {
		entry.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)
	taskSvc := service.NewTaskService(taskRepo, entry)
	reportSvc := service.NewReportService(taskRepo)

	g, ctx := errgroup.WithContext(ctx)

	e := api.New(taskSvc, taskRepo, entry)
	g.Go(func() error {
		entry.WithField("addr", cfg.HTTP.Addr).Info("http server listening")
		return api.Serve(ctx, e, cfg.HTTP.Addr, cfg.HTTP.ShutdownTimeout)
	})

	if cfg.Telegram.Token != "" {
		telegramBot, err := bot.New(cfg.Telegram.Token, taskSvc, reportSvc, entry)
		if err != nil {
			entry.Fatalf("bot: %v", err)
		}
		g.Go(func() error {
			return telegramBot.Start(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		entry.Fatalf("stopped with error: %v", err)
	}
	entry.Info("shutdown complete")
}
