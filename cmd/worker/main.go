package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/mail"
	"github.com/spec-kit/lead-service/internal/messaging"
	"github.com/spec-kit/lead-service/internal/observability"
	"github.com/spec-kit/lead-service/internal/persistence"
	"github.com/spec-kit/lead-service/internal/queue"
	"github.com/spec-kit/lead-service/internal/repository"
	"github.com/spec-kit/lead-service/internal/service"
	"github.com/spec-kit/lead-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	queueClient := queue.NewClient(cfg.Redis, cfg.Queue)
	defer queueClient.Close() //nolint:errcheck

	pool := pg.PoolHandle()
	leadRepo := repository.NewLeadRepository(pool)
	integrationRepo := repository.NewIntegrationRepository(pool)
	reportRepo := repository.NewReportRepository(pool)

	reportService := service.NewReportService(reportRepo, queueClient, logger)

	w := worker.NewWorker(worker.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Leads:     leadRepo,
		Reports:   reportService,
		Messenger: messaging.NewDispatcher(integrationRepo, logger),
		Mailer:    mail.NewMailer(cfg.SMTP),
	})

	scheduler, err := worker.NewScheduler(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build scheduler", zap.Error(err))
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			logger.Error("scheduler stopped", zap.Error(err))
		}
	}()
	defer scheduler.Shutdown()

	logger.Info("worker started", zap.String("queue", cfg.Queue.Name))
	if err := w.Run(ctx); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
