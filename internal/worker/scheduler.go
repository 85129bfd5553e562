package worker

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/domain"
	"github.com/spec-kit/lead-service/internal/queue"
)

// Report cycles run at 08:00 UTC, weekly on Monday.
const (
	dailyReportCron  = "0 8 * * *"
	weeklyReportCron = "0 8 * * 1"
)

// NewScheduler registers the recurring report cycle entries.
func NewScheduler(cfg *config.Config, logger *zap.Logger) (*asynq.Scheduler, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	queueName := cfg.Queue.Name
	if queueName == "" {
		queueName = "default"
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})

	entries := []struct {
		spec    string
		cadence domain.ReportCadence
	}{
		{dailyReportCron, domain.ReportCadenceDaily},
		{weeklyReportCron, domain.ReportCadenceWeekly},
	}
	for _, entry := range entries {
		task, err := queue.NewReportCycleTask(queue.ReportCyclePayload{Cadence: string(entry.cadence)})
		if err != nil {
			return nil, err
		}
		entryID, err := scheduler.Register(entry.spec, task, asynq.Queue(queueName))
		if err != nil {
			return nil, err
		}
		logger.Info("report cycle registered",
			zap.String("entry_id", entryID),
			zap.String("cadence", string(entry.cadence)),
			zap.String("spec", entry.spec))
	}
	return scheduler, nil
}
