package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/config"
	"github.com/spec-kit/lead-service/internal/mail"
	"github.com/spec-kit/lead-service/internal/messaging"
	"github.com/spec-kit/lead-service/internal/queue"
	"github.com/spec-kit/lead-service/internal/repository"
	"github.com/spec-kit/lead-service/internal/service"
)

// Dependencies wires the worker's collaborators.
type Dependencies struct {
	Config    *config.Config
	Logger    *zap.Logger
	Leads     repository.LeadRepository
	Reports   *service.ReportService
	Messenger *messaging.Dispatcher
	Mailer    *mail.Mailer
}

// Worker consumes background tasks from the queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	deps   Dependencies
}

// NewWorker builds the asynq server and registers task handlers.
func NewWorker(deps Dependencies) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     deps.Config.Redis.Addr,
		Password: deps.Config.Redis.Password,
		DB:       deps.Config.Redis.DB,
	}

	queueName := deps.Config.Queue.Name
	if queueName == "" {
		queueName = "default"
	}
	concurrency := deps.Config.Queue.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queueName: 1},
	})

	w := &Worker{server: server, mux: asynq.NewServeMux(), deps: deps}
	w.mux.HandleFunc(queue.TaskLeadFollowUp, w.handleLeadFollowUp)
	w.mux.HandleFunc(queue.TaskScheduledReport, w.handleScheduledReport)
	w.mux.HandleFunc(queue.TaskReportCycle, w.handleReportCycle)
	return w
}

// Run blocks processing tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()
	return w.server.Run(w.mux)
}
