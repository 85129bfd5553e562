package queue

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/spec-kit/lead-service/internal/config"
)

// Enqueuer is the narrow interface the intake pipeline depends on. Enqueue is
// fire-and-forget: delivery happens out-of-band in the worker process.
type Enqueuer interface {
	EnqueueLeadFollowUp(ctx context.Context, payload LeadFollowUpPayload) error
	EnqueueScheduledReport(ctx context.Context, payload ScheduledReportPayload) error
}

// Client wraps an asynq client bound to the configured queue.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient builds the enqueue-side queue client over the shared Redis.
func NewClient(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *Client {
	opt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}
	name := queueCfg.Name
	if name == "" {
		name = "default"
	}
	return &Client{
		client: asynq.NewClient(opt),
		queue:  name,
	}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueLeadFollowUp queues a follow-up dispatch for the lead.
func (c *Client) EnqueueLeadFollowUp(ctx context.Context, payload LeadFollowUpPayload) error {
	if c == nil || c.client == nil {
		return nil
	}
	task, err := NewLeadFollowUpTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// EnqueueScheduledReport queues a report delivery.
func (c *Client) EnqueueScheduledReport(ctx context.Context, payload ScheduledReportPayload) error {
	if c == nil || c.client == nil {
		return nil
	}
	task, err := NewScheduledReportTask(payload)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}
