package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskLeadFollowUp is enqueued after a direct API lead creation.
const TaskLeadFollowUp = "leads.followup"

// TaskScheduledReport is enqueued per scheduled report subscription.
const TaskScheduledReport = "reports.scheduled"

// TaskReportCycle is emitted by the cron scheduler to fan out one
// TaskScheduledReport per subscription matching the cadence.
const TaskReportCycle = "reports.cycle"

// LeadFollowUpPayload identifies the lead to contact and what to say.
type LeadFollowUpPayload struct {
	LeadID  string `json:"lead_id"`
	Channel string `json:"channel"`
	Content string `json:"content"`
}

// ScheduledReportPayload identifies the report subscription to fulfill.
type ScheduledReportPayload struct {
	ReportID string `json:"report_id"`
}

// ReportCyclePayload names the cadence whose subscriptions are due.
type ReportCyclePayload struct {
	Cadence string `json:"cadence"`
}

// NewLeadFollowUpTask builds the asynq task for a follow-up dispatch.
func NewLeadFollowUpTask(payload LeadFollowUpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowUp, data), nil
}

// ParseLeadFollowUpPayload decodes a follow-up task payload.
func ParseLeadFollowUpPayload(task *asynq.Task) (LeadFollowUpPayload, error) {
	var payload LeadFollowUpPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadFollowUpPayload{}, err
	}
	return payload, nil
}

// NewScheduledReportTask builds the asynq task for a report delivery.
func NewScheduledReportTask(payload ScheduledReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskScheduledReport, data), nil
}

// ParseScheduledReportPayload decodes a report task payload.
func ParseScheduledReportPayload(task *asynq.Task) (ScheduledReportPayload, error) {
	var payload ScheduledReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ScheduledReportPayload{}, err
	}
	return payload, nil
}

// NewReportCycleTask builds the asynq task that starts a report cycle.
func NewReportCycleTask(payload ReportCyclePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportCycle, data), nil
}

// ParseReportCyclePayload decodes a report cycle payload.
func ParseReportCyclePayload(task *asynq.Task) (ReportCyclePayload, error) {
	var payload ReportCyclePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReportCyclePayload{}, err
	}
	return payload, nil
}
