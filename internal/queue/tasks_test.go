package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadFollowUpTaskRoundTrip(t *testing.T) {
	payload := LeadFollowUpPayload{
		LeadID:  "lead-123",
		Channel: "EMAIL",
		Content: "Thanks for reaching out. We will contact you shortly.",
	}

	task, err := NewLeadFollowUpTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskLeadFollowUp, task.Type())

	parsed, err := ParseLeadFollowUpPayload(task)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed)
}

func TestScheduledReportTaskRoundTrip(t *testing.T) {
	payload := ScheduledReportPayload{ReportID: "report-42"}

	task, err := NewScheduledReportTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskScheduledReport, task.Type())

	parsed, err := ParseScheduledReportPayload(task)
	require.NoError(t, err)
	assert.Equal(t, payload, parsed)
}
