package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/lead-service/internal/domain"
)

type fakeReportRepo struct {
	reports []domain.ScheduledReport
	summary *domain.AnalyticsSummary
}

func (f *fakeReportRepo) Create(_ context.Context, report *domain.ScheduledReport) error {
	report.ID = fmt.Sprintf("report-%d", len(f.reports)+1)
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.ScheduledReport, error) {
	for i := range f.reports {
		if f.reports[i].ID == id {
			return &f.reports[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReportRepo) List(_ context.Context) ([]domain.ScheduledReport, error) {
	return f.reports, nil
}

func (f *fakeReportRepo) Summary(_ context.Context) (*domain.AnalyticsSummary, error) {
	return f.summary, nil
}

func TestCreateScheduledReportDefaultsToWeekly(t *testing.T) {
	svc := NewReportService(&fakeReportRepo{}, &fakeEnqueuer{}, zap.NewNop())

	report, err := svc.CreateScheduledReport(context.Background(), "ops@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportCadenceWeekly, report.Cadence)

	_, err = svc.CreateScheduledReport(context.Background(), "", domain.ReportCadenceDaily)
	assert.Error(t, err)

	_, err = svc.CreateScheduledReport(context.Background(), "ops@example.com", domain.ReportCadence("HOURLY"))
	assert.Error(t, err)
}

func TestEnqueueDueFiltersByCadence(t *testing.T) {
	repo := &fakeReportRepo{reports: []domain.ScheduledReport{
		{ID: "r1", RecipientEmail: "a@example.com", Cadence: domain.ReportCadenceDaily},
		{ID: "r2", RecipientEmail: "b@example.com", Cadence: domain.ReportCadenceWeekly},
		{ID: "r3", RecipientEmail: "c@example.com", Cadence: domain.ReportCadenceDaily},
	}}
	enqueuer := &fakeEnqueuer{}
	svc := NewReportService(repo, enqueuer, zap.NewNop())

	require.NoError(t, svc.EnqueueDue(context.Background(), domain.ReportCadenceDaily))
	require.Len(t, enqueuer.reports, 2)
	assert.Equal(t, "r1", enqueuer.reports[0].ReportID)
	assert.Equal(t, "r3", enqueuer.reports[1].ReportID)
}

func TestFormatSummaryBody(t *testing.T) {
	body := FormatSummaryBody(&domain.AnalyticsSummary{
		TotalLeads:     12,
		AverageScore:   61.5,
		UnassignedOpen: 3,
		ByStatus: map[domain.LeadStatus]int64{
			domain.LeadStatusNew:       7,
			domain.LeadStatusContacted: 5,
		},
		ByChannel: map[domain.LeadChannel]int64{
			domain.LeadChannelWhatsApp: 8,
			domain.LeadChannelEmail:    4,
		},
	})

	assert.Contains(t, body, "Total leads: 12")
	assert.Contains(t, body, "Average score: 61.5")
	assert.Contains(t, body, "Unassigned open leads: 3")
	assert.Contains(t, body, "NEW: 7")
	assert.Contains(t, body, "WHATSAPP: 8")
}
