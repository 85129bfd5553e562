package domain

import "time"

// ReportCadence enumerates scheduled report frequencies.
type ReportCadence string

const (
	ReportCadenceDaily  ReportCadence = "DAILY"
	ReportCadenceWeekly ReportCadence = "WEEKLY"
)

// ScheduledReport is a recipient subscription for the analytics summary mail.
type ScheduledReport struct {
	ID             string
	RecipientEmail string
	Cadence        ReportCadence
	CreatedAt      time.Time
}

// AnalyticsSummary aggregates lead counts for dashboards and report mails.
type AnalyticsSummary struct {
	TotalLeads     int64
	ByStatus       map[LeadStatus]int64
	ByChannel      map[LeadChannel]int64
	AverageScore   float64
	UnassignedOpen int64
}
