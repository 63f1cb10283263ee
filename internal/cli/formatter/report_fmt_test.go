package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
	"github.com/alexanderramin/cadence/internal/report"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatGeneralReport(t *testing.T) {
	late := progress.BadgeLate
	done := day(1, 22)
	v := &report.GeneralReportView{
		ProjectName:            "Clinic Portal",
		ClientName:             "Northside Clinic",
		ProjectStatus:          domain.ProjectAtRisk,
		StartDate:              day(1, 6),
		EstimatedEndDate:       day(3, 17),
		OverallProgress:        67,
		CompletedSubMilestones: 2,
		TotalSubMilestones:     3,
		Milestones: []report.MilestoneView{
			{
				Name: "Discovery", Percent: 100, AllComplete: true, Badge: &late,
				Schedule: &report.ScheduleView{Start: day(1, 6), End: day(1, 20)},
				Subs: []report.SubView{
					{Name: "Kickoff", Completed: true, CompletedAt: &done},
				},
			},
			{
				Name: "Build", Percent: 0,
				Live: &progress.Evaluation{State: progress.StateAtRisk, Detail: "12 days left"},
				Subs: []report.SubView{{Name: "Backend"}},
			},
		},
		Chart: progress.Series{
			PlannedDefined: true,
			Points:         []progress.ChartPoint{{Week: 1, Label: "W1", Planned: 10, Actual: 33, Incremental: 33}},
		},
		Log: []report.LogEntry{{Week: 2, Summary: "Requirements signed off", Status: domain.ReportOnTrack, Progress: 67}},
	}

	out := FormatGeneralReport(v)

	assert.Contains(t, out, "Clinic Portal")
	assert.Contains(t, out, "Northside Clinic")
	assert.Contains(t, out, "(2/3 sub-milestones)")
	assert.Contains(t, out, "late")
	assert.Contains(t, out, "at risk")
	assert.Contains(t, out, "12 days left")
	assert.Contains(t, out, "2025-01-22")
	assert.Contains(t, out, "W1")
	assert.Contains(t, out, "Requirements signed off")
}

func TestFormatGeneralReport_Empty(t *testing.T) {
	out := FormatGeneralReport(&report.GeneralReportView{ProjectName: "Empty", ProjectStatus: domain.ProjectOnTrack})

	assert.Contains(t, out, "No milestones apply to this project.")
	assert.Contains(t, out, "No weekly reports submitted yet.")
	assert.NotContains(t, out, "PROGRESS CURVE")
}

func TestFormatWeeklyReport_Placeholder(t *testing.T) {
	v := &report.WeeklyReportView{
		ProjectName: "Clinic Portal",
		Week:        3,
		Summary:     domain.PlaceholderSummary,
		Status:      domain.ReportOnTrack,
		Milestones: []report.WeeklyMilestoneView{{
			Name: "Discovery", CheckedSubs: 1, TotalSubs: 2,
			Subs: []report.WeeklySubView{
				{Name: "Kickoff", Checked: true, Locked: true},
				{Name: "Requirements"},
			},
		}},
	}

	out := FormatWeeklyReport(v)

	assert.Contains(t, out, "Week 3")
	assert.Contains(t, out, "(not saved)")
	assert.Contains(t, out, "(earlier week)")
	assert.Contains(t, out, "1/2")
	assert.NotContains(t, out, "All sub-milestones complete.")
}

func TestFormatSubmitResult(t *testing.T) {
	rep := &domain.WeeklyReport{Week: 4, Progress: 100}

	assert.Contains(t, FormatSubmitResult(&app.SubmitReportResult{Report: rep, Created: true}), "Saved week 4")
	assert.Contains(t, FormatSubmitResult(&app.SubmitReportResult{Report: rep, AllComplete: true}), "--complete")
	assert.Contains(t, FormatSubmitResult(&app.SubmitReportResult{Report: rep, AllComplete: true, ProjectCompleted: true}), "marked as completed")
	assert.Contains(t, FormatSubmitResult(&app.SubmitReportResult{Report: rep, CarriedForward: []int{5, 6}}), "forward to week 5, 6")
	assert.NotContains(t, FormatSubmitResult(&app.SubmitReportResult{Report: rep}), "forward")
}
