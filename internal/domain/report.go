package domain

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderSummary is shown for a week that has no saved report yet.
const PlaceholderSummary = "Report not yet saved."

// WeeklyReport is a dated snapshot of a project's overall progress.
// Progress is the overall project progress at the end of the week, 0-100.
type WeeklyReport struct {
	ID                     string
	ProjectID              string
	Week                   int
	Progress               int
	Summary                string
	Status                 ReportStatus
	CompletedSubMilestones []string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (r *WeeklyReport) Validate() error {
	var errs ValidationErrors
	if r.ProjectID == "" {
		errs.Add("projectId", "project is required")
	}
	if r.Week < 1 {
		errs.Add("week", "week must be 1 or greater")
	}
	if r.Progress < 0 || r.Progress > 100 {
		errs.Add("progress", "progress must be between 0 and 100")
	}
	if strings.TrimSpace(r.Summary) == "" {
		errs.Add("summary", "summary is required")
	}
	if !ValidReportStatuses[r.Status] {
		errs.Add("status", fmt.Sprintf("invalid value %q", r.Status))
	}
	return errs.OrNil()
}

// NewPlaceholderReport builds the unsaved report shown for a week with no data.
func NewPlaceholderReport(projectID string, week int, now time.Time) *WeeklyReport {
	return &WeeklyReport{
		ProjectID: projectID,
		Week:      week,
		Progress:  0,
		Summary:   PlaceholderSummary,
		Status:    ReportOnTrack,
		CreatedAt: now,
	}
}

// Saved reports have an identity assigned by the store.
func (r *WeeklyReport) Saved() bool {
	return r.ID != ""
}
