package app

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// ProjectStatusView is one row of the dashboard.
type ProjectStatusView struct {
	ProjectID       string               `json:"projectId"`
	ProjectName     string               `json:"projectName"`
	ManagerID       string               `json:"managerId"`
	Status          domain.ProjectStatus `json:"status"`
	OverallProgress int                  `json:"overallProgress"`
	TimeElapsedPct  int                  `json:"timeElapsedPct"`
	DaysRemaining   int                  `json:"daysRemaining"`
	LatestWeek      int                  `json:"latestWeek"`
	// Behind is set when elapsed time runs ahead of reported progress.
	Behind bool `json:"behind"`
}

type DashboardStats struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Total       int                 `json:"total"`
	OnTrack     int                 `json:"onTrack"`
	AtRisk      int                 `json:"atRisk"`
	OffTrack    int                 `json:"offTrack"`
	OnHold      int                 `json:"onHold"`
	Completed   int                 `json:"completed"`
	Projects    []ProjectStatusView `json:"projects"`
}

// ManagerStats summarises one manager's portfolio. InProgress counts On Track
// and Off Track projects; Rating is CompletionRate scaled to five stars.
type ManagerStats struct {
	ManagerID      string  `json:"managerId"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	AtRisk         int     `json:"atRisk"`
	CompletionRate float64 `json:"completionRate"`
	Rating         float64 `json:"rating"`
}
