package app

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
	"github.com/alexanderramin/cadence/internal/report"
)

type SubmitReportUseCase interface {
	Submit(ctx context.Context, actor domain.Actor, in SubmitReportInput) (*SubmitReportResult, error)
}

type GeneralReportUseCase interface {
	GetGeneral(ctx context.Context, projectID string, now time.Time) (*report.GeneralReportView, error)
}

type WeeklyReportUseCase interface {
	GetWeekly(ctx context.Context, projectID string, week int, now time.Time) (*report.WeeklyReportView, error)
}

type ProgressUseCase interface {
	Progress(ctx context.Context, projectID string, now time.Time) (*progress.ProgressSummary, error)
}

type DashboardUseCase interface {
	Dashboard(ctx context.Context, actor domain.Actor, now time.Time) (*DashboardStats, error)
	ManagerStats(ctx context.Context, actor domain.Actor, managerID string) (*ManagerStats, error)
}

// ImportResult counts what one seed document wrote.
type ImportResult struct {
	Clients      int `json:"clients"`
	ProjectTypes int `json:"projectTypes"`
	Milestones   int `json:"milestones"`
	Projects     int `json:"projects"`
	Reports      int `json:"reports"`
}
