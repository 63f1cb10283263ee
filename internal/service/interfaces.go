package service

import (
	"context"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/importer"
)

type ProjectTypeService interface {
	List(ctx context.Context) ([]*domain.ProjectType, error)
	Get(ctx context.Context, id string) (*domain.ProjectType, error)
	Create(ctx context.Context, actor domain.Actor, t *domain.ProjectType) error
	Update(ctx context.Context, actor domain.Actor, t *domain.ProjectType) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type ClientService interface {
	// List returns clients by name; limit <= 0 returns all of them.
	List(ctx context.Context, limit int) ([]*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, actor domain.Actor, c *domain.Client) error
	Update(ctx context.Context, actor domain.Actor, c *domain.Client) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type MilestoneService interface {
	List(ctx context.Context) ([]*domain.Milestone, error)
	Get(ctx context.Context, id string) (*domain.Milestone, error)
	// Resolve returns every template applicable to a project type.
	Resolve(ctx context.Context, projectTypeID string) ([]*domain.Milestone, error)
	Create(ctx context.Context, actor domain.Actor, m *domain.Milestone) error
	Update(ctx context.Context, actor domain.Actor, m *domain.Milestone) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type ProjectService interface {
	List(ctx context.Context) ([]*domain.Project, error)
	ListByManager(ctx context.Context, managerID string) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, actor domain.Actor, p *domain.Project) error
	Update(ctx context.Context, actor domain.Actor, p *domain.Project) error
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type ReportService interface {
	app.SubmitReportUseCase
	app.GeneralReportUseCase
	app.WeeklyReportUseCase
	app.ProgressUseCase
	ListReports(ctx context.Context, projectID string) ([]*domain.WeeklyReport, error)
	NextWeek(ctx context.Context, projectID string) (int, error)
	Delete(ctx context.Context, actor domain.Actor, projectID string, week int) error
}

type StatusService interface {
	app.DashboardUseCase
}

type ImportService interface {
	ImportFile(ctx context.Context, actor domain.Actor, path string) (*app.ImportResult, error)
	Import(ctx context.Context, actor domain.Actor, doc *importer.Document) (*app.ImportResult, error)
}
