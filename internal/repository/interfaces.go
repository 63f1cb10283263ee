package repository

import (
	"context"

	"github.com/alexanderramin/cadence/internal/domain"
)

type ProjectTypeRepo interface {
	Create(ctx context.Context, t *domain.ProjectType) error
	GetByID(ctx context.Context, id string) (*domain.ProjectType, error)
	List(ctx context.Context) ([]*domain.ProjectType, error)
	Update(ctx context.Context, t *domain.ProjectType) error
	Delete(ctx context.Context, id string) error
}

type ClientRepo interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	// List orders by name; limit <= 0 returns every client.
	List(ctx context.Context, limit int) ([]*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

// MilestoneRepo stores milestone templates together with their project type
// links and ordered sub-milestones.
type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id string) (*domain.Milestone, error)
	List(ctx context.Context) ([]*domain.Milestone, error)
	// ListByProjectType returns templates linked to the type, ordered by name then id.
	ListByProjectType(ctx context.Context, projectTypeID string) ([]*domain.Milestone, error)
	CountByProjectType(ctx context.Context, projectTypeID string) (int, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByManager(ctx context.Context, managerID string) ([]*domain.Project, error)
	CountByProjectType(ctx context.Context, projectTypeID string) (int, error)
	CountByClient(ctx context.Context, clientID string) (int, error)
	CountScheduling(ctx context.Context, milestoneID string) (int, error)
	Update(ctx context.Context, p *domain.Project) error
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	Delete(ctx context.Context, id string) error
}

type ReportRepo interface {
	Create(ctx context.Context, r *domain.WeeklyReport) error
	Update(ctx context.Context, r *domain.WeeklyReport) error
	GetByWeek(ctx context.Context, projectID string, week int) (*domain.WeeklyReport, error)
	// ListByProject returns reports ordered by ascending week.
	ListByProject(ctx context.Context, projectID string) ([]*domain.WeeklyReport, error)
	MaxWeek(ctx context.Context, projectID string) (int, error)
	Delete(ctx context.Context, projectID string, week int) error
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}
