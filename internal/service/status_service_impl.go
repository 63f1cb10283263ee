package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
	"github.com/alexanderramin/cadence/internal/repository"
)

type statusService struct {
	uow db.UnitOfWork
	deps
}

func NewStatusService(uow db.UnitOfWork, opts ...Option) StatusService {
	return &statusService{uow: uow, deps: newDeps(opts)}
}

type projectWithReports struct {
	project *domain.Project
	reports []*domain.WeeklyReport
}

// portfolio reads the projects visible to the actor with their reports.
func (s *statusService) portfolio(ctx context.Context, actor domain.Actor, managerID string) ([]projectWithReports, error) {
	return db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) ([]projectWithReports, error) {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		var (
			projects []*domain.Project
			err      error
		)
		switch {
		case managerID != "":
			projects, err = txProjects.ListByManager(ctx, managerID)
		case actor.IsAdmin():
			projects, err = txProjects.List(ctx)
		default:
			projects, err = txProjects.ListByManager(ctx, actor.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("loading projects: %w", err)
		}

		txReports := repository.NewSQLiteReportRepo(tx)
		out := make([]projectWithReports, 0, len(projects))
		for _, p := range projects {
			reports, err := txReports.ListByProject(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			out = append(out, projectWithReports{project: p, reports: reports})
		}
		return out, nil
	})
}

func (s *statusService) Dashboard(ctx context.Context, actor domain.Actor, now time.Time) (stats *app.DashboardStats, err error) {
	startedAt := s.now()
	fields := map[string]any{"actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "dashboard", startedAt, fields, err) }()

	if err = actor.Validate(); err != nil {
		return nil, err
	}
	items, err := s.portfolio(ctx, actor, "")
	if err != nil {
		return nil, err
	}

	stats = &app.DashboardStats{GeneratedAt: now.UTC(), Projects: make([]app.ProjectStatusView, 0, len(items))}
	for _, it := range items {
		p := it.project
		stats.Total++
		switch p.Status {
		case domain.ProjectOnTrack:
			stats.OnTrack++
		case domain.ProjectAtRisk:
			stats.AtRisk++
		case domain.ProjectOffTrack:
			stats.OffTrack++
		case domain.ProjectOnHold:
			stats.OnHold++
		case domain.ProjectCompleted:
			stats.Completed++
		}

		sorted := progress.SortReports(it.reports)
		view := app.ProjectStatusView{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			ManagerID:   p.ManagerID,
			Status:      p.Status,
		}
		if n := len(sorted); n > 0 {
			view.OverallProgress = sorted[n-1].Progress
			view.LatestWeek = sorted[n-1].Week
		}
		tl := progress.TimeProgress(p.StartDate, p.EstimatedEndDate, now)
		view.TimeElapsedPct = tl.ElapsedPct
		view.DaysRemaining = tl.DaysRemaining
		view.Behind = !p.IsCompleted() && tl.ElapsedPct > view.OverallProgress
		stats.Projects = append(stats.Projects, view)
	}
	fields["projects"] = stats.Total
	return stats, nil
}

// ManagerStats is visible to admins and to the manager it describes.
func (s *statusService) ManagerStats(ctx context.Context, actor domain.Actor, managerID string) (stats *app.ManagerStats, err error) {
	startedAt := s.now()
	fields := map[string]any{"actor_id": actor.ID, "manager_id": managerID}
	defer func() { observe(ctx, s.observer, "manager-stats", startedAt, fields, err) }()

	if managerID == "" {
		var errs domain.ValidationErrors
		errs.Add("managerId", "manager is required")
		return nil, errs
	}
	if !actor.IsAdmin() && actor.ID != managerID {
		return nil, fmt.Errorf("%s %q may not view stats of %q: %w", actor.Role, actor.ID, managerID, domain.ErrPermissionDenied)
	}
	items, err := s.portfolio(ctx, actor, managerID)
	if err != nil {
		return nil, err
	}

	stats = &app.ManagerStats{ManagerID: managerID}
	for _, it := range items {
		stats.Total++
		switch it.project.Status {
		case domain.ProjectCompleted:
			stats.Completed++
		case domain.ProjectOnTrack, domain.ProjectOffTrack:
			stats.InProgress++
		case domain.ProjectAtRisk:
			stats.AtRisk++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	stats.Rating = stats.CompletionRate * 5
	return stats, nil
}
