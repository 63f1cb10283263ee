package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	deps
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, opts ...Option) ProjectService {
	return &projectService{projects: projects, uow: uow, deps: newDeps(opts)}
}

// List returns every project; managers may browse projects they do not own.
func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ListByManager(ctx context.Context, managerID string) ([]*domain.Project, error) {
	return s.projects.ListByManager(ctx, managerID)
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// Create lets admins open any project and managers open projects they manage.
func (s *projectService) Create(ctx context.Context, actor domain.Actor, p *domain.Project) (err error) {
	startedAt := s.now()
	fields := map[string]any{"name": p.Name, "actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "create-project", startedAt, fields, err) }()

	if !actor.IsAdmin() && (actor.Role != domain.RoleManager || p.ManagerID != actor.ID) {
		return fmt.Errorf("%s %q may only create projects they manage: %w", actor.Role, actor.ID, domain.ErrPermissionDenied)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectOnTrack
	}
	normalizeSchedules(p)
	if err = p.Validate(); err != nil {
		return err
	}
	now := s.nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	fields["project_id"] = p.ID

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := checkProjectType(ctx, repository.NewSQLiteProjectTypeRepo(tx), p.ProjectType); err != nil {
			return err
		}
		if err := checkClient(ctx, repository.NewSQLiteClientRepo(tx), p.ClientID); err != nil {
			return err
		}
		if err := checkSchedules(ctx, repository.NewSQLiteMilestoneRepo(tx), p); err != nil {
			return err
		}
		return repository.NewSQLiteProjectRepo(tx).Create(ctx, p)
	})
}

// Update is open to admins and the owning manager. Only admins may hand a
// project to another manager.
func (s *projectService) Update(ctx context.Context, actor domain.Actor, p *domain.Project) (err error) {
	startedAt := s.now()
	fields := map[string]any{"project_id": p.ID, "actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "update-project", startedAt, fields, err) }()

	normalizeSchedules(p)
	if err = p.Validate(); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		existing, err := txProjects.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := requireProjectAccess(actor, existing); err != nil {
			return err
		}
		if !actor.IsAdmin() && p.ManagerID != existing.ManagerID {
			return fmt.Errorf("only admins may reassign project %s: %w", p.ID, domain.ErrPermissionDenied)
		}
		if err := checkProjectType(ctx, repository.NewSQLiteProjectTypeRepo(tx), p.ProjectType); err != nil {
			return err
		}
		if err := checkClient(ctx, repository.NewSQLiteClientRepo(tx), p.ClientID); err != nil {
			return err
		}
		if err := checkSchedules(ctx, repository.NewSQLiteMilestoneRepo(tx), p); err != nil {
			return err
		}
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = s.nowUTC()
		return txProjects.Update(ctx, p)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return nil
}

// Delete removes the project and its weekly reports together.
func (s *projectService) Delete(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"project_id": id, "actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "delete-project", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := requireProjectAccess(actor, p); err != nil {
			return err
		}
		n, err := repository.NewSQLiteReportRepo(tx).DeleteByProject(ctx, id)
		if err != nil {
			return err
		}
		fields["reports_deleted"] = n
		return txProjects.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func normalizeSchedules(p *domain.Project) {
	p.StartDate = domain.DateOf(p.StartDate)
	p.EstimatedEndDate = domain.DateOf(p.EstimatedEndDate)
	for i := range p.Milestones {
		pm := &p.Milestones[i]
		if pm.ID == "" {
			pm.ID = uuid.New().String()
		}
		pm.StartDate = domain.DateOf(pm.StartDate)
		pm.EndDate = domain.DateOf(pm.EndDate)
	}
}

func checkProjectType(ctx context.Context, types repository.ProjectTypeRepo, id string) error {
	if _, err := types.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			var errs domain.ValidationErrors
			errs.Add("projectType", fmt.Sprintf("unknown project type %q", id))
			return errs
		}
		return err
	}
	return nil
}
