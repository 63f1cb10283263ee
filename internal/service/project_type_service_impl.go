package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type projectTypeService struct {
	types repository.ProjectTypeRepo
	uow   db.UnitOfWork
	deps
}

func NewProjectTypeService(types repository.ProjectTypeRepo, uow db.UnitOfWork, opts ...Option) ProjectTypeService {
	return &projectTypeService{types: types, uow: uow, deps: newDeps(opts)}
}

func (s *projectTypeService) List(ctx context.Context) ([]*domain.ProjectType, error) {
	return s.types.List(ctx)
}

func (s *projectTypeService) Get(ctx context.Context, id string) (*domain.ProjectType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *projectTypeService) Create(ctx context.Context, actor domain.Actor, t *domain.ProjectType) (err error) {
	startedAt := s.now()
	fields := map[string]any{"name": t.Name}
	defer func() { observe(ctx, s.observer, "create-project-type", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	if err = t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := s.nowUTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	fields["project_type_id"] = t.ID
	return s.types.Create(ctx, t)
}

func (s *projectTypeService) Update(ctx context.Context, actor domain.Actor, t *domain.ProjectType) (err error) {
	startedAt := s.now()
	fields := map[string]any{"project_type_id": t.ID}
	defer func() { observe(ctx, s.observer, "update-project-type", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	if err = t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = s.nowUTC()
	return s.types.Update(ctx, t)
}

// Delete refuses while projects or templates still reference the type.
func (s *projectTypeService) Delete(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"project_type_id": id}
	defer func() { observe(ctx, s.observer, "delete-project-type", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTypes := repository.NewSQLiteProjectTypeRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)

		if _, err := txTypes.GetByID(ctx, id); err != nil {
			return err
		}
		projects, err := txProjects.CountByProjectType(ctx, id)
		if err != nil {
			return err
		}
		templates, err := txMilestones.CountByProjectType(ctx, id)
		if err != nil {
			return err
		}
		if projects > 0 || templates > 0 {
			var errs domain.ValidationErrors
			errs.Add("id", fmt.Sprintf("project type is used by %d projects and %d milestones", projects, templates))
			return errs
		}
		return txTypes.Delete(ctx, id)
	})
}
