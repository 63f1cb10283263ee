package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type milestoneService struct {
	milestones repository.MilestoneRepo
	uow        db.UnitOfWork
	deps
}

func NewMilestoneService(milestones repository.MilestoneRepo, uow db.UnitOfWork, opts ...Option) MilestoneService {
	return &milestoneService{milestones: milestones, uow: uow, deps: newDeps(opts)}
}

func (s *milestoneService) List(ctx context.Context) ([]*domain.Milestone, error) {
	return s.milestones.List(ctx)
}

func (s *milestoneService) Get(ctx context.Context, id string) (*domain.Milestone, error) {
	return s.milestones.GetByID(ctx, id)
}

// Resolve never fails on an unknown type; it simply matches nothing.
func (s *milestoneService) Resolve(ctx context.Context, projectTypeID string) ([]*domain.Milestone, error) {
	ms, err := s.milestones.ListByProjectType(ctx, projectTypeID)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		ms = []*domain.Milestone{}
	}
	return ms, nil
}

func (s *milestoneService) Create(ctx context.Context, actor domain.Actor, m *domain.Milestone) (err error) {
	startedAt := s.now()
	fields := map[string]any{"name": m.Name}
	defer func() { observe(ctx, s.observer, "create-milestone", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	assignSubMilestoneIDs(m)
	if err = m.Validate(); err != nil {
		return err
	}
	now := s.nowUTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	fields["milestone_id"] = m.ID
	fields["sub_milestones"] = len(m.SubMilestones)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := checkProjectTypes(ctx, repository.NewSQLiteProjectTypeRepo(tx), m.ProjectTypes); err != nil {
			return err
		}
		return repository.NewSQLiteMilestoneRepo(tx).Create(ctx, m)
	})
}

// Update replaces the template's links and sub-milestones. Reports keep the
// ids they already reference.
func (s *milestoneService) Update(ctx context.Context, actor domain.Actor, m *domain.Milestone) (err error) {
	startedAt := s.now()
	fields := map[string]any{"milestone_id": m.ID}
	defer func() { observe(ctx, s.observer, "update-milestone", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	assignSubMilestoneIDs(m)
	if err = m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = s.nowUTC()

	var projectIDs []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		existing, err := txMilestones.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		m.CreatedAt = existing.CreatedAt
		if err := checkProjectTypes(ctx, repository.NewSQLiteProjectTypeRepo(tx), m.ProjectTypes); err != nil {
			return err
		}
		projects, err := repository.NewSQLiteProjectRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if m.AppliesTo(p.ProjectType) || existing.AppliesTo(p.ProjectType) {
				projectIDs = append(projectIDs, p.ID)
			}
		}
		return txMilestones.Update(ctx, m)
	})
	if err != nil {
		return err
	}
	for _, id := range projectIDs {
		s.invalidate(ctx, id)
	}
	return nil
}

// Delete refuses while any project schedules the template. Projects of a
// matching type still list it in their general report, so their cached
// reports are dropped.
func (s *milestoneService) Delete(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := s.now()
	fields := map[string]any{"milestone_id": id}
	defer func() { observe(ctx, s.observer, "delete-milestone", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return err
	}
	var projectIDs []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		txProjects := repository.NewSQLiteProjectRepo(tx)
		existing, err := txMilestones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := txProjects.CountScheduling(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			var errs domain.ValidationErrors
			errs.Add("id", fmt.Sprintf("milestone is scheduled by %d projects", n))
			return errs
		}
		projects, err := txProjects.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if existing.AppliesTo(p.ProjectType) {
				projectIDs = append(projectIDs, p.ID)
			}
		}
		return txMilestones.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	fields["projects_invalidated"] = len(projectIDs)
	for _, pid := range projectIDs {
		s.invalidate(ctx, pid)
	}
	return nil
}

func assignSubMilestoneIDs(m *domain.Milestone) {
	for i := range m.SubMilestones {
		if m.SubMilestones[i].ID == "" {
			m.SubMilestones[i].ID = uuid.New().String()
		}
	}
}

func checkProjectTypes(ctx context.Context, types repository.ProjectTypeRepo, ids []string) error {
	var errs domain.ValidationErrors
	for i, id := range ids {
		if _, err := types.GetByID(ctx, id); err != nil {
			if isNotFound(err) {
				errs.Add(fmt.Sprintf("projectTypes[%d]", i), fmt.Sprintf("unknown project type %q", id))
				continue
			}
			return err
		}
	}
	return errs.OrNil()
}
