package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// projectSnapshot is everything the progress core needs for one project,
// read inside a single transaction.
type projectSnapshot struct {
	project    *domain.Project
	client     *domain.Client
	milestones []*domain.Milestone
	reports    []*domain.WeeklyReport
}

func loadSnapshot(ctx context.Context, tx db.DBTX, projectID string) (projectSnapshot, error) {
	var snap projectSnapshot
	p, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
	if err != nil {
		return snap, err
	}
	ms, err := repository.NewSQLiteMilestoneRepo(tx).ListByProjectType(ctx, p.ProjectType)
	if err != nil {
		return snap, fmt.Errorf("resolving milestones for %s: %w", p.ProjectType, err)
	}
	reports, err := repository.NewSQLiteReportRepo(tx).ListByProject(ctx, p.ID)
	if err != nil {
		return snap, err
	}
	client, err := repository.NewSQLiteClientRepo(tx).GetByID(ctx, p.ClientID)
	if err != nil && !isNotFound(err) {
		return snap, err
	}
	return projectSnapshot{project: p, client: client, milestones: ms, reports: reports}, nil
}

// knownSubMilestones indexes every sub-milestone id of the templates.
func knownSubMilestones(milestones []*domain.Milestone) (map[string]bool, int) {
	known := make(map[string]bool)
	total := 0
	for _, m := range milestones {
		for _, sm := range m.SubMilestones {
			known[sm.ID] = true
			total++
		}
	}
	return known, total
}

// checkSchedules verifies each scheduled milestone is a template of the
// project's type.
func checkSchedules(ctx context.Context, milestones repository.MilestoneRepo, p *domain.Project) error {
	if len(p.Milestones) == 0 {
		return nil
	}
	templates, err := milestones.ListByProjectType(ctx, p.ProjectType)
	if err != nil {
		return err
	}
	allowed := make(map[string]bool, len(templates))
	for _, m := range templates {
		allowed[m.ID] = true
	}
	var errs domain.ValidationErrors
	for i, pm := range p.Milestones {
		if !allowed[pm.MilestoneID] {
			errs.Add(fmt.Sprintf("milestones[%d].milestoneId", i),
				fmt.Sprintf("milestone %q is not a template of project type %q", pm.MilestoneID, p.ProjectType))
		}
	}
	return errs.OrNil()
}
