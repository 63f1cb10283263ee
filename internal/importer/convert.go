package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
)

// Plan is a converted document in dependency order, ready to be written.
type Plan struct {
	Clients      []*domain.Client
	ProjectTypes []*domain.ProjectType
	Milestones   []*domain.Milestone
	Projects     []*domain.Project
	Reports      []*domain.WeeklyReport
}

// Convert turns a validated Document into domain objects with fresh ids.
// Call ValidateDocument first; Convert assumes the document is valid.
//
// Completed sub-milestones accumulate across a project's weeks, so a later
// report always carries everything an earlier one did.
func Convert(doc *Document, now time.Time) (*Plan, error) {
	now = now.UTC()
	plan := &Plan{}

	clientIDs := make(map[string]string, len(doc.Clients))
	for _, ci := range doc.Clients {
		c := &domain.Client{ID: uuid.New().String(), Name: ci.Name, Email: ci.Email, CreatedAt: now, UpdatedAt: now}
		clientIDs[ci.Ref] = c.ID
		plan.Clients = append(plan.Clients, c)
	}

	typeIDs := make(map[string]string, len(doc.ProjectTypes))
	for _, pt := range doc.ProjectTypes {
		t := &domain.ProjectType{ID: uuid.New().String(), Name: pt.Name, CreatedAt: now, UpdatedAt: now}
		typeIDs[pt.Ref] = t.ID
		plan.ProjectTypes = append(plan.ProjectTypes, t)
	}

	milestoneIDs := make(map[string]string, len(doc.Milestones))
	subIDs := make(map[string]string)
	templatesByType := make(map[string][]*domain.Milestone)
	for _, mi := range doc.Milestones {
		m := &domain.Milestone{
			ID:          uuid.New().String(),
			Name:        mi.Name,
			Description: mi.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		for _, ref := range mi.ProjectTypes {
			m.ProjectTypes = append(m.ProjectTypes, typeIDs[ref])
		}
		for _, smi := range mi.SubMilestones {
			id := uuid.New().String()
			subIDs[smi.Ref] = id
			m.SubMilestones = append(m.SubMilestones, domain.SubMilestone{ID: id, Name: smi.Name})
		}
		milestoneIDs[mi.Ref] = m.ID
		for _, ptID := range m.ProjectTypes {
			templatesByType[ptID] = append(templatesByType[ptID], m)
		}
		plan.Milestones = append(plan.Milestones, m)
	}

	projects := make(map[string]*domain.Project, len(doc.Projects))
	for _, pi := range doc.Projects {
		start, err := domain.ParseDate(pi.StartDate)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", pi.Ref, err)
		}
		end, err := domain.ParseDate(pi.EstimatedEndDate)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", pi.Ref, err)
		}
		status := domain.ProjectStatus(pi.Status)
		if status == "" {
			status = domain.ProjectOnTrack
		}
		p := &domain.Project{
			ID:               uuid.New().String(),
			Name:             pi.Name,
			ClientID:         clientIDs[pi.Client],
			ManagerID:        pi.Manager,
			ProjectType:      typeIDs[pi.ProjectType],
			StartDate:        start,
			EstimatedEndDate: end,
			Status:           status,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, si := range pi.Milestones {
			ms, err := domain.ParseDate(si.StartDate)
			if err != nil {
				return nil, fmt.Errorf("project %s milestone %s: %w", pi.Ref, si.Milestone, err)
			}
			me, err := domain.ParseDate(si.EndDate)
			if err != nil {
				return nil, fmt.Errorf("project %s milestone %s: %w", pi.Ref, si.Milestone, err)
			}
			p.Milestones = append(p.Milestones, domain.ProjectMilestone{
				ID:          uuid.New().String(),
				MilestoneID: milestoneIDs[si.Milestone],
				StartDate:   ms,
				EndDate:     me,
			})
		}
		projects[pi.Ref] = p
		plan.Projects = append(plan.Projects, p)
	}

	byProject := make(map[string][]ReportImport)
	var order []string
	for _, ri := range doc.Reports {
		if _, seen := byProject[ri.Project]; !seen {
			order = append(order, ri.Project)
		}
		byProject[ri.Project] = append(byProject[ri.Project], ri)
	}
	for _, ref := range order {
		p := projects[ref]
		total := 0
		for _, m := range templatesByType[p.ProjectType] {
			total += len(m.SubMilestones)
		}

		reports := byProject[ref]
		sort.SliceStable(reports, func(i, j int) bool { return reports[i].Week < reports[j].Week })
		completed := progress.NewCompletedSet()
		for _, ri := range reports {
			for _, subRef := range ri.Completed {
				completed.Add(subIDs[subRef])
			}
			r := &domain.WeeklyReport{
				ID:                     uuid.New().String(),
				ProjectID:              p.ID,
				Week:                   ri.Week,
				Summary:                ri.Summary,
				Status:                 domain.ReportStatus(ri.Status),
				CompletedSubMilestones: completed.Sorted(),
				CreatedAt:              now,
				UpdatedAt:              now,
			}
			if r.Status == "" {
				r.Status = domain.ReportOnTrack
			}
			if ri.Progress != nil {
				r.Progress = *ri.Progress
			} else {
				r.Progress = progress.Percent(len(completed), total)
			}
			if ri.Submitted != "" {
				at, err := time.Parse(time.RFC3339, ri.Submitted)
				if err != nil {
					return nil, fmt.Errorf("report %s/%d: parsing submitted: %w", ref, ri.Week, err)
				}
				r.CreatedAt = at.UTC()
				r.UpdatedAt = at.UTC()
			}
			plan.Reports = append(plan.Reports, r)
		}
	}

	return plan, nil
}
