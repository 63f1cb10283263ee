package report

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
)

type WeeklySubView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
	// Locked marks a sub-milestone completed in an earlier week.
	Locked bool `json:"locked"`
}

type WeeklyMilestoneView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CheckedSubs int             `json:"checkedSubs"`
	TotalSubs   int             `json:"totalSubs"`
	AllComplete bool            `json:"allComplete"`
	Subs        []WeeklySubView `json:"subs"`
}

type WeeklyReportView struct {
	ProjectID     string                `json:"projectId"`
	ProjectName   string                `json:"projectName"`
	ProjectStatus domain.ProjectStatus  `json:"projectStatus"`
	ReportID      string                `json:"reportId"`
	Week          int                   `json:"week"`
	Progress      int                   `json:"progress"`
	Summary       string                `json:"summary"`
	Status        domain.ReportStatus   `json:"status"`
	Saved         bool                  `json:"saved"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	Milestones    []WeeklyMilestoneView `json:"milestones"`
	// AllComplete is true when every sub-milestone across templates is checked.
	AllComplete bool `json:"allComplete"`
}

// SynthesizeWeekly renders one week of a project. A nil report yields the
// unsaved placeholder for that week.
func SynthesizeWeekly(project *domain.Project, milestones []*domain.Milestone, r *domain.WeeklyReport, week int, previouslyCompleted progress.CompletedSet, now time.Time) WeeklyReportView {
	saved := r != nil
	if r == nil {
		r = domain.NewPlaceholderReport(project.ID, week, now)
	}
	if previouslyCompleted == nil {
		previouslyCompleted = progress.NewCompletedSet()
	}
	checked := progress.NewCompletedSet(r.CompletedSubMilestones...)

	view := WeeklyReportView{
		ProjectID:     project.ID,
		ProjectName:   project.Name,
		ProjectStatus: project.Status,
		ReportID:      r.ID,
		Week:          r.Week,
		Progress:      r.Progress,
		Summary:       r.Summary,
		Status:        r.Status,
		Saved:         saved,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Milestones:    make([]WeeklyMilestoneView, 0, len(milestones)),
	}

	total, done := 0, 0
	for _, m := range milestones {
		if m == nil {
			continue
		}
		mv := WeeklyMilestoneView{ID: m.ID, Name: m.Name, TotalSubs: len(m.SubMilestones)}
		for _, sm := range m.SubMilestones {
			sv := WeeklySubView{
				ID:      sm.ID,
				Name:    sm.Name,
				Checked: checked.Has(sm.ID),
				Locked:  previouslyCompleted.Has(sm.ID),
			}
			if sv.Checked {
				mv.CheckedSubs++
			}
			mv.Subs = append(mv.Subs, sv)
		}
		mv.AllComplete = mv.TotalSubs > 0 && mv.CheckedSubs == mv.TotalSubs
		total += mv.TotalSubs
		done += mv.CheckedSubs
		view.Milestones = append(view.Milestones, mv)
	}
	view.AllComplete = total > 0 && done == total
	return view
}
