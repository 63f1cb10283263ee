package report

import (
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
)

type ScheduleView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type SubView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type MilestoneView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	AllComplete   bool                 `json:"allComplete"`
	CompletedSubs int                  `json:"completedSubs"`
	TotalSubs     int                  `json:"totalSubs"`
	Percent       int                  `json:"percent"`
	Badge         *progress.Badge      `json:"badge,omitempty"`
	Schedule      *ScheduleView        `json:"schedule,omitempty"`
	Live          *progress.Evaluation `json:"live,omitempty"`
	Subs          []SubView            `json:"subs"`
}

type LogEntry struct {
	Week      int                 `json:"week"`
	Summary   string              `json:"summary"`
	Status    domain.ReportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	CreatedAt time.Time           `json:"createdAt"`
}

// GeneralReportView is the consolidated pseudo-report (week 0) for a project.
type GeneralReportView struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	ClientID    string `json:"clientId"`
	// ClientName is empty when the client record is missing.
	ClientName             string               `json:"clientName"`
	ProjectStatus          domain.ProjectStatus `json:"projectStatus"`
	StartDate              time.Time            `json:"startDate"`
	EstimatedEndDate       time.Time            `json:"estimatedEndDate"`
	Week                   int                  `json:"week"`
	OverallProgress        int                  `json:"overallProgress"`
	ReportsSubmitted       int                  `json:"reportsSubmitted"`
	CompletedSubMilestones int                  `json:"completedSubMilestones"`
	TotalSubMilestones     int                  `json:"totalSubMilestones"`
	HasReports             bool                 `json:"hasReports"`
	Milestones             []MilestoneView      `json:"milestones"`
	// Log lists submitted reports latest week first.
	Log         []LogEntry        `json:"log"`
	Chart       progress.Series   `json:"chart"`
	Timeline    progress.Timeline `json:"timeline"`
	Warnings    []string          `json:"warnings,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// SynthesizeGeneral merges every weekly report of a project into the general
// report view.
func SynthesizeGeneral(project *domain.Project, client *domain.Client, milestones []*domain.Milestone, reports []*domain.WeeklyReport, now time.Time) GeneralReportView {
	ps := progress.Summarize(project, reports, milestones, now)
	agg := ps.Aggregate

	view := GeneralReportView{
		ProjectID:              project.ID,
		ProjectName:            project.Name,
		ClientID:               project.ClientID,
		ProjectStatus:          project.Status,
		StartDate:              project.StartDate,
		EstimatedEndDate:       project.EstimatedEndDate,
		Week:                   domain.GeneralReportWeek,
		OverallProgress:        ps.OverallProgress,
		ReportsSubmitted:       len(agg.Reports),
		CompletedSubMilestones: ps.CompletedCount,
		TotalSubMilestones:     ps.TotalSubMilestones,
		HasReports:             len(agg.Reports) > 0,
		Milestones:             make([]MilestoneView, 0, len(ps.PerMilestone)),
		Log:                    make([]LogEntry, 0, len(agg.Reports)),
		Chart:                  ps.Chart,
		Timeline:               ps.Timeline,
		Warnings:               ps.Warnings,
		GeneratedAt:            now,
	}

	if client != nil {
		view.ClientName = client.Name
	}

	byID := make(map[string]*domain.Milestone, len(milestones))
	for _, m := range milestones {
		if m != nil {
			byID[m.ID] = m
		}
	}

	for _, st := range ps.PerMilestone {
		m := byID[st.MilestoneID]
		mv := MilestoneView{
			ID:            m.ID,
			Name:          m.Name,
			Description:   m.Description,
			AllComplete:   st.AllComplete,
			CompletedSubs: st.CompletedSubs,
			TotalSubs:     st.TotalSubs,
			Percent:       st.Percent,
			Badge:         st.Badge,
			Live:          st.Live,
			Subs:          make([]SubView, 0, len(m.SubMilestones)),
		}
		if st.Scheduled {
			mv.Schedule = &ScheduleView{Start: st.Start, End: st.End}
		}
		for _, sm := range m.SubMilestones {
			sv := SubView{ID: sm.ID, Name: sm.Name, Completed: agg.Completed.Has(sm.ID)}
			if at, ok := agg.FirstCompletion[sm.ID]; ok {
				sv.CompletedAt = &at
			}
			mv.Subs = append(mv.Subs, sv)
		}
		view.Milestones = append(view.Milestones, mv)
	}

	for i := len(agg.Reports) - 1; i >= 0; i-- {
		r := agg.Reports[i]
		view.Log = append(view.Log, LogEntry{
			Week:      r.Week,
			Summary:   r.Summary,
			Status:    r.Status,
			Progress:  r.Progress,
			CreatedAt: r.CreatedAt,
		})
	}
	return view
}
