package progress

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// MilestoneStatus is the per-milestone entry of a ProgressSummary. Badge is
// set only for completed milestones, Live only for open ones, and both require
// the project to schedule the milestone.
type MilestoneStatus struct {
	MilestoneID   string      `json:"milestoneId"`
	Name          string      `json:"name"`
	AllComplete   bool        `json:"allComplete"`
	CompletedSubs int         `json:"completedSubs"`
	TotalSubs     int         `json:"totalSubs"`
	Percent       int         `json:"percent"`
	Scheduled     bool        `json:"scheduled"`
	Start         time.Time   `json:"start"`
	End           time.Time   `json:"end"`
	Badge         *Badge      `json:"badge,omitempty"`
	Live          *Evaluation `json:"live,omitempty"`
}

type ProgressSummary struct {
	ProjectID          string            `json:"projectId"`
	OverallProgress    int               `json:"overallProgress"`
	CompletedCount     int               `json:"completedCount"`
	TotalSubMilestones int               `json:"totalSubMilestones"`
	PerMilestone       []MilestoneStatus `json:"perMilestone"`
	Chart              Series            `json:"chart"`
	Timeline           Timeline          `json:"timeline"`
	Aggregate          Summary           `json:"-"`
	Warnings           []string          `json:"warnings,omitempty"`
}

// Summarize composes aggregation, status evaluation and the chart series for
// one project at the reference time now.
func Summarize(project *domain.Project, reports []*domain.WeeklyReport, milestones []*domain.Milestone, now time.Time) ProgressSummary {
	agg := Aggregate(reports, milestones)
	ps := ProgressSummary{
		ProjectID:          project.ID,
		OverallProgress:    agg.OverallProgress,
		CompletedCount:     agg.CompletedCount,
		TotalSubMilestones: agg.TotalSubMilestones,
		PerMilestone:       make([]MilestoneStatus, 0, len(milestones)),
		Chart:              ChartSeries(project, agg.Reports),
		Timeline:           TimeProgress(project.StartDate, project.EstimatedEndDate, now),
		Aggregate:          agg,
	}
	ps.Warnings = append(ps.Warnings, ps.Chart.Warnings...)

	for _, m := range milestones {
		if m == nil {
			continue
		}
		mp, _ := agg.Milestone(m.ID)
		st := MilestoneStatus{
			MilestoneID:   m.ID,
			Name:          m.Name,
			AllComplete:   mp.AllComplete,
			CompletedSubs: mp.CompletedSubs,
			TotalSubs:     mp.TotalSubs,
			Percent:       mp.Percent,
		}

		sched, ok := project.ScheduleFor(m.ID)
		if ok {
			st.Scheduled = true
			st.Start, st.End = sched.StartDate, sched.EndDate
			if st.AllComplete {
				if badge, ok := EvaluateCompletion(m.SubMilestoneIDs(), agg.FirstCompletion, sched.EndDate); ok {
					st.Badge = &badge
				}
			} else {
				ev, err := EvaluateMilestoneStatus(sched.StartDate, sched.EndDate, now)
				if err != nil {
					ps.Warnings = append(ps.Warnings, fmt.Sprintf("milestone %q: %v", m.Name, err))
				} else {
					st.Live = &ev
				}
			}
		}
		ps.PerMilestone = append(ps.PerMilestone, st)
	}
	return ps
}
