package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func dayN(n int) time.Time { return start.AddDate(0, 0, n) }

func fixture() (*domain.Project, []*domain.Milestone) {
	project := &domain.Project{
		ID:               "p1",
		Name:             "Clinic fit-out",
		ClientID:         "c1",
		Status:           domain.ProjectOnTrack,
		StartDate:        dayN(0),
		EstimatedEndDate: dayN(70),
		Milestones: []domain.ProjectMilestone{
			{MilestoneID: "m1", StartDate: dayN(0), EndDate: dayN(20)},
			{MilestoneID: "m2", StartDate: dayN(21), EndDate: dayN(70)},
		},
	}
	milestones := []*domain.Milestone{
		{ID: "m1", Name: "Design", Description: "Plans", SubMilestones: []domain.SubMilestone{{ID: "a", Name: "Sketch"}, {ID: "b", Name: "Approve"}}},
		{ID: "m2", Name: "Build", Description: "Works", SubMilestones: []domain.SubMilestone{{ID: "c", Name: "Frame"}}},
	}
	return project, milestones
}

func weekly(week, progress int, done ...string) *domain.WeeklyReport {
	return &domain.WeeklyReport{
		ID:                     fmt.Sprintf("r%d", week),
		ProjectID:              "p1",
		Week:                   week,
		Progress:               progress,
		Summary:                "summary",
		Status:                 domain.ReportOnTrack,
		CompletedSubMilestones: done,
		CreatedAt:              dayN(week * 7),
	}
}

func TestSynthesizeGeneral(t *testing.T) {
	project, milestones := fixture()
	reports := []*domain.WeeklyReport{weekly(2, 45, "a", "b"), weekly(1, 20, "a")}

	client := &domain.Client{ID: "c1", Name: "Northside Clinic", Email: "ops@northside.example"}

	v := SynthesizeGeneral(project, client, milestones, reports, dayN(30))

	assert.Equal(t, domain.GeneralReportWeek, v.Week)
	assert.Equal(t, "c1", v.ClientID)
	assert.Equal(t, "Northside Clinic", v.ClientName)
	assert.Equal(t, 45, v.OverallProgress)
	assert.Equal(t, 2, v.ReportsSubmitted)
	assert.Equal(t, 2, v.CompletedSubMilestones)
	assert.Equal(t, 3, v.TotalSubMilestones)
	assert.True(t, v.HasReports)

	require.Len(t, v.Log, 2)
	assert.Equal(t, 2, v.Log[0].Week, "log is latest first")
	assert.Equal(t, 1, v.Log[1].Week)

	require.Len(t, v.Milestones, 2)
	design := v.Milestones[0]
	assert.True(t, design.AllComplete)
	require.NotNil(t, design.Badge)
	assert.Equal(t, progress.BadgeOnTime, *design.Badge, "b completed on day 14, before day 20")
	assert.Nil(t, design.Live)
	require.NotNil(t, design.Subs[1].CompletedAt)
	assert.Equal(t, dayN(14), *design.Subs[1].CompletedAt)

	build := v.Milestones[1]
	assert.False(t, build.AllComplete)
	assert.Nil(t, build.Badge)
	require.NotNil(t, build.Live)
	assert.Equal(t, progress.StateOnTime, build.Live.State)
	require.NotNil(t, build.Schedule)
	assert.Equal(t, dayN(70), build.Schedule.End)

	require.Len(t, v.Chart.Points, 2)
	assert.Equal(t, "R1", v.Chart.Points[0].Label)
}

func TestSynthesizeGeneral_NoReports(t *testing.T) {
	project, milestones := fixture()
	v := SynthesizeGeneral(project, nil, milestones, nil, dayN(1))

	assert.False(t, v.HasReports)
	assert.Equal(t, "c1", v.ClientID)
	assert.Empty(t, v.ClientName, "missing client leaves the name blank")
	assert.Equal(t, 0, v.OverallProgress)
	assert.Empty(t, v.Log)
	assert.Empty(t, v.Chart.Points)
	for _, m := range v.Milestones {
		assert.False(t, m.AllComplete)
		assert.Nil(t, m.Badge)
	}
}

func TestSynthesizeGeneral_UnscheduledMilestone(t *testing.T) {
	project, milestones := fixture()
	project.Milestones = project.Milestones[:1]

	v := SynthesizeGeneral(project, nil, milestones, []*domain.WeeklyReport{weekly(1, 10, "c")}, dayN(5))
	build := v.Milestones[1]
	assert.True(t, build.AllComplete)
	assert.Nil(t, build.Schedule)
	assert.Nil(t, build.Badge, "no badge without a schedule")
	assert.Nil(t, build.Live)
}

func TestSynthesizeWeekly_Saved(t *testing.T) {
	project, milestones := fixture()
	r := weekly(2, 67, "a", "b")
	prev := progress.NewCompletedSet("a")

	v := SynthesizeWeekly(project, milestones, r, 2, prev, dayN(15))

	assert.True(t, v.Saved)
	assert.Equal(t, 2, v.Week)
	assert.Equal(t, 67, v.Progress)
	require.Len(t, v.Milestones, 2)

	subs := v.Milestones[0].Subs
	assert.True(t, subs[0].Checked)
	assert.True(t, subs[0].Locked)
	assert.True(t, subs[1].Checked)
	assert.False(t, subs[1].Locked)
	assert.True(t, v.Milestones[0].AllComplete)
	assert.False(t, v.Milestones[1].Subs[0].Checked)
	assert.False(t, v.AllComplete)
}

func TestSynthesizeWeekly_Placeholder(t *testing.T) {
	project, milestones := fixture()
	v := SynthesizeWeekly(project, milestones, nil, 5, nil, dayN(35))

	assert.False(t, v.Saved)
	assert.Equal(t, 5, v.Week)
	assert.Equal(t, 0, v.Progress)
	assert.Equal(t, domain.PlaceholderSummary, v.Summary)
	assert.Equal(t, domain.ReportOnTrack, v.Status)
	for _, m := range v.Milestones {
		for _, s := range m.Subs {
			assert.False(t, s.Checked)
			assert.False(t, s.Locked)
		}
	}
}
