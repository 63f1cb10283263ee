package progress

import (
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeProgress(t *testing.T) {
	tl := TimeProgress(dayN(0), dayN(100), dayN(25))
	assert.Equal(t, 25, tl.ElapsedPct)
	assert.Equal(t, 75, tl.DaysRemaining)
	assert.Equal(t, 100, tl.TotalDays)

	before := TimeProgress(dayN(10), dayN(20), dayN(0))
	assert.Equal(t, 0, before.ElapsedPct)

	after := TimeProgress(dayN(0), dayN(10), dayN(30))
	assert.Equal(t, 100, after.ElapsedPct)
	assert.Equal(t, 0, after.DaysRemaining)

	zero := TimeProgress(dayN(5), dayN(5), dayN(5))
	assert.Equal(t, 0, zero.ElapsedPct)
}

func TestSummarize(t *testing.T) {
	m1 := milestone("m1", "a", "b")
	m2 := milestone("m2", "c")
	m3 := milestone("m3", "d")
	project := &domain.Project{
		ID:               "p1",
		StartDate:        dayN(0),
		EstimatedEndDate: dayN(70),
		Milestones: []domain.ProjectMilestone{
			{MilestoneID: "m1", StartDate: dayN(0), EndDate: dayN(10)},
			{MilestoneID: "m2", StartDate: dayN(10), EndDate: dayN(30)},
		},
	}
	// "b" is first reported in week 2, created on day 14, after m1's end.
	reports := []*domain.WeeklyReport{report(1, 30, "a"), report(2, 60, "a", "b")}

	ps := Summarize(project, reports, []*domain.Milestone{m1, m2, m3}, dayN(28))
	assert.Equal(t, 60, ps.OverallProgress)
	require.Len(t, ps.PerMilestone, 3)

	done := ps.PerMilestone[0]
	assert.True(t, done.AllComplete)
	require.NotNil(t, done.Badge)
	assert.Equal(t, BadgeLate, *done.Badge)
	assert.Nil(t, done.Live)

	open := ps.PerMilestone[1]
	assert.False(t, open.AllComplete)
	assert.Nil(t, open.Badge)
	require.NotNil(t, open.Live)
	assert.Equal(t, StateAtRisk, open.Live.State)

	unscheduled := ps.PerMilestone[2]
	assert.False(t, unscheduled.Scheduled)
	assert.Nil(t, unscheduled.Live)

	assert.Len(t, ps.Chart.Points, 2)
	assert.Equal(t, 40, ps.Timeline.ElapsedPct)
}
