package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/cadence/internal/domain"
)

func TestFormatProjectList(t *testing.T) {
	now := day(2, 3)
	projects := []*domain.Project{
		{ID: "0123456789", Name: "Clinic Portal", ManagerID: "manager-1", Status: domain.ProjectOnTrack, StartDate: day(1, 6), EstimatedEndDate: day(2, 5)},
		{ID: "abcdefghij", Name: "Bank App", ManagerID: "manager-2", Status: domain.ProjectCompleted, StartDate: day(1, 6), EstimatedEndDate: day(1, 31)},
	}

	out := FormatProjectList(projects, now)

	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "Clinic Portal")
	assert.Contains(t, out, "In 2d")
	assert.Contains(t, out, "✔ Completed")
	assert.NotContains(t, out, "3d ago")
}

func TestFormatProjectList_Empty(t *testing.T) {
	assert.Contains(t, FormatProjectList(nil, time.Now()), "No projects.")
}

func TestFormatProject_Schedule(t *testing.T) {
	p := &domain.Project{
		ID: "p1", Name: "Clinic Portal", ManagerID: "manager-1", ProjectType: "web",
		Status: domain.ProjectOnTrack, StartDate: day(1, 6), EstimatedEndDate: day(3, 17),
		Milestones: []domain.ProjectMilestone{
			{MilestoneID: "m1", StartDate: day(1, 6), EndDate: day(1, 20)},
			{MilestoneID: "m-unknown", StartDate: day(1, 21), EndDate: day(1, 21)},
		},
	}

	out := FormatProject(p, map[string]string{"m1": "Discovery"})

	assert.Contains(t, out, "Discovery")
	assert.Contains(t, out, "m-unknown")
	assert.Contains(t, out, "15")
}
