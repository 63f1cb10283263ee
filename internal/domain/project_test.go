package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func validProject() *Project {
	return &Project{
		ID:               "p1",
		Name:             "Warehouse rollout",
		ClientID:         "c1",
		ManagerID:        "u1",
		ProjectType:      "pt1",
		StartDate:        day("2025-01-01"),
		EstimatedEndDate: day("2025-03-31"),
		Status:           ProjectOnTrack,
		Milestones: []ProjectMilestone{
			{ID: "pm1", MilestoneID: "m1", StartDate: day("2025-01-01"), EndDate: day("2025-01-31")},
			{ID: "pm2", MilestoneID: "m2", StartDate: day("2025-02-01"), EndDate: day("2025-03-31")},
		},
	}
}

func TestProjectValidate_OK(t *testing.T) {
	require.NoError(t, validProject().Validate())
}

func TestProjectValidate_MissingFields(t *testing.T) {
	p := validProject()
	p.Name = "  "
	p.ClientID = ""
	p.Status = "Unknown"

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "clientId")
	assert.Contains(t, err.Error(), "status")
}

func TestProjectValidate_StartAfterEnd(t *testing.T) {
	p := validProject()
	p.StartDate = day("2025-04-01")
	p.Milestones = nil

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSchedule))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestProjectValidate_MilestoneOutsideWindow(t *testing.T) {
	p := validProject()
	p.Milestones[1].EndDate = day("2025-04-15")

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSchedule))
	assert.Contains(t, err.Error(), "milestones[1]")
}

func TestProjectValidate_MilestoneInverted(t *testing.T) {
	p := validProject()
	p.Milestones[0].StartDate = day("2025-01-20")
	p.Milestones[0].EndDate = day("2025-01-10")

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSchedule))
}

func TestProjectValidate_SingleDayMilestone(t *testing.T) {
	p := validProject()
	p.Milestones[0].EndDate = p.Milestones[0].StartDate
	require.NoError(t, p.Validate())
}

func TestProjectValidate_DuplicateMilestone(t *testing.T) {
	p := validProject()
	p.Milestones[1].MilestoneID = "m1"

	err := p.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "more than once")
}

func TestScheduleFor(t *testing.T) {
	p := validProject()

	pm, ok := p.ScheduleFor("m2")
	require.True(t, ok)
	assert.Equal(t, day("2025-02-01"), pm.StartDate)

	_, ok = p.ScheduleFor("missing")
	assert.False(t, ok)
}
