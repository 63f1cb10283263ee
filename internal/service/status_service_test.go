package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
)

func TestStatusService_Dashboard(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	ctx := context.Background()

	done := testutil.NewTestProject("Archive", s.projectType.ID,
		testutil.WithManager(manager.ID), testutil.WithProjectStatus(domain.ProjectCompleted))
	theirs := testutil.NewTestProject("Elsewhere", s.projectType.ID,
		testutil.WithManager(stranger.ID), testutil.WithProjectStatus(domain.ProjectAtRisk))
	require.NoError(t, e.projects.Create(ctx, done))
	require.NoError(t, e.projects.Create(ctx, theirs))
	require.NoError(t, e.reports.Create(ctx, testutil.NewTestReport(s.project.ID, 1, testutil.WithProgress(10))))
	require.NoError(t, e.reports.Create(ctx, testutil.NewTestReport(s.project.ID, 3, testutil.WithProgress(25))))

	svc := NewStatusService(e.uow, e.options()...)

	all, err := svc.Dashboard(ctx, admin, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, 1, all.OnTrack)
	assert.Equal(t, 1, all.AtRisk)
	assert.Equal(t, 1, all.Completed)

	mine, err := svc.Dashboard(ctx, manager, fixedNow)
	require.NoError(t, err)
	require.Equal(t, 2, mine.Total)

	var clinic *app.ProjectStatusView
	for i, v := range mine.Projects {
		if v.ProjectID == s.project.ID {
			clinic = &mine.Projects[i]
		}
		if v.ProjectID == done.ID {
			assert.False(t, v.Behind, "completed projects are never behind")
		}
	}
	require.NotNil(t, clinic)
	assert.Equal(t, 25, clinic.OverallProgress)
	assert.Equal(t, 3, clinic.LatestWeek)
	// Jan 6 .. Mar 17 is 70 days; Feb 3 is day 28.
	assert.Equal(t, 40, clinic.TimeElapsedPct)
	assert.True(t, clinic.Behind)

	_, err = svc.Dashboard(ctx, domain.Actor{}, fixedNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStatusService_ManagerStats(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	ctx := context.Background()

	for _, st := range []domain.ProjectStatus{domain.ProjectCompleted, domain.ProjectOffTrack, domain.ProjectAtRisk} {
		p := testutil.NewTestProject(string(st), s.projectType.ID, testutil.WithManager(manager.ID), testutil.WithProjectStatus(st))
		require.NoError(t, e.projects.Create(ctx, p))
	}
	svc := NewStatusService(e.uow)

	stats, err := svc.ManagerStats(ctx, manager, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.InProgress, "On Track and Off Track")
	assert.Equal(t, 1, stats.AtRisk)
	assert.InDelta(t, 0.25, stats.CompletionRate, 1e-9)
	assert.InDelta(t, 1.25, stats.Rating, 1e-9)

	_, err = svc.ManagerStats(ctx, stranger, manager.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	empty, err := svc.ManagerStats(ctx, admin, "nobody")
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Rating)
}
