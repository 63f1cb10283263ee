package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneRepo_CreateAndGet_PreservesSubOrder(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	pt := testutil.NewTestProjectType("Web")
	require.NoError(t, r.types.Create(ctx, pt))

	m := testutil.NewTestMilestone("Launch", pt.ID, testutil.WithSubs("z", "a", "m"))
	require.NoError(t, r.milestones.Create(ctx, m))

	got, err := r.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Name)
	assert.Equal(t, []string{pt.ID}, got.ProjectTypes)
	assert.Equal(t, []string{"z", "a", "m"}, got.SubMilestoneIDs(), "sub-milestone order is persisted")
}

func TestMilestoneRepo_ListByProjectType(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	web := testutil.NewTestProjectType("Web")
	data := testutil.NewTestProjectType("Data")
	require.NoError(t, r.types.Create(ctx, web))
	require.NoError(t, r.types.Create(ctx, data))

	shared := testutil.NewTestMilestone("Kickoff", web.ID, testutil.WithProjectTypes(web.ID, data.ID))
	webOnly := testutil.NewTestMilestone("Deploy", web.ID)
	dataOnly := testutil.NewTestMilestone("Model", data.ID)
	for _, m := range []*domain.Milestone{shared, webOnly, dataOnly} {
		require.NoError(t, r.milestones.Create(ctx, m))
	}

	list, err := r.milestones.ListByProjectType(ctx, web.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Deploy", list[0].Name, "ordered by name")
	assert.Equal(t, "Kickoff", list[1].Name)
	assert.ElementsMatch(t, []string{web.ID, data.ID}, list[1].ProjectTypes)
	assert.Len(t, list[1].SubMilestones, 1)

	none, err := r.milestones.ListByProjectType(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := r.milestones.CountByProjectType(ctx, data.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMilestoneRepo_UpdateReplacesChildren(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	pt := testutil.NewTestProjectType("Web")
	require.NoError(t, r.types.Create(ctx, pt))
	m := testutil.NewTestMilestone("Build", pt.ID, testutil.WithSubs("a", "b"))
	require.NoError(t, r.milestones.Create(ctx, m))

	m.Name = "Build & test"
	m.SubMilestones = []domain.SubMilestone{{ID: "b", Name: "Renamed"}, {ID: "c", Name: "New"}}
	require.NoError(t, r.milestones.Update(ctx, m))

	got, err := r.milestones.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Build & test", got.Name)
	assert.Equal(t, []string{"b", "c"}, got.SubMilestoneIDs())
	assert.Equal(t, "Renamed", got.SubMilestones[0].Name)
}

func TestMilestoneRepo_DeleteAndNotFound(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	pt := testutil.NewTestProjectType("Web")
	require.NoError(t, r.types.Create(ctx, pt))
	m := testutil.NewTestMilestone("Temp", pt.ID)
	require.NoError(t, r.milestones.Create(ctx, m))

	require.NoError(t, r.milestones.Delete(ctx, m.ID))
	_, err := r.milestones.GetByID(ctx, m.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(r.milestones.Delete(ctx, m.ID), domain.ErrNotFound))
}
