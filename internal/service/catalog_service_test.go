package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
)

func TestProjectTypeService_AdminOnlyWrites(t *testing.T) {
	e := setupEnv(t)
	svc := NewProjectTypeService(e.types, e.uow, e.options()...)
	ctx := context.Background()

	pt := &domain.ProjectType{Name: "Mobile"}
	assert.ErrorIs(t, svc.Create(ctx, manager, pt), domain.ErrPermissionDenied)

	require.NoError(t, svc.Create(ctx, admin, pt))
	assert.NotEmpty(t, pt.ID)
	assert.Equal(t, fixedNow, pt.CreatedAt)

	assert.ErrorIs(t, svc.Create(ctx, admin, &domain.ProjectType{Name: " "}), domain.ErrValidation)

	pt.Name = "Mobile App"
	require.NoError(t, svc.Update(ctx, admin, pt))
	got, err := svc.Get(ctx, pt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mobile App", got.Name)

	require.NoError(t, svc.Delete(ctx, admin, pt.ID))
	_, err = svc.Get(ctx, pt.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectTypeService_DeleteInUse(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	svc := NewProjectTypeService(e.types, e.uow)

	err := svc.Delete(context.Background(), admin, s.projectType.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "1 projects and 2 milestones")

	err = svc.Delete(context.Background(), admin, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMilestoneService_Resolve(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	svc := NewMilestoneService(e.milestones, e.uow)
	ctx := context.Background()

	other := testutil.NewTestProjectType("Other")
	require.NoError(t, e.types.Create(ctx, other))
	shared := testutil.NewTestMilestone("Acceptance", other.ID,
		testutil.WithProjectTypes(other.ID, s.projectType.ID), testutil.WithSubs("z"))
	require.NoError(t, e.milestones.Create(ctx, shared))

	got, err := svc.Resolve(ctx, s.projectType.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, m := range got {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Acceptance", "Build", "Discovery"}, names)

	got, err = svc.Resolve(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = svc.Resolve(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMilestoneService_Create(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	svc := NewMilestoneService(e.milestones, e.uow, e.options()...)
	ctx := context.Background()

	m := &domain.Milestone{
		Name:          "Launch",
		Description:   "Go live",
		ProjectTypes:  []string{s.projectType.ID},
		SubMilestones: []domain.SubMilestone{{Name: "DNS cutover"}, {Name: "Smoke test"}},
	}
	assert.ErrorIs(t, svc.Create(ctx, manager, m), domain.ErrPermissionDenied)
	require.NoError(t, svc.Create(ctx, admin, m))
	for _, sm := range m.SubMilestones {
		assert.NotEmpty(t, sm.ID, "sub-milestone ids are generated")
	}

	stored, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "DNS cutover", stored.SubMilestones[0].Name)

	orphan := &domain.Milestone{
		Name:          "Orphan",
		Description:   "no such type",
		ProjectTypes:  []string{"missing"},
		SubMilestones: []domain.SubMilestone{{Name: "x"}},
	}
	err = svc.Create(ctx, admin, orphan)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "projectTypes[0]")

	empty := &domain.Milestone{Name: "Empty", Description: "d", ProjectTypes: []string{s.projectType.ID}}
	assert.ErrorIs(t, svc.Create(ctx, admin, empty), domain.ErrValidation)
}

func TestMilestoneService_UpdateInvalidatesProjects(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	reports := e.reportService()
	svc := NewMilestoneService(e.milestones, e.uow, e.options()...)
	ctx := context.Background()

	_, err := reports.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)

	s.build.SubMilestones = append(s.build.SubMilestones, domain.SubMilestone{Name: "Load test"})
	require.NoError(t, svc.Update(ctx, admin, s.build))

	_, hit, err := e.cache.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	assert.False(t, hit)

	view, err := reports.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalSubMilestones)
}

func TestMilestoneService_DeleteInvalidatesProjects(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	reports := e.reportService()
	svc := NewMilestoneService(e.milestones, e.uow, e.options()...)
	ctx := context.Background()

	unused := testutil.NewTestMilestone("Unused", s.projectType.ID, testutil.WithSubs("u1"))
	require.NoError(t, e.milestones.Create(ctx, unused))

	before, err := reports.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	require.Len(t, before.Milestones, 3, "unscheduled templates of the type are listed")

	require.NoError(t, svc.Delete(ctx, admin, unused.ID))

	_, hit, err := e.cache.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	assert.False(t, hit)

	after, err := reports.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	assert.Len(t, after.Milestones, 2)
	assert.Equal(t, 3, after.TotalSubMilestones)
}

func TestMilestoneService_DeleteScheduled(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	svc := NewMilestoneService(e.milestones, e.uow)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, admin, s.build.ID), domain.ErrValidation)

	unused := testutil.NewTestMilestone("Unused", s.projectType.ID, testutil.WithSubs("u1"))
	require.NoError(t, e.milestones.Create(ctx, unused))
	require.NoError(t, svc.Delete(ctx, admin, unused.ID))
	_, err := svc.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, admin, unused.ID), domain.ErrNotFound)
}
