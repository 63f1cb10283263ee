package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/domain"
)

func TestClientService_AdminOnlyWrites(t *testing.T) {
	e := setupEnv(t)
	svc := NewClientService(e.clients, e.uow, e.options()...)
	ctx := context.Background()

	c := &domain.Client{Name: "Innovate Corp", Email: " contact@innovate.com "}
	assert.ErrorIs(t, svc.Create(ctx, manager, c), domain.ErrPermissionDenied)

	require.NoError(t, svc.Create(ctx, admin, c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "contact@innovate.com", c.Email)
	assert.Equal(t, fixedNow, c.CreatedAt)

	err := svc.Create(ctx, admin, &domain.Client{Name: "Broken", Email: "nope"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "email")

	c.Name = "Innovate Corporation"
	require.NoError(t, svc.Update(ctx, admin, c))
	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Innovate Corporation", got.Name)

	assert.ErrorIs(t, svc.Update(ctx, admin, &domain.Client{ID: "missing", Name: "X", Email: "x@x.example"}), domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, admin, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientService_ListLimit(t *testing.T) {
	e := setupEnv(t)
	svc := NewClientService(e.clients, e.uow)
	ctx := context.Background()

	none, err := svc.List(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	for _, name := range []string{"Zeta", "Acme", "Mercury"} {
		require.NoError(t, svc.Create(ctx, admin, &domain.Client{Name: name, Email: "hi@" + name + ".example"}))
	}
	top, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Acme", top[0].Name)
}

func TestClientService_DeleteInUse(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	svc := NewClientService(e.clients, e.uow)

	err := svc.Delete(context.Background(), admin, s.client.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "client has 1 projects")
}

func TestClientService_RenameRefreshesGeneralReport(t *testing.T) {
	e := setupEnv(t)
	s := e.seed(t)
	svc := NewClientService(e.clients, e.uow, e.options()...)
	reports := e.reportService()
	ctx := context.Background()

	v, err := reports.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Northside Clinic", v.ClientName)

	s.client.Name = "Northside Health"
	require.NoError(t, svc.Update(ctx, admin, s.client))

	v, err = reports.GetGeneral(ctx, s.project.ID, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Northside Health", v.ClientName)
}
