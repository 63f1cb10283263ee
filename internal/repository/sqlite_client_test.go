package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRepo_CRUD(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	c := testutil.NewTestClient("c1", "Innovate Corp")
	require.NoError(t, r.clients.Create(ctx, c))

	got, err := r.clients.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Innovate Corp", got.Name)
	assert.Equal(t, c.Email, got.Email)

	c.Email = "hello@innovate.com"
	require.NoError(t, r.clients.Update(ctx, c))
	got, err = r.clients.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "hello@innovate.com", got.Email)

	require.NoError(t, r.clients.Delete(ctx, "c1"))
	_, err = r.clients.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.clients.Delete(ctx, "c1"), domain.ErrNotFound)
}

func TestClientRepo_ListLimit(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	for i, name := range []string{"Zeta", "Acme", "Mercury"} {
		require.NoError(t, r.clients.Create(ctx, testutil.NewTestClient(string(rune('a'+i)), name)))
	}

	all, err := r.clients.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Acme", all[0].Name)

	top, err := r.clients.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Mercury", top[1].Name)
}

func TestProjectRepo_CountByClient(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	seedProject(t, r)

	n, err := r.projects.CountByClient(ctx, testutil.DefaultClientID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.projects.CountByClient(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}
