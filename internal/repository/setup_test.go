package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/require"
)

type repos struct {
	db         *sql.DB
	types      *SQLiteProjectTypeRepo
	clients    *SQLiteClientRepo
	milestones *SQLiteMilestoneRepo
	projects   *SQLiteProjectRepo
	reports    *SQLiteReportRepo
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:         database,
		types:      NewSQLiteProjectTypeRepo(database),
		clients:    NewSQLiteClientRepo(database),
		milestones: NewSQLiteMilestoneRepo(database),
		projects:   NewSQLiteProjectRepo(database),
		reports:    NewSQLiteReportRepo(database),
	}
}

// seedProject stores a type, one milestone and a project scheduling it.
func seedProject(t *testing.T, r repos) (*domain.ProjectType, *domain.Milestone, *domain.Project) {
	t.Helper()
	ctx := context.Background()

	pt := testutil.NewTestProjectType("Web build")
	require.NoError(t, r.types.Create(ctx, pt))

	m := testutil.NewTestMilestone("Discovery", pt.ID, testutil.WithSubs("a", "b"))
	require.NoError(t, r.milestones.Create(ctx, m))

	p := testutil.NewTestProject("Storefront", pt.ID,
		testutil.WithSchedule(m.ID, testutil.Day(2025, 1, 6), testutil.Day(2025, 1, 31)))
	require.NoError(t, r.projects.Create(ctx, p))
	return pt, m, p
}
