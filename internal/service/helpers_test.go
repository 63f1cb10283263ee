package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/cadence/internal/cache"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/events"
	"github.com/alexanderramin/cadence/internal/metrics"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
)

var (
	admin    = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	manager  = domain.Actor{ID: "manager-1", Role: domain.RoleManager}
	stranger = domain.Actor{ID: "manager-2", Role: domain.RoleManager}

	// fixedNow sits in week 5 of the default test project window.
	fixedNow = time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)
)

type env struct {
	db         *sql.DB
	uow        db.UnitOfWork
	types      *repository.SQLiteProjectTypeRepo
	clients    *repository.SQLiteClientRepo
	milestones *repository.SQLiteMilestoneRepo
	projects   *repository.SQLiteProjectRepo
	reports    *repository.SQLiteReportRepo
	cache      *cache.Memory
	events     *events.Recorder
	metrics    *metrics.Metrics
}

func setupEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &env{
		db:         database,
		uow:        testutil.NewTestUoW(database),
		types:      repository.NewSQLiteProjectTypeRepo(database),
		clients:    repository.NewSQLiteClientRepo(database),
		milestones: repository.NewSQLiteMilestoneRepo(database),
		projects:   repository.NewSQLiteProjectRepo(database),
		reports:    repository.NewSQLiteReportRepo(database),
		cache:      cache.NewMemory(),
		events:     &events.Recorder{},
		metrics:    metrics.New(),
	}
}

func (e *env) options() []Option {
	return []Option{
		WithReportCache(e.cache),
		WithPublisher(e.events),
		WithMetrics(e.metrics),
		WithClock(func() time.Time { return fixedNow }),
	}
}

func (e *env) reportService() ReportService {
	return NewReportService(e.projects, e.reports, e.uow, e.options()...)
}

// seeded is a web project for Northside Clinic with two scheduled templates:
// Discovery{a, b} over Jan 6..20 and Build{c} over Jan 21..Mar 10.
type seeded struct {
	projectType *domain.ProjectType
	client      *domain.Client
	discovery   *domain.Milestone
	build       *domain.Milestone
	project     *domain.Project
}

func (e *env) seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()

	pt := testutil.NewTestProjectType("Web")
	require.NoError(t, e.types.Create(ctx, pt))
	client := testutil.NewTestClient(testutil.DefaultClientID, "Northside Clinic")
	require.NoError(t, e.clients.Create(ctx, client))

	discovery := testutil.NewTestMilestone("Discovery", pt.ID, testutil.WithSubs("a", "b"))
	build := testutil.NewTestMilestone("Build", pt.ID, testutil.WithSubs("c"))
	require.NoError(t, e.milestones.Create(ctx, discovery))
	require.NoError(t, e.milestones.Create(ctx, build))

	p := testutil.NewTestProject("Clinic Portal", pt.ID,
		testutil.WithManager(manager.ID),
		testutil.WithSchedule(discovery.ID, testutil.Day(2025, 1, 6), testutil.Day(2025, 1, 20)),
		testutil.WithSchedule(build.ID, testutil.Day(2025, 1, 21), testutil.Day(2025, 3, 10)),
	)
	require.NoError(t, e.projects.Create(ctx, p))
	return seeded{projectType: pt, client: client, discovery: discovery, build: build, project: p}
}
