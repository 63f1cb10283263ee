package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/alexanderramin/cadence/internal/auth"
	"github.com/alexanderramin/cadence/internal/cache"
	"github.com/alexanderramin/cadence/internal/cli"
	"github.com/alexanderramin/cadence/internal/config"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/events"
	"github.com/alexanderramin/cadence/internal/httpapi"
	"github.com/alexanderramin/cadence/internal/logger"
	"github.com/alexanderramin/cadence/internal/metrics"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/service"
)

// build wires the whole application from configuration. Redis and RabbitMQ
// are optional; without them reports are cached in process and events are
// dropped.
func build(opts cli.Options) (*cli.App, func(), error) {
	cfg, err := config.Load(viper.New(), opts.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	if opts.DBPath != "" {
		cfg.DB.Path = opts.DBPath
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()),
	})
	if err != nil {
		return nil, nil, err
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("shutdown step failed", zap.Error(err))
			}
		}
		_ = log.Sync()
	}
	fail := func(err error) (*cli.App, func(), error) {
		cleanup()
		return nil, nil, err
	}

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, database.Close)

	projectTypeRepo := repository.NewSQLiteProjectTypeRepo(database)
	clientRepo := repository.NewSQLiteClientRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	reportRepo := repository.NewSQLiteReportRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	m := metrics.New()

	var reportCache cache.ReportCache = cache.NewMemory()
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, client.Close)
		reportCache = cache.NewRedis(client, cfg.Redis.TTL)
		log.Info("report cache: redis", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQP.URL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, p.Close)
		publisher = p
		log.Info("event publisher: amqp", zap.String("exchange", cfg.AMQP.Exchange))
	}

	svcOpts := []service.Option{
		service.WithReportCache(reportCache),
		service.WithPublisher(publisher),
		service.WithMetrics(m),
		service.WithLogger(log),
		service.WithObservers(
			service.NewZapUseCaseObserver(log),
			service.NewMetricsUseCaseObserver(m),
		),
	}

	actor := domain.Actor{ID: cfg.CLI.ActorID, Role: domain.Role(cfg.CLI.Role)}
	if err := actor.Validate(); err != nil {
		return fail(fmt.Errorf("invalid cli identity: %w", err))
	}

	app := &cli.App{
		ProjectTypes: service.NewProjectTypeService(projectTypeRepo, uow, svcOpts...),
		Clients:      service.NewClientService(clientRepo, uow, svcOpts...),
		Milestones:   service.NewMilestoneService(milestoneRepo, uow, svcOpts...),
		Projects:     service.NewProjectService(projectRepo, uow, svcOpts...),
		Reports:      service.NewReportService(projectRepo, reportRepo, uow, svcOpts...),
		Status:       service.NewStatusService(uow, svcOpts...),
		Import:       service.NewImportService(uow, svcOpts...),
		Actor:        actor,
	}
	if cfg.Auth.Secret != "" {
		app.Tokens = auth.New(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	}

	app.Serve = func(ctx context.Context) error {
		if err := cfg.ValidateForServe(); err != nil {
			return err
		}
		if err := seedCatalog(ctx, app, cfg.Catalog.Path, log); err != nil {
			return err
		}
		router := httpapi.NewRouter(httpapi.Deps{
			ProjectTypes: app.ProjectTypes,
			Clients:      app.Clients,
			Milestones:   app.Milestones,
			Projects:     app.Projects,
			Reports:      app.Reports,
			Status:       app.Status,
			Tokens:       app.Tokens,
			DB:           database,
			Metrics:      m,
			Logger:       log,
			Now:          func() time.Time { return time.Now().UTC() },
		})
		return httpapi.Serve(ctx, cfg.HTTP.Addr, router, cfg.HTTP.ShutdownTimeout, log)
	}

	return app, cleanup, nil
}

// seedCatalog imports the configured seed file into an empty database.
func seedCatalog(ctx context.Context, app *cli.App, path string, log *zap.Logger) error {
	if path == "" {
		return nil
	}
	existing, err := app.ProjectTypes.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug("catalog already present, skipping seed", zap.String("path", path))
		return nil
	}
	res, err := app.Import.ImportFile(ctx, app.Actor, path)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			return fmt.Errorf("seeding catalog requires cli.role=admin: %w", err)
		}
		return fmt.Errorf("seeding catalog from %s: %w", path, err)
	}
	log.Info("catalog seeded",
		zap.String("path", path),
		zap.Int("project_types", res.ProjectTypes),
		zap.Int("milestones", res.Milestones),
		zap.Int("projects", res.Projects),
	)
	return nil
}
