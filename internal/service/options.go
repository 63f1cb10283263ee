package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/cadence/internal/cache"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/events"
	"github.com/alexanderramin/cadence/internal/metrics"
)

// Option configures the collaborators shared by the services.
type Option func(*deps)

type deps struct {
	cache    cache.ReportCache
	events   events.Publisher
	metrics  *metrics.Metrics
	logger   *zap.Logger
	observer UseCaseObserver
	now      func() time.Time
}

func WithReportCache(c cache.ReportCache) Option {
	return func(d *deps) { d.cache = c }
}

func WithPublisher(p events.Publisher) Option {
	return func(d *deps) { d.events = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *deps) { d.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *deps) { d.logger = l }
}

func WithObservers(observers ...UseCaseObserver) Option {
	return func(d *deps) { d.observer = useCaseObserverOrNoop(observers) }
}

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

func newDeps(opts []Option) deps {
	d := deps{
		cache:    cache.Noop{},
		events:   events.Noop{},
		logger:   zap.NewNop(),
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}
	return d
}

func (d *deps) nowUTC() time.Time {
	return d.now().UTC()
}

// invalidate drops cached views for a project. Failures are logged; the
// write that triggered it has already committed.
func (d *deps) invalidate(ctx context.Context, projectID string) {
	if err := d.cache.Invalidate(ctx, projectID); err != nil {
		d.logger.Warn("report cache invalidation failed", zap.String("project_id", projectID), zap.Error(err))
	}
}

func (d *deps) publish(ctx context.Context, ev events.Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = d.nowUTC()
	}
	err := d.events.Publish(ctx, ev)
	if d.metrics != nil {
		d.metrics.IncEventPublished(ev.RoutingKey, err)
	}
	if err != nil {
		d.logger.Warn("event publish failed",
			zap.String("routing_key", ev.RoutingKey),
			zap.String("project_id", ev.ProjectID),
			zap.Error(err),
		)
	}
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%s %q may not manage the catalog: %w", actor.Role, actor.ID, domain.ErrPermissionDenied)
	}
	return nil
}

func requireProjectAccess(actor domain.Actor, p *domain.Project) error {
	if !actor.CanManageProject(p) {
		return fmt.Errorf("%s %q may not manage project %s: %w", actor.Role, actor.ID, p.ID, domain.ErrPermissionDenied)
	}
	return nil
}
