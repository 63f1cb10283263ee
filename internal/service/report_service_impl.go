package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/events"
	"github.com/alexanderramin/cadence/internal/progress"
	"github.com/alexanderramin/cadence/internal/report"
	"github.com/alexanderramin/cadence/internal/repository"
)

type reportService struct {
	projects repository.ProjectRepo
	reports  repository.ReportRepo
	uow      db.UnitOfWork
	deps
}

func NewReportService(
	projects repository.ProjectRepo,
	reports repository.ReportRepo,
	uow db.UnitOfWork,
	opts ...Option,
) ReportService {
	return &reportService{projects: projects, reports: reports, uow: uow, deps: newDeps(opts)}
}

func (s *reportService) snapshot(ctx context.Context, projectID string) (projectSnapshot, error) {
	return db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (projectSnapshot, error) {
		return loadSnapshot(ctx, tx, projectID)
	})
}

func (s *reportService) ListReports(ctx context.Context, projectID string) ([]*domain.WeeklyReport, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.reports.ListByProject(ctx, projectID)
}

func (s *reportService) NextWeek(ctx context.Context, projectID string) (int, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return 0, err
	}
	last, err := s.reports.MaxWeek(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// GetWeekly renders one week's form. Unsaved weeks get a placeholder.
func (s *reportService) GetWeekly(ctx context.Context, projectID string, week int, now time.Time) (*report.WeeklyReportView, error) {
	if week < 1 {
		var errs domain.ValidationErrors
		errs.Add("week", "week must be 1 or greater")
		return nil, errs
	}
	snap, err := s.snapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}
	current := findWeek(snap.reports, week)
	view := report.SynthesizeWeekly(snap.project, snap.milestones, current, week, progress.CompletedBefore(snap.reports, week), now)
	return &view, nil
}

func (s *reportService) GetGeneral(ctx context.Context, projectID string, now time.Time) (view *report.GeneralReportView, err error) {
	startedAt := s.now()
	fields := map[string]any{"project_id": projectID, "cache": "miss"}
	defer func() { observe(ctx, s.observer, "general-report", startedAt, fields, err) }()

	cached, ok, cerr := s.cache.GetGeneral(ctx, projectID, now)
	switch {
	case cerr != nil:
		s.logger.Warn("report cache read failed", zap.String("project_id", projectID), zap.Error(cerr))
		s.countCache("error")
	case ok:
		fields["cache"] = "hit"
		s.countCache("hit")
		return cached, nil
	default:
		s.countCache("miss")
	}

	snap, err := s.snapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}
	v := report.SynthesizeGeneral(snap.project, snap.client, snap.milestones, snap.reports, now)
	if err := s.cache.SetGeneral(ctx, &v, now); err != nil {
		s.logger.Warn("report cache write failed", zap.String("project_id", projectID), zap.Error(err))
	}
	return &v, nil
}

func (s *reportService) Progress(ctx context.Context, projectID string, now time.Time) (*progress.ProgressSummary, error) {
	snap, err := s.snapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary := progress.Summarize(snap.project, snap.reports, snap.milestones, now)
	return &summary, nil
}

// Submit saves one week's report. Sub-milestones completed in earlier weeks
// stay completed, and progress is derived from the checked set.
func (s *reportService) Submit(ctx context.Context, actor domain.Actor, in app.SubmitReportInput) (result *app.SubmitReportResult, err error) {
	startedAt := s.now()
	fields := map[string]any{"project_id": in.ProjectID, "week": in.Week, "actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "submit-report", startedAt, fields, err) }()

	if err = in.Validate(); err != nil {
		return nil, err
	}

	result, err = db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*app.SubmitReportResult, error) {
		snap, err := loadSnapshot(ctx, tx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := requireProjectAccess(actor, snap.project); err != nil {
			return nil, err
		}

		known, total := knownSubMilestones(snap.milestones)
		var errs domain.ValidationErrors
		for i, id := range in.CompletedSubMilestones {
			if !known[id] {
				errs.Add(fmt.Sprintf("completedSubMilestones[%d]", i), fmt.Sprintf("unknown sub-milestone %q", id))
			}
		}
		if err := errs.OrNil(); err != nil {
			return nil, err
		}

		existing := findWeek(snap.reports, in.Week)
		if existing == nil {
			if next := nextWeek(snap.reports); in.Week > next {
				errs.Add("week", fmt.Sprintf("week %d skips ahead; the next report is week %d", in.Week, next))
				return nil, errs
			}
		}

		checked := progress.CompletedBefore(snap.reports, in.Week)
		checked.Add(in.CompletedSubMilestones...)
		done := countKnown(checked, known)

		now := s.nowUTC()
		rep := &domain.WeeklyReport{
			ProjectID:              in.ProjectID,
			Week:                   in.Week,
			Progress:               progress.Percent(done, total),
			Summary:                in.Summary,
			Status:                 in.Status,
			CompletedSubMilestones: checked.Sorted(),
			UpdatedAt:              now,
		}

		res := &app.SubmitReportResult{Report: rep, AllComplete: total > 0 && done == total}
		txReports := repository.NewSQLiteReportRepo(tx)
		if existing != nil {
			rep.ID = existing.ID
			rep.CreatedAt = existing.CreatedAt
			if err := txReports.Update(ctx, rep); err != nil {
				return nil, err
			}
		} else {
			rep.ID = uuid.New().String()
			rep.CreatedAt = now
			if err := txReports.Create(ctx, rep); err != nil {
				return nil, err
			}
			res.Created = true
		}

		// Later weeks already saved must keep everything completed up to
		// and including this week.
		for _, later := range snap.reports {
			if later.Week <= in.Week {
				continue
			}
			merged := progress.NewCompletedSet(later.CompletedSubMilestones...)
			before := len(merged)
			merged.Add(checked.Sorted()...)
			if len(merged) == before {
				continue
			}
			later.CompletedSubMilestones = merged.Sorted()
			later.Progress = progress.Percent(countKnown(merged, known), total)
			later.UpdatedAt = now
			if err := txReports.Update(ctx, later); err != nil {
				return nil, err
			}
			res.CarriedForward = append(res.CarriedForward, later.Week)
		}

		if res.AllComplete && in.MarkProjectCompleted && !snap.project.IsCompleted() {
			if err := repository.NewSQLiteProjectRepo(tx).UpdateStatus(ctx, in.ProjectID, domain.ProjectCompleted); err != nil {
				return nil, err
			}
			res.ProjectCompleted = true
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}

	fields["progress"] = result.Report.Progress
	fields["created"] = result.Created
	if len(result.CarriedForward) > 0 {
		fields["carried_forward"] = result.CarriedForward
	}
	s.invalidate(ctx, in.ProjectID)
	if s.metrics != nil {
		s.metrics.IncReportSubmitted(result.Created)
		if result.ProjectCompleted {
			s.metrics.IncProjectCompleted()
		}
	}
	s.publish(ctx, events.Event{
		RoutingKey: events.RoutingReportSubmitted,
		ProjectID:  in.ProjectID,
		Week:       in.Week,
		ActorID:    actor.ID,
		Progress:   result.Report.Progress,
		Created:    result.Created,
		OccurredAt: result.Report.UpdatedAt,
	})
	if result.ProjectCompleted {
		s.publish(ctx, events.Event{
			RoutingKey: events.RoutingProjectComplete,
			ProjectID:  in.ProjectID,
			Week:       in.Week,
			ActorID:    actor.ID,
			Progress:   result.Report.Progress,
			OccurredAt: result.Report.UpdatedAt,
		})
	}
	return result, nil
}

func (s *reportService) Delete(ctx context.Context, actor domain.Actor, projectID string, week int) (err error) {
	startedAt := s.now()
	fields := map[string]any{"project_id": projectID, "week": week, "actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "delete-report", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		p, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
		if err != nil {
			return err
		}
		if err := requireProjectAccess(actor, p); err != nil {
			return err
		}
		return repository.NewSQLiteReportRepo(tx).Delete(ctx, projectID, week)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, projectID)
	s.publish(ctx, events.Event{RoutingKey: events.RoutingReportDeleted, ProjectID: projectID, Week: week, ActorID: actor.ID})
	return nil
}

func (s *reportService) countCache(result string) {
	if s.metrics != nil {
		s.metrics.IncCacheLookup(result)
	}
}

// nextWeek is the week after the latest saved report, 1 when there is none.
func nextWeek(reports []*domain.WeeklyReport) int {
	last := 0
	for _, r := range reports {
		if r.Week > last {
			last = r.Week
		}
	}
	return last + 1
}

func countKnown(set progress.CompletedSet, known map[string]bool) int {
	n := 0
	for id := range set {
		if known[id] {
			n++
		}
	}
	return n
}

func findWeek(reports []*domain.WeeklyReport, week int) *domain.WeeklyReport {
	for _, r := range reports {
		if r.Week == week {
			return r
		}
	}
	return nil
}
