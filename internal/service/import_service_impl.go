package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/importer"
	"github.com/alexanderramin/cadence/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
	deps
}

func NewImportService(uow db.UnitOfWork, opts ...Option) ImportService {
	return &importService{uow: uow, deps: newDeps(opts)}
}

func (s *importService) ImportFile(ctx context.Context, actor domain.Actor, path string) (*app.ImportResult, error) {
	doc, err := importer.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.Import(ctx, actor, doc)
}

// Import writes a whole seed document in one transaction; nothing is stored
// if any entity fails.
func (s *importService) Import(ctx context.Context, actor domain.Actor, doc *importer.Document) (result *app.ImportResult, err error) {
	startedAt := s.now()
	fields := map[string]any{"actor_id": actor.ID}
	defer func() { observe(ctx, s.observer, "import", startedAt, fields, err) }()

	if err = requireAdmin(actor); err != nil {
		return nil, err
	}
	if errs := importer.ValidateDocument(doc); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, collectValidationErrors(errs)
	}

	plan, err := importer.Convert(doc, s.nowUTC())
	if err != nil {
		return nil, fmt.Errorf("converting import document: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		clients := repository.NewSQLiteClientRepo(tx)
		types := repository.NewSQLiteProjectTypeRepo(tx)
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		projects := repository.NewSQLiteProjectRepo(tx)
		reports := repository.NewSQLiteReportRepo(tx)

		for _, c := range plan.Clients {
			if err := clients.Create(ctx, c); err != nil {
				return fmt.Errorf("creating client %q: %w", c.Name, err)
			}
		}
		for _, t := range plan.ProjectTypes {
			if err := types.Create(ctx, t); err != nil {
				return fmt.Errorf("creating project type %q: %w", t.Name, err)
			}
		}
		for _, m := range plan.Milestones {
			if err := milestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Name, err)
			}
		}
		for _, p := range plan.Projects {
			if err := projects.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
		}
		for _, r := range plan.Reports {
			if err := reports.Create(ctx, r); err != nil {
				return fmt.Errorf("creating report week %d: %w", r.Week, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		Clients:      len(plan.Clients),
		ProjectTypes: len(plan.ProjectTypes),
		Milestones:   len(plan.Milestones),
		Projects:     len(plan.Projects),
		Reports:      len(plan.Reports),
	}
	fields["projects"] = result.Projects
	fields["reports"] = result.Reports
	return result, nil
}

func collectValidationErrors(errs []error) error {
	var out domain.ValidationErrors
	for _, err := range errs {
		var ve domain.ValidationError
		if errors.As(err, &ve) {
			out = append(out, ve)
			continue
		}
		out.Add("", err.Error())
	}
	return out
}
