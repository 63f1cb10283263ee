package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

type SQLiteReportRepo struct {
	db db.DBTX
}

func NewSQLiteReportRepo(db db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: db}
}

const reportColumns = `id, project_id, week, progress, summary, status, completed_sub_milestones, created_at, updated_at`

func (r *SQLiteReportRepo) Create(ctx context.Context, rep *domain.WeeklyReport) error {
	ids, err := encodeIDs(rep.CompletedSubMilestones)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO weekly_reports (`+reportColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.ID,
		rep.ProjectID,
		rep.Week,
		rep.Progress,
		rep.Summary,
		string(rep.Status),
		ids,
		formatTimestamp(rep.CreatedAt),
		formatTimestamp(rep.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting weekly report: %w", err)
	}
	return nil
}

// Update rewrites the report for its (project, week) key. ID and created_at
// are left untouched.
func (r *SQLiteReportRepo) Update(ctx context.Context, rep *domain.WeeklyReport) error {
	ids, err := encodeIDs(rep.CompletedSubMilestones)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE weekly_reports SET progress = ?, summary = ?, status = ?, completed_sub_milestones = ?, updated_at = ?
		 WHERE project_id = ? AND week = ?`,
		rep.Progress,
		rep.Summary,
		string(rep.Status),
		ids,
		formatTimestamp(rep.UpdatedAt),
		rep.ProjectID,
		rep.Week,
	)
	if err != nil {
		return fmt.Errorf("updating weekly report: %w", err)
	}
	return requireAffected(res, "weekly report", fmt.Sprintf("%s/%d", rep.ProjectID, rep.Week))
}

func (r *SQLiteReportRepo) GetByWeek(ctx context.Context, projectID string, week int) (*domain.WeeklyReport, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM weekly_reports WHERE project_id = ? AND week = ?`, projectID, week)
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("weekly report %s/%d: %w", projectID, week, domain.ErrNotFound)
	}
	return rep, err
}

func (r *SQLiteReportRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WeeklyReport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM weekly_reports WHERE project_id = ? ORDER BY week`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing weekly reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.WeeklyReport{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weekly reports: %w", err)
	}
	return reports, nil
}

// MaxWeek returns the highest stored week, 0 when the project has no reports.
func (r *SQLiteReportRepo) MaxWeek(ctx context.Context, projectID string) (int, error) {
	var week sql.NullInt64
	if err := r.db.QueryRowContext(ctx,
		`SELECT MAX(week) FROM weekly_reports WHERE project_id = ?`, projectID,
	).Scan(&week); err != nil {
		return 0, fmt.Errorf("reading max week: %w", err)
	}
	return int(week.Int64), nil
}

func (r *SQLiteReportRepo) Delete(ctx context.Context, projectID string, week int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weekly_reports WHERE project_id = ? AND week = ?`, projectID, week)
	if err != nil {
		return fmt.Errorf("deleting weekly report: %w", err)
	}
	return requireAffected(res, "weekly report", fmt.Sprintf("%s/%d", projectID, week))
}

func (r *SQLiteReportRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM weekly_reports WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("project reports rows affected: %w", err)
	}
	return int(n), nil
}

func scanReport(s rowScanner) (*domain.WeeklyReport, error) {
	var rep domain.WeeklyReport
	var status, ids, createdAt, updatedAt string
	err := s.Scan(
		&rep.ID, &rep.ProjectID, &rep.Week, &rep.Progress, &rep.Summary,
		&status, &ids, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning weekly report: %w", err)
	}
	rep.Status = domain.ReportStatus(status)
	if rep.CompletedSubMilestones, err = decodeIDs(ids); err != nil {
		return nil, err
	}
	if rep.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if rep.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &rep, nil
}
