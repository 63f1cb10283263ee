package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteMilestoneRepo spreads a template over three tables. Writes issue
// several statements, so callers wanting atomicity run it inside a UnitOfWork.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

func NewSQLiteMilestoneRepo(db db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: db}
}

const milestoneColumns = `m.id, m.name, m.description, m.created_at, m.updated_at`

func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO milestones (id, name, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Description, formatTimestamp(m.CreatedAt), formatTimestamp(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	return r.writeChildren(ctx, m)
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id string) (*domain.Milestone, error) {
	ms, err := r.query(ctx, `SELECT `+milestoneColumns+` FROM milestones m WHERE m.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("milestone %s: %w", id, domain.ErrNotFound)
	}
	return ms[0], nil
}

func (r *SQLiteMilestoneRepo) List(ctx context.Context) ([]*domain.Milestone, error) {
	return r.query(ctx, `SELECT `+milestoneColumns+` FROM milestones m ORDER BY m.name, m.id`)
}

func (r *SQLiteMilestoneRepo) ListByProjectType(ctx context.Context, projectTypeID string) ([]*domain.Milestone, error) {
	return r.query(ctx, `SELECT `+milestoneColumns+`
		FROM milestones m
		JOIN milestone_project_types mpt ON mpt.milestone_id = m.id
		WHERE mpt.project_type_id = ?
		ORDER BY m.name, m.id`, projectTypeID)
}

func (r *SQLiteMilestoneRepo) CountByProjectType(ctx context.Context, projectTypeID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM milestone_project_types WHERE project_type_id = ?`, projectTypeID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting milestones by project type: %w", err)
	}
	return n, nil
}

// Update rewrites the template row and replaces its type links and sub-milestones.
func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE milestones SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		m.Name, m.Description, formatTimestamp(m.UpdatedAt), m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	if err := requireAffected(res, "milestone", m.ID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM milestone_project_types WHERE milestone_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clearing milestone project types: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sub_milestones WHERE milestone_id = ?`, m.ID); err != nil {
		return fmt.Errorf("clearing sub-milestones: %w", err)
	}
	return r.writeChildren(ctx, m)
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return requireAffected(res, "milestone", id)
}

func (r *SQLiteMilestoneRepo) writeChildren(ctx context.Context, m *domain.Milestone) error {
	for _, pt := range m.ProjectTypes {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO milestone_project_types (milestone_id, project_type_id) VALUES (?, ?)`,
			m.ID, pt,
		); err != nil {
			return fmt.Errorf("linking milestone to project type %s: %w", pt, err)
		}
	}
	for i, sm := range m.SubMilestones {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO sub_milestones (id, milestone_id, name, order_index) VALUES (?, ?, ?, ?)`,
			sm.ID, m.ID, sm.Name, i,
		); err != nil {
			return fmt.Errorf("inserting sub-milestone %s: %w", sm.ID, err)
		}
	}
	return nil
}

// query loads the template rows first and their children afterwards, so no
// two result sets are open at once on a single-connection database.
func (r *SQLiteMilestoneRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	var milestones []*domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	rows.Close()

	if len(milestones) == 0 {
		return milestones, nil
	}
	if err := r.loadChildren(ctx, milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

func (r *SQLiteMilestoneRepo) loadChildren(ctx context.Context, milestones []*domain.Milestone) error {
	byID := make(map[string]*domain.Milestone, len(milestones))
	ids := make([]string, 0, len(milestones))
	for _, m := range milestones {
		byID[m.ID] = m
		ids = append(ids, m.ID)
		m.ProjectTypes = []string{}
		m.SubMilestones = []domain.SubMilestone{}
	}
	in := placeholders(len(ids))

	rows, err := r.db.QueryContext(ctx,
		`SELECT milestone_id, project_type_id FROM milestone_project_types
		 WHERE milestone_id IN (`+in+`) ORDER BY project_type_id`, stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("loading milestone project types: %w", err)
	}
	for rows.Next() {
		var mid, pt string
		if err := rows.Scan(&mid, &pt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning milestone project type: %w", err)
		}
		byID[mid].ProjectTypes = append(byID[mid].ProjectTypes, pt)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating milestone project types: %w", err)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx,
		`SELECT id, milestone_id, name FROM sub_milestones
		 WHERE milestone_id IN (`+in+`) ORDER BY milestone_id, order_index`, stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("loading sub-milestones: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sm domain.SubMilestone
		var mid string
		if err := rows.Scan(&sm.ID, &mid, &sm.Name); err != nil {
			return fmt.Errorf("scanning sub-milestone: %w", err)
		}
		byID[mid].SubMilestones = append(byID[mid].SubMilestones, sm)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating sub-milestones: %w", err)
	}
	return nil
}

func scanMilestone(s rowScanner) (*domain.Milestone, error) {
	var m domain.Milestone
	var createdAt, updatedAt string
	if err := s.Scan(&m.ID, &m.Name, &m.Description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning milestone: %w", err)
	}
	var err error
	if m.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &m, nil
}
