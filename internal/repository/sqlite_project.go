package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo. A project's milestone schedules
// live in project_milestones and are replaced wholesale on Update.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, name, client_id, manager_id, project_type_id, start_date, estimated_end_date, status, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Name,
		p.ClientID,
		p.ManagerID,
		p.ProjectType,
		formatDate(p.StartDate),
		formatDate(p.EstimatedEndDate),
		string(p.Status),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.writeSchedules(ctx, p)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	projects, err := r.query(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return projects[0], nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, id`)
}

func (r *SQLiteProjectRepo) ListByManager(ctx context.Context, managerID string) ([]*domain.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects WHERE manager_id = ? ORDER BY created_at, id`, managerID)
}

func (r *SQLiteProjectRepo) CountByProjectType(ctx context.Context, projectTypeID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE project_type_id = ?`, projectTypeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects by type: %w", err)
	}
	return n, nil
}

func (r *SQLiteProjectRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE client_id = ?`, clientID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects by client: %w", err)
	}
	return n, nil
}

// CountScheduling returns how many projects schedule the milestone template.
func (r *SQLiteProjectRepo) CountScheduling(ctx context.Context, milestoneID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM project_milestones WHERE milestone_id = ?`, milestoneID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting project milestones: %w", err)
	}
	return n, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, client_id = ?, manager_id = ?, project_type_id = ?,
			start_date = ?, estimated_end_date = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name,
		p.ClientID,
		p.ManagerID,
		p.ProjectType,
		formatDate(p.StartDate),
		formatDate(p.EstimatedEndDate),
		string(p.Status),
		formatTimestamp(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if err := requireAffected(res, "project", p.ID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_milestones WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clearing project milestones: %w", err)
	}
	return r.writeSchedules(ctx, p)
}

func (r *SQLiteProjectRepo) UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), nowUTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating project status: %w", err)
	}
	return requireAffected(res, "project", id)
}

// Delete removes the project; schedules and weekly reports cascade.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project", id)
}

func (r *SQLiteProjectRepo) writeSchedules(ctx context.Context, p *domain.Project) error {
	for _, pm := range p.Milestones {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO project_milestones (id, project_id, milestone_id, start_date, end_date) VALUES (?, ?, ?, ?, ?)`,
			pm.ID, p.ID, pm.MilestoneID, formatDate(pm.StartDate), formatDate(pm.EndDate),
		); err != nil {
			return fmt.Errorf("inserting project milestone %s: %w", pm.MilestoneID, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	rows.Close()

	if len(projects) == 0 {
		return projects, nil
	}
	if err := r.loadSchedules(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) loadSchedules(ctx context.Context, projects []*domain.Project) error {
	byID := make(map[string]*domain.Project, len(projects))
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		ids = append(ids, p.ID)
		p.Milestones = []domain.ProjectMilestone{}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, milestone_id, start_date, end_date FROM project_milestones
		 WHERE project_id IN (`+placeholders(len(ids))+`) ORDER BY project_id, start_date, id`,
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("loading project milestones: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pm domain.ProjectMilestone
		var projectID, start, end string
		if err := rows.Scan(&pm.ID, &projectID, &pm.MilestoneID, &start, &end); err != nil {
			return fmt.Errorf("scanning project milestone: %w", err)
		}
		if pm.StartDate, err = parseDate(start, "project_milestones.start_date"); err != nil {
			return err
		}
		if pm.EndDate, err = parseDate(end, "project_milestones.end_date"); err != nil {
			return err
		}
		byID[projectID].Milestones = append(byID[projectID].Milestones, pm)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating project milestones: %w", err)
	}
	return nil
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var p domain.Project
	var start, end, status, createdAt, updatedAt string
	err := s.Scan(
		&p.ID, &p.Name, &p.ClientID, &p.ManagerID, &p.ProjectType,
		&start, &end, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Status = domain.ProjectStatus(status)

	if p.StartDate, err = parseDate(start, "start_date"); err != nil {
		return nil, err
	}
	if p.EstimatedEndDate, err = parseDate(end, "estimated_end_date"); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
