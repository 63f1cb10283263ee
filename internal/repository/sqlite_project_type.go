package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

type SQLiteProjectTypeRepo struct {
	db db.DBTX
}

func NewSQLiteProjectTypeRepo(db db.DBTX) *SQLiteProjectTypeRepo {
	return &SQLiteProjectTypeRepo{db: db}
}

const projectTypeColumns = `id, name, created_at, updated_at`

func (r *SQLiteProjectTypeRepo) Create(ctx context.Context, t *domain.ProjectType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_types (`+projectTypeColumns+`) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project type: %w", err)
	}
	return nil
}

func (r *SQLiteProjectTypeRepo) GetByID(ctx context.Context, id string) (*domain.ProjectType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectTypeColumns+` FROM project_types WHERE id = ?`, id)
	t, err := scanProjectType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project type %s: %w", id, domain.ErrNotFound)
	}
	return t, err
}

func (r *SQLiteProjectTypeRepo) List(ctx context.Context) ([]*domain.ProjectType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectTypeColumns+` FROM project_types ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing project types: %w", err)
	}
	defer rows.Close()

	var types []*domain.ProjectType
	for rows.Next() {
		t, err := scanProjectType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project types: %w", err)
	}
	return types, nil
}

func (r *SQLiteProjectTypeRepo) Update(ctx context.Context, t *domain.ProjectType) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE project_types SET name = ?, updated_at = ? WHERE id = ?`,
		t.Name, formatTimestamp(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project type: %w", err)
	}
	return requireAffected(res, "project type", t.ID)
}

func (r *SQLiteProjectTypeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project type: %w", err)
	}
	return requireAffected(res, "project type", id)
}

func scanProjectType(s rowScanner) (*domain.ProjectType, error) {
	var t domain.ProjectType
	var createdAt, updatedAt string
	if err := s.Scan(&t.ID, &t.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project type: %w", err)
	}
	var err error
	if t.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}

// requireAffected maps a write that touched no rows to ErrNotFound.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
