package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

type SQLiteClientRepo struct {
	db db.DBTX
}

func NewSQLiteClientRepo(db db.DBTX) *SQLiteClientRepo {
	return &SQLiteClientRepo{db: db}
}

const clientColumns = `id, name, email, created_at, updated_at`

func (r *SQLiteClientRepo) Create(ctx context.Context, c *domain.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (`+clientColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLiteClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

// List returns clients by name. A positive limit caps the result, as the
// dashboard only shows a handful.
func (r *SQLiteClientRepo) List(ctx context.Context, limit int) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating clients: %w", err)
	}
	return clients, nil
}

func (r *SQLiteClientRepo) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, email = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Email, formatTimestamp(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return requireAffected(res, "client", c.ID)
}

func (r *SQLiteClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return requireAffected(res, "client", id)
}

func scanClient(s rowScanner) (*domain.Client, error) {
	var c domain.Client
	var createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
