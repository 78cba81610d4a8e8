// Package todos provides repositories for todo document persistence:
// a PostgreSQL implementation used in production and an in-memory one for
// tests and DSN-less development mode.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Ids are generated by the database.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOwner returns all todos owned by ownerID ordered by creation time.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Todo, error) {
	query := `
		SELECT id, owner_id, text, completed, created_at FROM todos
		WHERE owner_id=$1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Text, &item.Completed, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new todo document. The id and creation timestamp are
// assigned by the database and returned with the stored row.
func (r *PostgresRepository) Create(ctx context.Context, ownerID, text string, completed bool) (models.Todo, error) {
	query := `
		INSERT INTO todos (owner_id, text, completed)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, text, completed, created_at
	`
	var item models.Todo
	row := r.db.QueryRowContext(ctx, query, ownerID, text, completed)
	if err := row.Scan(&item.ID, &item.OwnerID, &item.Text, &item.Completed, &item.CreatedAt); err != nil {
		return models.Todo{}, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// SetCompleted sets the completed flag of the todo with the given id and
// returns the updated row. Returns ErrorNotFound if no such row exists.
func (r *PostgresRepository) SetCompleted(ctx context.Context, id string, completed bool) (models.Todo, error) {
	query := `
		UPDATE todos SET completed=$2
		WHERE id=$1
		RETURNING id, owner_id, text, completed, created_at
	`
	return r.scanUpdated(r.db.QueryRowContext(ctx, query, id, completed))
}

// Toggle flips the completed flag of the todo with the given id atomically
// and returns the updated row. Returns ErrorNotFound if no such row exists.
func (r *PostgresRepository) Toggle(ctx context.Context, id string) (models.Todo, error) {
	query := `
		UPDATE todos SET completed=NOT completed
		WHERE id=$1
		RETURNING id, owner_id, text, completed, created_at
	`
	return r.scanUpdated(r.db.QueryRowContext(ctx, query, id))
}

// Delete removes the todo with the given id. Returns ErrorNotFound when the
// id does not exist.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) scanUpdated(row *sql.Row) (models.Todo, error) {
	var item models.Todo
	if err := row.Scan(&item.ID, &item.OwnerID, &item.Text, &item.Completed, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, common.ErrorNotFound
		}
		return models.Todo{}, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}
