package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, userID, text string) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (user_id, text)
		VALUES ($1, $2)
		RETURNING id, user_id, text, completed, completed_at, created_at`

	row := r.pool.QueryRow(ctx, query, userID, text)
	return scanTodo(row)
}

func (r *TodoRepository) List(ctx context.Context, userID string) ([]*domain.Todo, error) {
	// Insertion order, matching the store's natural order.
	query := `
		SELECT id, user_id, text, completed, completed_at, created_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, todoID, userID string) (*domain.Todo, error) {
	query := `
		SELECT id, user_id, text, completed, completed_at, created_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	row := r.pool.QueryRow(ctx, query, todoID, userID)
	return scanTodo(row)
}

func (r *TodoRepository) Update(ctx context.Context, todoID, userID string, input repository.UpdateTodoInput) (*domain.Todo, error) {
	// COALESCE keeps the stored text when the PATCH omitted it.
	query := `
		UPDATE todos
		SET    text         = COALESCE($3, text),
		       completed    = $4,
		       completed_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, text, completed, completed_at, created_at`

	row := r.pool.QueryRow(ctx, query, todoID, userID, input.Text, input.Completed, input.CompletedAt)
	return scanTodo(row)
}

func (r *TodoRepository) Delete(ctx context.Context, todoID, userID string) (*domain.Todo, error) {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, text, completed, completed_at, created_at`

	row := r.pool.QueryRow(ctx, query, todoID, userID)
	return scanTodo(row)
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
