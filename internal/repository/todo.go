package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// UpdateTodoInput carries the only two fields a PATCH may touch. A nil
// Text keeps the stored text. CompletedAt is derived from Completed by
// the usecase, never supplied by the caller.
type UpdateTodoInput struct {
	Text        *string
	Completed   bool
	CompletedAt *time.Time // nil clears the column
}

// Every method takes the owner's userID and filters by it, so a todo
// belonging to someone else behaves exactly like a missing one.
type TodoRepository interface {
	Create(ctx context.Context, userID, text string) (*domain.Todo, error)
	List(ctx context.Context, userID string) ([]*domain.Todo, error)
	GetByID(ctx context.Context, todoID, userID string) (*domain.Todo, error)
	Update(ctx context.Context, todoID, userID string, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, todoID, userID string) (*domain.Todo, error)
}
