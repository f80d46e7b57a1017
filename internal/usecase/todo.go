package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/repository"
)

type TodoUsecase struct {
	repo repository.TodoRepository
}

func NewTodoUsecase(repo repository.TodoRepository) *TodoUsecase {
	return &TodoUsecase{repo: repo}
}

func (u *TodoUsecase) Create(ctx context.Context, userID, text string) (*domain.Todo, error) {
	todo, err := u.repo.Create(ctx, userID, text)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (u *TodoUsecase) List(ctx context.Context, userID string) ([]*domain.Todo, error) {
	todos, err := u.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (u *TodoUsecase) GetByID(ctx context.Context, todoID, userID string) (*domain.Todo, error) {
	return u.repo.GetByID(ctx, todoID, userID)
}

type UpdateTodoInput struct {
	Text      *string // nil keeps the stored text
	Completed *bool   // nil counts as false, see Update
}

// Update applies the PATCH normalization: completed=true stamps
// completedAt with the current time; completed=false OR an omitted
// completed field forces completed back to false and clears completedAt.
// Un-completing by omission is long-standing observable behavior, so it
// stays even though it differs from usual partial-update semantics.
func (u *TodoUsecase) Update(ctx context.Context, todoID, userID string, input UpdateTodoInput) (*domain.Todo, error) {
	update := repository.UpdateTodoInput{Text: input.Text}

	if input.Completed != nil && *input.Completed {
		now := time.Now()
		update.Completed = true
		update.CompletedAt = &now
	}

	return u.repo.Update(ctx, todoID, userID, update)
}

func (u *TodoUsecase) Delete(ctx context.Context, todoID, userID string) (*domain.Todo, error) {
	return u.repo.Delete(ctx, todoID, userID)
}
