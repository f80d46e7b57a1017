package domain

import (
	"errors"
	"time"
)

var ErrTodoNotFound = errors.New("todo not found")

type Todo struct {
	ID          string
	UserID      string
	Text        string
	Completed   bool
	CompletedAt *time.Time // nil unless Completed is true
	CreatedAt   time.Time
}
