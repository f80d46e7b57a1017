package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/todo-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type todoUsecaser interface {
	Create(ctx context.Context, userID, text string) (*domain.Todo, error)
	List(ctx context.Context, userID string) ([]*domain.Todo, error)
	GetByID(ctx context.Context, todoID, userID string) (*domain.Todo, error)
	Update(ctx context.Context, todoID, userID string, input usecase.UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, todoID, userID string) (*domain.Todo, error)
}

type TodoHandler struct {
	todoUsecase todoUsecaser
	logger      *slog.Logger
}

func NewTodoHandler(todoUsecase todoUsecaser, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todoUsecase: todoUsecase, logger: logger.With("component", "todo_handler")}
}

type createTodoRequest struct {
	Text string `json:"text" binding:"required"`
}

type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// todoResponse uses unix-millisecond numbers for timestamps; completedAt
// is an explicit null while the todo is open.
type todoResponse struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	CreatedAt   int64  `json:"createdAt"`
}

func newTodoResponse(t *domain.Todo) todoResponse {
	resp := todoResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UnixMilli(),
	}
	if t.CompletedAt != nil {
		ms := t.CompletedAt.UnixMilli()
		resp.CompletedAt = &ms
	}
	return resp
}

// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Create(c.Request.Context(), middleware.CurrentUser(c).ID, req.Text)
	if err != nil {
		h.logger.Error("create todo", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoUsecase.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.logger.Error("list todos", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}

	resp := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		resp = append(resp, newTodoResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"todos": resp})
}

// GET /todos/:id
// A malformed id is answered exactly like a missing one: 404, no body.
// Same for an id owned by someone else, so existence never leaks.
func (h *TodoHandler) GetByID(c *gin.Context) {
	todoID, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoUsecase.GetByID(c.Request.Context(), todoID, middleware.CurrentUser(c).ID)
	if err != nil {
		h.respondTodoError(c, "get todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": newTodoResponse(todo)})
}

// PATCH /todos/:id
// Only text and completed are honored; anything else in the body is
// ignored. Completion state is normalized in the usecase.
func (h *TodoHandler) Update(c *gin.Context) {
	todoID, ok := parseID(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Update(c.Request.Context(), todoID, middleware.CurrentUser(c).ID, usecase.UpdateTodoInput{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		// Write failures carry the raw error, like Create.
		h.logger.Error("update todo", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, newTodoResponse(todo))
}

// DELETE /todos/:id
func (h *TodoHandler) Delete(c *gin.Context) {
	todoID, ok := parseID(c)
	if !ok {
		return
	}

	todo, err := h.todoUsecase.Delete(c.Request.Context(), todoID, middleware.CurrentUser(c).ID)
	if err != nil {
		h.respondTodoError(c, "delete todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": newTodoResponse(todo)})
}

// parseID validates the :id path parameter. Invalid ids get a 404, not
// a 400, so they are indistinguishable from ids that never existed.
func parseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Status(http.StatusNotFound)
		return "", false
	}
	return id, true
}

func (h *TodoHandler) respondTodoError(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrTodoNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	h.logger.Error(op, "error", err)
	c.Status(http.StatusBadRequest)
}
