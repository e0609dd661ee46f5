package todo

import (
	"context"
	"time"
)

// TodoCreator builds a todo together with an initial batch of items as one
// API-level operation.
type TodoCreator interface {
	CreateTodoWithItems(ctx context.Context, in CreateTodoWithItemsInput) (*Todo, error)
}

type todoCreator struct {
	todos TodoService
	items ItemRepository
}

// NewTodoCreator wires the composed create path. Items are written through
// the repository directly: the todo was created in-process a moment earlier,
// so the per-item liveness check of ItemService would be redundant.
func NewTodoCreator(todos TodoService, items ItemRepository) TodoCreator {
	return &todoCreator{todos: todos, items: items}
}

// CreateTodoWithItems creates the todo, then each item with the new todo's
// id, then re-reads the todo with its items for the response. The steps are
// a best-effort ordered sequence, not a transaction; a failure partway
// through leaves the todo and any already-created items persisted.
func (c *todoCreator) CreateTodoWithItems(ctx context.Context, in CreateTodoWithItemsInput) (*Todo, error) {
	t, err := c.todos.CreateTodo(ctx, in.Todo)
	if err != nil {
		return nil, err
	}

	for _, itemIn := range in.Items {
		if itemIn.Content == "" {
			return nil, ErrInvalidInput
		}

		it := &Item{
			Content:     itemIn.Content,
			IsCompleted: itemIn.IsCompleted,
			CompletedAt: itemIn.CompletedAt,
			TodoID:      t.ID,
		}
		if itemIn.IsCompleted && it.CompletedAt == nil {
			now := time.Now().UTC()
			it.CompletedAt = &now
		}
		if !itemIn.IsCompleted {
			it.CompletedAt = nil
		}

		if err := c.items.Create(ctx, it); err != nil {
			return nil, err
		}
	}

	return c.todos.GetTodoWithItems(ctx, t.ID)
}
