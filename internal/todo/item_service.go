package todo

import (
	"context"
	"errors"
	"time"
)

var (
	// Parent-todo precondition failures keep fixed, path-specific identities
	// so the API layer can report them without leaking datastore errors.
	ErrTodoNotFoundOrDeleted = errors.New("todo not found or deleted")
	ErrAssociatedTodoDeleted = errors.New("associated todo is deleted")
)

// ItemService guards every item operation with the parent-todo liveness
// check. The check runs on each call, never cached: a todo can be
// soft-deleted at any time between an item's creation and a later access.
type ItemService interface {
	CreateItem(ctx context.Context, todoID int64, in CreateItemInput) (*Item, error)
	ListItems(ctx context.Context, todoID int64, q ListItemsQuery) ([]Item, error)
	CountItems(ctx context.Context, todoID int64, content *string) (int64, error)
	GetItem(ctx context.Context, id int64) (*Item, error)
	UpdateItem(ctx context.Context, id int64, in UpdateItemInput) (*Item, error)
	ReplaceItem(ctx context.Context, id int64, in ReplaceItemInput) (*Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

type itemService struct {
	todos TodoService
	repo  ItemRepository
}

func NewItemService(todos TodoService, repo ItemRepository) ItemService {
	return &itemService{todos: todos, repo: repo}
}

// requireLiveTodo is the precondition on the /todos/{id}/items paths. Any
// lookup failure, missing row or soft-deleted row alike, collapses into
// ErrTodoNotFoundOrDeleted.
func (s *itemService) requireLiveTodo(ctx context.Context, todoID int64) error {
	if _, err := s.todos.GetTodo(ctx, todoID); err != nil {
		return ErrTodoNotFoundOrDeleted
	}
	return nil
}

// requireLiveParent is the same check on the /items/{id} paths, where the
// item row exists but its parent may have gone away since.
func (s *itemService) requireLiveParent(ctx context.Context, it *Item) error {
	if _, err := s.todos.GetTodo(ctx, it.TodoID); err != nil {
		return ErrAssociatedTodoDeleted
	}
	return nil
}

func (s *itemService) CreateItem(ctx context.Context, todoID int64, in CreateItemInput) (*Item, error) {
	if err := s.requireLiveTodo(ctx, todoID); err != nil {
		return nil, err
	}

	if in.Content == "" {
		return nil, ErrInvalidInput
	}

	completedAt := in.CompletedAt
	if in.IsCompleted && completedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	if !in.IsCompleted {
		completedAt = nil
	}

	// todoID always comes from the path; a todoId in the body is ignored.
	it := &Item{
		Content:     in.Content,
		IsCompleted: in.IsCompleted,
		CompletedAt: completedAt,
		TodoID:      todoID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *itemService) ListItems(ctx context.Context, todoID int64, q ListItemsQuery) ([]Item, error) {
	if err := s.requireLiveTodo(ctx, todoID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByTodo(ctx, todoID, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}

	return items, nil
}

func (s *itemService) CountItems(ctx context.Context, todoID int64, content *string) (int64, error) {
	if err := s.requireLiveTodo(ctx, todoID); err != nil {
		return 0, err
	}

	return s.repo.CountByTodo(ctx, todoID, content)
}

func (s *itemService) GetItem(ctx context.Context, id int64) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The row exists, but an item under a deleted todo is unreachable.
	if err := s.requireLiveParent(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id int64, in UpdateItemInput) (*Item, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireLiveParent(ctx, existing); err != nil {
		return nil, err
	}

	wasCompleted := existing.IsCompleted

	if in.Content != nil {
		if *in.Content == "" {
			return nil, ErrInvalidInput
		}
		existing.Content = *in.Content
	}

	if in.CompletedAt != nil {
		existing.CompletedAt = in.CompletedAt
	}

	if in.IsCompleted != nil {
		existing.IsCompleted = *in.IsCompleted

		// false→true stamps the completion time; setting false clears it.
		if *in.IsCompleted && !wasCompleted {
			now := time.Now().UTC()
			existing.CompletedAt = &now
		}
		if !*in.IsCompleted {
			existing.CompletedAt = nil
		}
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *itemService) ReplaceItem(ctx context.Context, id int64, in ReplaceItemInput) (*Item, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.requireLiveParent(ctx, existing); err != nil {
		return nil, err
	}

	if in.Content == "" {
		return nil, ErrInvalidInput
	}

	completedAt := in.CompletedAt
	if in.IsCompleted && completedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}
	if !in.IsCompleted {
		completedAt = nil
	}

	replaced := &Item{
		ID:          id,
		Content:     in.Content,
		IsCompleted: in.IsCompleted,
		CompletedAt: completedAt,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
		TodoID:      existing.TodoID,
	}

	if err := s.repo.Update(ctx, replaced); err != nil {
		return nil, err
	}

	return replaced, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.requireLiveParent(ctx, it); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
