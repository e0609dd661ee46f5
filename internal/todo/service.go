package todo

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
)

// DefaultListLimit applies when a list request does not specify one.
const DefaultListLimit = 100

// TodoService presents the "live todo" view over the physical table: rows
// whose status is deleted stay on disk but are invisible to every default
// operation. The WithDeleted variants bypass that rule for internal use and
// are not routed.
type TodoService interface {
	CreateTodo(ctx context.Context, in CreateTodoInput) (*Todo, error)
	GetTodo(ctx context.Context, id int64) (*Todo, error)
	GetTodoWithItems(ctx context.Context, id int64) (*Todo, error)
	ListTodos(ctx context.Context, q ListTodosQuery) (*ListTodosResult, error)
	CountTodos(ctx context.Context, q CountTodosQuery) (int64, error)
	UpdateTodo(ctx context.Context, id int64, in UpdateTodoInput) (*Todo, error)
	ReplaceTodo(ctx context.Context, id int64, in ReplaceTodoInput) (*Todo, error)
	DeleteTodo(ctx context.Context, id int64) error

	GetTodoWithDeleted(ctx context.Context, id int64) (*Todo, error)
	ListTodosWithDeleted(ctx context.Context, q ListTodosQuery) ([]Todo, error)
	CountTodosWithDeleted(ctx context.Context, q CountTodosQuery) (int64, error)
}

type todoService struct {
	repo  TodoRepository
	items ItemRepository
}

func NewTodoService(repo TodoRepository, items ItemRepository) TodoService {
	return &todoService{repo: repo, items: items}
}

func (s *todoService) CreateTodo(ctx context.Context, in CreateTodoInput) (*Todo, error) {
	if in.Title == "" {
		return nil, ErrInvalidInput
	}

	status := StatusActive
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	t := &Todo{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Status:   status,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *todoService) GetTodo(ctx context.Context, id int64) (*Todo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *todoService) GetTodoWithItems(ctx context.Context, id int64) (*Todo, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListByTodo(ctx, id, ListItemsQuery{})
	if err != nil {
		return nil, err
	}
	t.Items = items

	return t, nil
}

func (s *todoService) ListTodos(ctx context.Context, q ListTodosQuery) (*ListTodosResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	skip := q.Skip
	if skip < 0 {
		skip = 0
	}

	todos, err := s.repo.List(ctx, ListQuery{
		Title: q.Title,
		Limit: limit,
		Skip:  skip,
	})
	if err != nil {
		return nil, err
	}

	// Total reflects the full live match count, not the returned page.
	total, err := s.repo.Count(ctx, CountQuery{Title: q.Title})
	if err != nil {
		return nil, err
	}

	if err := s.attachItems(ctx, todos); err != nil {
		return nil, err
	}

	if todos == nil {
		todos = []Todo{}
	}

	return &ListTodosResult{
		Data:  todos,
		Total: total,
		Limit: limit,
		Skip:  skip,
	}, nil
}

// attachItems eagerly loads the items of every todo on a list page.
func (s *todoService) attachItems(ctx context.Context, todos []Todo) error {
	if len(todos) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(todos))
	for i := range todos {
		ids = append(ids, todos[i].ID)
	}

	items, err := s.items.ListByTodos(ctx, ids)
	if err != nil {
		return err
	}

	byTodo := make(map[int64][]Item, len(todos))
	for _, it := range items {
		byTodo[it.TodoID] = append(byTodo[it.TodoID], it)
	}
	for i := range todos {
		todos[i].Items = byTodo[todos[i].ID]
	}

	return nil
}

func (s *todoService) CountTodos(ctx context.Context, q CountTodosQuery) (int64, error) {
	return s.repo.Count(ctx, CountQuery{Title: q.Title})
}

func (s *todoService) UpdateTodo(ctx context.Context, id int64, in UpdateTodoInput) (*Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrInvalidInput
		}
		existing.Title = *in.Title
	}

	if in.Subtitle != nil {
		existing.Subtitle = in.Subtitle
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		existing.Status = *in.Status
	}

	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (s *todoService) ReplaceTodo(ctx context.Context, id int64, in ReplaceTodoInput) (*Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title == "" {
		return nil, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	replaced := &Todo{
		ID:        id,
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		Status:    status,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, replaced); err != nil {
		return nil, err
	}

	return replaced, nil
}

// DeleteTodo removes the todo's items physically and then soft-deletes the
// todo itself. Items go first: if the second step fails the todo is still
// live, rather than a hidden todo keeping live-looking items around.
func (s *todoService) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.items.DeleteByTodo(ctx, id); err != nil {
		return err
	}

	return s.repo.SoftDelete(ctx, id)
}

func (s *todoService) GetTodoWithDeleted(ctx context.Context, id int64) (*Todo, error) {
	return s.repo.GetByIDWithDeleted(ctx, id)
}

func (s *todoService) ListTodosWithDeleted(ctx context.Context, q ListTodosQuery) ([]Todo, error) {
	return s.repo.List(ctx, ListQuery{
		Title:          q.Title,
		IncludeDeleted: true,
		Limit:          q.Limit,
		Skip:           q.Skip,
	})
}

func (s *todoService) CountTodosWithDeleted(ctx context.Context, q CountTodosQuery) (int64, error) {
	return s.repo.Count(ctx, CountQuery{Title: q.Title, IncludeDeleted: true})
}
