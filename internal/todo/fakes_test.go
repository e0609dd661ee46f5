package todo

import (
	"context"
	"sort"
	"time"
)

// In-memory repository fakes mirroring the SQL semantics closely enough for
// service and handler tests: generated ids, timestamp defaults, soft-delete
// visibility, ordering by id.

type fakeTodoRepo struct {
	nextID int64
	rows   map[int64]Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{rows: make(map[int64]Todo)}
}

func (r *fakeTodoRepo) Create(_ context.Context, t *Todo) error {
	r.nextID++
	t.ID = r.nextID
	if t.Status == "" {
		t.Status = StatusActive
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	stored := *t
	stored.Items = nil
	r.rows[t.ID] = stored
	return nil
}

func (r *fakeTodoRepo) GetByID(_ context.Context, id int64) (*Todo, error) {
	t, ok := r.rows[id]
	if !ok || t.Deleted() {
		return nil, ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *fakeTodoRepo) GetByIDWithDeleted(_ context.Context, id int64) (*Todo, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *fakeTodoRepo) matching(q ListQuery) []Todo {
	var out []Todo
	for _, t := range r.rows {
		if !q.IncludeDeleted && t.Deleted() {
			continue
		}
		if q.Title != nil && t.Title != *q.Title {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeTodoRepo) List(_ context.Context, q ListQuery) ([]Todo, error) {
	out := r.matching(q)
	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return nil, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeTodoRepo) Count(_ context.Context, q CountQuery) (int64, error) {
	return int64(len(r.matching(ListQuery{Title: q.Title, IncludeDeleted: q.IncludeDeleted}))), nil
}

func (r *fakeTodoRepo) Update(_ context.Context, t *Todo) error {
	existing, ok := r.rows[t.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Title = t.Title
	existing.Subtitle = t.Subtitle
	existing.Status = t.Status
	existing.UpdatedAt = t.UpdatedAt
	r.rows[t.ID] = existing
	return nil
}

func (r *fakeTodoRepo) SoftDelete(_ context.Context, id int64) error {
	existing, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	existing.Status = StatusDeleted
	existing.UpdatedAt = time.Now().UTC()
	r.rows[id] = existing
	return nil
}

type fakeItemRepo struct {
	nextID int64
	rows   map[int64]Item

	// When failOn is n > 0, the nth Create call fails with failErr.
	createCalls int
	failOn      int
	failErr     error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{rows: make(map[int64]Item)}
}

func (r *fakeItemRepo) Create(_ context.Context, it *Item) error {
	r.createCalls++
	if r.failOn > 0 && r.createCalls == r.failOn {
		return r.failErr
	}

	r.nextID++
	it.ID = r.nextID
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	r.rows[it.ID] = *it
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := r.rows[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	out := it
	return &out, nil
}

func (r *fakeItemRepo) itemsOf(todoID int64, content *string) []Item {
	var out []Item
	for _, it := range r.rows {
		if it.TodoID != todoID {
			continue
		}
		if content != nil && it.Content != *content {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeItemRepo) ListByTodo(_ context.Context, todoID int64, q ListItemsQuery) ([]Item, error) {
	out := r.itemsOf(todoID, q.Content)
	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return nil, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *fakeItemRepo) ListByTodos(_ context.Context, todoIDs []int64) ([]Item, error) {
	var out []Item
	for _, id := range todoIDs {
		out = append(out, r.itemsOf(id, nil)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeItemRepo) CountByTodo(_ context.Context, todoID int64, content *string) (int64, error) {
	return int64(len(r.itemsOf(todoID, content))), nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *Item) error {
	existing, ok := r.rows[it.ID]
	if !ok {
		return ErrItemNotFound
	}
	existing.Content = it.Content
	existing.IsCompleted = it.IsCompleted
	existing.CompletedAt = it.CompletedAt
	existing.UpdatedAt = it.UpdatedAt
	r.rows[it.ID] = existing
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeItemRepo) DeleteByTodo(_ context.Context, todoID int64) error {
	for id, it := range r.rows {
		if it.TodoID == todoID {
			delete(r.rows, id)
		}
	}
	return nil
}

// newTestServices wires the full service stack over fresh fakes.
func newTestServices() (TodoService, ItemService, TodoCreator, *fakeTodoRepo, *fakeItemRepo) {
	todoRepo := newFakeTodoRepo()
	itemRepo := newFakeItemRepo()
	todoSvc := NewTodoService(todoRepo, itemRepo)
	itemSvc := NewItemService(todoSvc, itemRepo)
	creator := NewTodoCreator(todoSvc, itemRepo)
	return todoSvc, itemSvc, creator, todoRepo, itemRepo
}
