package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListByTodo(ctx context.Context, todoID int64, q ListItemsQuery) ([]Item, error)
	// ListByTodos loads the items of several todos in one round trip, for
	// eager includes on list responses.
	ListByTodos(ctx context.Context, todoIDs []int64) ([]Item, error)
	CountByTodo(ctx context.Context, todoID int64, content *string) (int64, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id int64) error
	DeleteByTodo(ctx context.Context, todoID int64) error
}

type postgresItemRepo struct {
	db *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) ItemRepository {
	return &postgresItemRepo{db: db}
}

const itemColumns = `id, content, "isCompleted", "completedAt", "createdAt", "updatedAt", "todoId"`

func (r *postgresItemRepo) Create(ctx context.Context, it *Item) error {
	query := `
		INSERT INTO item (content, "isCompleted", "completedAt", "todoId")
		VALUES ($1, $2, $3, $4)
		RETURNING id, "createdAt", "updatedAt"
	`

	return r.db.QueryRow(
		ctx,
		query,
		it.Content,
		it.IsCompleted,
		it.CompletedAt,
		it.TodoID,
	).Scan(
		&it.ID,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
}

func (r *postgresItemRepo) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM item
		WHERE id = $1
	`

	var it Item
	err := r.db.QueryRow(ctx, query, id).Scan(
		&it.ID,
		&it.Content,
		&it.IsCompleted,
		&it.CompletedAt,
		&it.CreatedAt,
		&it.UpdatedAt,
		&it.TodoID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &it, nil
}

func (r *postgresItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.Content,
			&it.IsCompleted,
			&it.CompletedAt,
			&it.CreatedAt,
			&it.UpdatedAt,
			&it.TodoID,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *postgresItemRepo) ListByTodo(ctx context.Context, todoID int64, q ListItemsQuery) ([]Item, error) {
	query := `SELECT ` + itemColumns + ` FROM item WHERE "todoId" = $1`
	args := []any{todoID}

	if q.Content != nil {
		args = append(args, *q.Content)
		query += fmt.Sprintf(` AND content = $%d`, len(args))
	}

	query += ` ORDER BY id`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	return r.queryItems(ctx, query, args...)
}

func (r *postgresItemRepo) ListByTodos(ctx context.Context, todoIDs []int64) ([]Item, error) {
	if len(todoIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM item
		WHERE "todoId" = ANY($1)
		ORDER BY id
	`

	return r.queryItems(ctx, query, todoIDs)
}

func (r *postgresItemRepo) CountByTodo(ctx context.Context, todoID int64, content *string) (int64, error) {
	query := `SELECT count(*) FROM item WHERE "todoId" = $1`
	args := []any{todoID}

	if content != nil {
		args = append(args, *content)
		query += fmt.Sprintf(` AND content = $%d`, len(args))
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postgresItemRepo) Update(ctx context.Context, it *Item) error {
	query := `
		UPDATE item
		SET
			content = $1,
			"isCompleted" = $2,
			"completedAt" = $3,
			"updatedAt" = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(
		ctx,
		query,
		it.Content,
		it.IsCompleted,
		it.CompletedAt,
		it.UpdatedAt,
		it.ID,
	)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag, ErrItemNotFound)
}

func (r *postgresItemRepo) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM item
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag, ErrItemNotFound)
}

func (r *postgresItemRepo) DeleteByTodo(ctx context.Context, todoID int64) error {
	query := `
		DELETE FROM item
		WHERE "todoId" = $1
	`

	// Zero rows is fine here; a todo may simply have no items.
	_, err := r.db.Exec(ctx, query, todoID)
	return err
}
