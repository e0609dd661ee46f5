package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("todo not found")

// Used with UPDATE / DELETE to verify a row was actually touched.
func checkRowsAffectedOne(cmdTag pgconn.CommandTag, notFound error) error {
	if cmdTag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

// ListQuery is the repository-level todo filter. IncludeDeleted bypasses the
// soft-delete visibility rule; only the escape-hatch service paths set it.
type ListQuery struct {
	Title          *string
	IncludeDeleted bool
	Limit          int
	Skip           int
}

type CountQuery struct {
	Title          *string
	IncludeDeleted bool
}

type TodoRepository interface {
	Create(ctx context.Context, t *Todo) error
	GetByID(ctx context.Context, id int64) (*Todo, error)
	GetByIDWithDeleted(ctx context.Context, id int64) (*Todo, error)
	List(ctx context.Context, q ListQuery) ([]Todo, error)
	Count(ctx context.Context, q CountQuery) (int64, error)
	Update(ctx context.Context, t *Todo) error
	SoftDelete(ctx context.Context, id int64) error
}

type postgresTodoRepo struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) TodoRepository {
	return &postgresTodoRepo{db: db}
}

const todoColumns = `id, title, subtitle, status, "createdAt", "updatedAt"`

func (r *postgresTodoRepo) Create(ctx context.Context, t *Todo) error {
	query := `
		INSERT INTO todo (title, subtitle, status)
		VALUES ($1, $2, $3)
		RETURNING id, "createdAt", "updatedAt"
	`

	if t.Status == "" {
		t.Status = StatusActive
	}

	return r.db.QueryRow(
		ctx,
		query,
		t.Title,
		t.Subtitle,
		t.Status,
	).Scan(
		&t.ID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

func scanTodo(row pgx.Row) (*Todo, error) {
	var t Todo
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Subtitle,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTodoRepo) GetByID(ctx context.Context, id int64) (*Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todo
		WHERE id = $1 AND status <> 'deleted'
	`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *postgresTodoRepo) GetByIDWithDeleted(ctx context.Context, id int64) (*Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todo
		WHERE id = $1
	`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

// todoWhere builds the WHERE clause shared by List and Count.
func todoWhere(title *string, includeDeleted bool) (string, []any) {
	var conds []string
	var args []any

	if !includeDeleted {
		conds = append(conds, "status <> 'deleted'")
	}
	if title != nil {
		args = append(args, *title)
		conds = append(conds, fmt.Sprintf("title = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *postgresTodoRepo) List(ctx context.Context, q ListQuery) ([]Todo, error) {
	where, args := todoWhere(q.Title, q.IncludeDeleted)

	query := `SELECT ` + todoColumns + ` FROM todo` + where + ` ORDER BY id`
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if q.Skip > 0 {
		args = append(args, q.Skip)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Subtitle,
			&t.Status,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

func (r *postgresTodoRepo) Count(ctx context.Context, q CountQuery) (int64, error) {
	where, args := todoWhere(q.Title, q.IncludeDeleted)

	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM todo`+where, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *postgresTodoRepo) Update(ctx context.Context, t *Todo) error {
	query := `
		UPDATE todo
		SET
			title = $1,
			subtitle = $2,
			status = $3,
			"updatedAt" = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(
		ctx,
		query,
		t.Title,
		t.Subtitle,
		t.Status,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag, ErrNotFound)
}

func (r *postgresTodoRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE todo
		SET status = 'deleted', "updatedAt" = now()
		WHERE id = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag, ErrNotFound)
}
