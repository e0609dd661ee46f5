package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/chayapol-w/todo-item-backend/internal/env"
	"github.com/chayapol-w/todo-item-backend/internal/todo"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	env.Init()

	ctx := context.Background()

	cfg := config{
		addr: env.GetString("API_PORT", ":8000"),
		db: dbConfig{
			dsn: env.GetString("GOOSE_DBSTRING", "host=localhost port=5432 user=postgres password=postgres dbname=todo sslmode=disable"),
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	pool, err := pgxpool.New(ctx, cfg.db.dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		panic(err)
	}
	logger.Info("database pool connected")
	defer pool.Close()

	todoRepo := todo.NewTodoRepository(pool)
	itemRepo := todo.NewItemRepository(pool)
	todoSvc := todo.NewTodoService(todoRepo, itemRepo)
	itemSvc := todo.NewItemService(todoSvc, itemRepo)
	creator := todo.NewTodoCreator(todoSvc, itemRepo)

	api := application{
		config:      cfg,
		db:          pool,
		todoService: todoSvc,
		itemService: itemSvc,
		todoCreator: creator,
	}

	if err := api.run(ctx, api.mount()); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
