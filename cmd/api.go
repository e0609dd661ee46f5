package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chayapol-w/todo-item-backend/internal/env"
	"github.com/chayapol-w/todo-item-backend/internal/todo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbConfig struct {
	dsn string
}

type config struct {
	addr string
	db   dbConfig
}

type application struct {
	config      config
	db          *pgxpool.Pool
	todoService todo.TodoService
	itemService todo.ItemService
	todoCreator todo.TodoCreator
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{env.GetString("FRONTEND_URL", "http://localhost:3000")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("all good"))
	})

	todoHandler := todo.NewHandler(app.todoService, app.todoCreator)
	itemHandler := todo.NewItemHandler(app.itemService)

	r.Route("/todos", func(r chi.Router) {
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.Get("/count", todoHandler.Count)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", todoHandler.GetByID)
			r.Patch("/", todoHandler.Update)
			r.Put("/", todoHandler.Replace)
			r.Delete("/", todoHandler.Delete)

			r.Post("/items", itemHandler.Create)
			r.Get("/items", itemHandler.ListForTodo)
			r.Get("/items/count", itemHandler.CountForTodo)
		})
	})

	r.Route("/items/{id}", func(r chi.Router) {
		r.Get("/", itemHandler.GetByID)
		r.Patch("/", itemHandler.Update)
		r.Put("/", itemHandler.Replace)
		r.Delete("/", itemHandler.Delete)
	})

	return r
}

// run serves until the context is cancelled, a shutdown signal arrives, or
// the listener fails. In-flight requests get the shutdown grace period.
func (app *application) run(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", app.config.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down server...")
	case sig := <-quit:
		slog.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}

	slog.Info("server exited gracefully")
	return nil
}
