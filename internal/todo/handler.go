package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/chayapol-w/todo-item-backend/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc     TodoService
	creator TodoCreator
}

func NewHandler(svc TodoService, creator TodoCreator) *Handler {
	return &Handler{svc: svc, creator: creator}
}

func idParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, errors.New("missing id")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// POST /todos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateTodoWithItemsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	t, err := h.creator.CreateTodoWithItems(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "todo not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "failed to create todo")
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// GET /todos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListTodos(r.Context(), ListTodosQuery{
		Title: utils.QueryString(r, "title"),
		Limit: utils.QueryInt(r, "limit", 0),
		Skip:  utils.QueryInt(r, "skip", 0),
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// GET /todos/count
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CountTodos(r.Context(), CountTodosQuery{
		Title: utils.QueryString(r, "title"),
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to count todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, CountResult{Count: count})
}

// GET /todos/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := h.svc.GetTodo(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to get todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, t)
}

// PATCH /todos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in UpdateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if _, err := h.svc.UpdateTodo(r.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "todo not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "failed to update todo")
		}
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

// PUT /todos/{id}
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in ReplaceTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if _, err := h.svc.ReplaceTodo(r.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
			utils.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			utils.WriteError(w, http.StatusNotFound, "todo not found")
		default:
			utils.WriteError(w, http.StatusInternalServerError, "failed to replace todo")
		}
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

// DELETE /todos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteTodo(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "todo not found")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}
