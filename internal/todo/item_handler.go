package todo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chayapol-w/todo-item-backend/pkg/utils"
)

// Messages promised by the API for the two parent-precondition failure
// paths. The wording differs so a client can tell which check tripped.
const (
	msgTodoNotFoundOrDeleted = "Todo not found or deleted"
	msgAssociatedTodoDeleted = "Associated Todo is deleted"
)

type ItemHandler struct {
	svc ItemService
}

func NewItemHandler(svc ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

func (h *ItemHandler) writeItemError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTodoNotFoundOrDeleted):
		utils.WriteError(w, http.StatusNotFound, msgTodoNotFoundOrDeleted)
	case errors.Is(err, ErrAssociatedTodoDeleted):
		utils.WriteError(w, http.StatusNotFound, msgAssociatedTodoDeleted)
	case errors.Is(err, ErrItemNotFound):
		utils.WriteError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, ErrInvalidInput):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		utils.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// POST /todos/{id}/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	it, err := h.svc.CreateItem(r.Context(), todoID, in)
	if err != nil {
		h.writeItemError(w, err, "failed to create item")
		return
	}

	utils.WriteJSON(w, http.StatusOK, it)
}

// GET /todos/{id}/items
func (h *ItemHandler) ListForTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	items, err := h.svc.ListItems(r.Context(), todoID, ListItemsQuery{
		Content: utils.QueryString(r, "content"),
		Limit:   utils.QueryInt(r, "limit", 0),
		Skip:    utils.QueryInt(r, "skip", 0),
	})
	if err != nil {
		h.writeItemError(w, err, "failed to list items")
		return
	}

	utils.WriteJSON(w, http.StatusOK, items)
}

// GET /todos/{id}/items/count
func (h *ItemHandler) CountForTodo(w http.ResponseWriter, r *http.Request) {
	todoID, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	count, err := h.svc.CountItems(r.Context(), todoID, utils.QueryString(r, "content"))
	if err != nil {
		h.writeItemError(w, err, "failed to count items")
		return
	}

	utils.WriteJSON(w, http.StatusOK, CountResult{Count: count})
}

// GET /items/{id}
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		h.writeItemError(w, err, "failed to get item")
		return
	}

	utils.WriteJSON(w, http.StatusOK, it)
}

// PATCH /items/{id}
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in UpdateItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if _, err := h.svc.UpdateItem(r.Context(), id, in); err != nil {
		h.writeItemError(w, err, "failed to update item")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

// PUT /items/{id}
func (h *ItemHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in ReplaceItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if _, err := h.svc.ReplaceItem(r.Context(), id, in); err != nil {
		h.writeItemError(w, err, "failed to replace item")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}

// DELETE /items/{id}
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		h.writeItemError(w, err, "failed to delete item")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}
