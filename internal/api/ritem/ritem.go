package ritem

import (
	"net/http"
	"strconv"

	"tidytodo/server/internal/api"
	"tidytodo/server/internal/api/respond"
	"tidytodo/server/pkg/errmap"
	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/service/sitem"
)

// ItemsAPI serves item CRUD and the bulk reorder endpoint.
type ItemsAPI struct {
	is sitem.ItemService
}

func New(is sitem.ItemService) *ItemsAPI {
	return &ItemsAPI{is: is}
}

func CreateServices(a *ItemsAPI) []api.Service {
	return []api.Service{
		{Path: "GET /api/lists/{listId}/items", Handler: http.HandlerFunc(a.GetByList)},
		{Path: "POST /api/lists/{listId}/items", Handler: http.HandlerFunc(a.Create)},
		{Path: "DELETE /api/lists/{listId}/items", Handler: http.HandlerFunc(a.DeleteAllInList)},
		{Path: "PUT /api/lists/{listId}/items/reorder", Handler: http.HandlerFunc(a.Reorder)},
		{Path: "GET /api/lists/{listId}/items/count", Handler: http.HandlerFunc(a.Count)},
		{Path: "GET /api/lists/{listId}/items/completed/count", Handler: http.HandlerFunc(a.CompletedCount)},
		{Path: "POST /api/lists/{listId}/items/hide-completed", Handler: http.HandlerFunc(a.HideCompleted)},
		{Path: "GET /api/items/{id}", Handler: http.HandlerFunc(a.Get)},
		{Path: "PATCH /api/items/{id}", Handler: http.HandlerFunc(a.Update)},
		{Path: "PATCH /api/items/{id}/toggle", Handler: http.HandlerFunc(a.Toggle)},
		{Path: "PATCH /api/items/{id}/toggle-important", Handler: http.HandlerFunc(a.ToggleImportant)},
		{Path: "DELETE /api/items/{id}", Handler: http.HandlerFunc(a.Delete)},
	}
}

// GetByList returns a list's items in canonical order, or filtered by
// completion status (legacy newest-first ordering) when ?completed= is
// present.
func (a *ItemsAPI) GetByList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid completed filter: "+raw, err))
			return
		}
		items, err := a.is.ListByCompleted(r.Context(), listID, completed)
		if err != nil {
			errmap.WriteJSON(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
		return
	}
	items, err := a.is.ListOrdered(r.Context(), listID)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

func (a *ItemsAPI) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := a.is.Get(r.Context(), id)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

type createItemRequest struct {
	Text *string `json:"text"`
}

func (a *ItemsAPI) Create(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	var req createItemRequest
	if err := respond.Decode(r, &req); err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid request body", err))
		return
	}
	if req.Text == nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "missing required field: text", nil))
		return
	}
	item, err := a.is.Create(r.Context(), listID, *req.Text)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, item)
}

type updateItemRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

func (a *ItemsAPI) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateItemRequest
	if err := respond.Decode(r, &req); err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid request body", err))
		return
	}

	ctx := r.Context()
	switch {
	case req.Text != nil && req.Completed != nil:
		item, err := a.is.Update(ctx, id, *req.Text, *req.Completed)
		if err != nil {
			errmap.WriteJSON(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, item)
	case req.Text != nil:
		item, err := a.is.UpdateText(ctx, id, *req.Text)
		if err != nil {
			errmap.WriteJSON(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, item)
	case req.Completed != nil:
		item, err := a.is.SetCompleted(ctx, id, *req.Completed)
		if err != nil {
			errmap.WriteJSON(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, item)
	default:
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument,
			"at least one field (text or completed) must be provided", nil))
	}
}

func (a *ItemsAPI) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := a.is.ToggleCompleted(r.Context(), id)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (a *ItemsAPI) ToggleImportant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := a.is.ToggleImportant(r.Context(), id)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, item)
}

func (a *ItemsAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := a.is.Delete(r.Context(), id); err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *ItemsAPI) DeleteAllInList(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	deleted, err := a.is.DeleteAllInList(r.Context(), listID)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"deletedCount": deleted, "listId": listID})
}

func (a *ItemsAPI) Count(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	count, err := a.is.CountByList(r.Context(), listID)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"count": count, "listId": listID})
}

func (a *ItemsAPI) CompletedCount(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	count, err := a.is.CountCompletedByList(r.Context(), listID)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"completedCount": count, "listId": listID})
}

func (a *ItemsAPI) HideCompleted(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	hidden, err := a.is.HideCompleted(r.Context(), listID)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"hiddenCount": hidden, "listId": listID})
}

type reorderRequest struct {
	ItemIDs *[]string `json:"itemIds"`
}

// Reorder replaces the entire position assignment of a list. The payload
// carries item ids as ULID strings; parsing failures are input errors,
// everything past parsing is the ordering core's contract.
func (a *ItemsAPI) Reorder(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listId")
	if !ok {
		return
	}
	var req reorderRequest
	if err := respond.Decode(r, &req); err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid request body", err))
		return
	}
	if req.ItemIDs == nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "missing required field: itemIds", nil))
		return
	}

	ids := make([]idwrap.IDWrap, 0, len(*req.ItemIDs))
	for _, raw := range *req.ItemIDs {
		id, err := idwrap.NewText(raw)
		if err != nil {
			errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid item id: "+raw, err))
			return
		}
		ids = append(ids, id)
	}

	if err := a.is.Reorder(r.Context(), listID, ids); err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (idwrap.IDWrap, bool) {
	id, err := idwrap.NewText(r.PathValue(name))
	if err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid id: "+r.PathValue(name), err))
		return idwrap.IDWrap{}, false
	}
	return id, true
}
