package rlist

import (
	"net/http"
	"strings"

	"tidytodo/server/internal/api"
	"tidytodo/server/internal/api/respond"
	"tidytodo/server/pkg/errmap"
	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/service/slist"
)

// ListsAPI serves the /api/lists REST surface.
type ListsAPI struct {
	ls slist.ListService
}

func New(ls slist.ListService) *ListsAPI {
	return &ListsAPI{ls: ls}
}

func CreateServices(a *ListsAPI) []api.Service {
	return []api.Service{
		{Path: "GET /api/lists", Handler: http.HandlerFunc(a.GetAll)},
		{Path: "GET /api/lists/count", Handler: http.HandlerFunc(a.Count)},
		{Path: "GET /api/lists/exists", Handler: http.HandlerFunc(a.Exists)},
		{Path: "GET /api/lists/{id}", Handler: http.HandlerFunc(a.Get)},
		{Path: "POST /api/lists", Handler: http.HandlerFunc(a.Create)},
		{Path: "PATCH /api/lists/{id}", Handler: http.HandlerFunc(a.Update)},
		{Path: "DELETE /api/lists/{id}", Handler: http.HandlerFunc(a.Delete)},
	}
}

type listRequest struct {
	Name *string `json:"name"`
}

func (a *ListsAPI) GetAll(w http.ResponseWriter, r *http.Request) {
	lists, err := a.ls.GetAll(r.Context())
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, lists)
}

func (a *ListsAPI) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	list, err := a.ls.Get(r.Context(), id)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (a *ListsAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := respond.Decode(r, &req); err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid request body", err))
		return
	}
	if req.Name == nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "missing required field: name", nil))
		return
	}
	list, err := a.ls.Create(r.Context(), *req.Name)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, list)
}

func (a *ListsAPI) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req listRequest
	if err := respond.Decode(r, &req); err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid request body", err))
		return
	}
	if req.Name == nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "missing required field: name", nil))
		return
	}
	list, err := a.ls.Rename(r.Context(), id, *req.Name)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (a *ListsAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := a.ls.Delete(r.Context(), id); err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *ListsAPI) Count(w http.ResponseWriter, r *http.Request) {
	count, err := a.ls.Count(r.Context())
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (a *ListsAPI) Exists(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "missing required parameter: name", nil))
		return
	}
	exists, err := a.ls.ExistsByName(r.Context(), name)
	if err != nil {
		errmap.WriteJSON(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"exists": exists, "name": name})
}

// pathID parses a ULID path segment, answering 400 itself on garbage.
func pathID(w http.ResponseWriter, r *http.Request, name string) (idwrap.IDWrap, bool) {
	id, err := idwrap.NewText(r.PathValue(name))
	if err != nil {
		errmap.WriteJSON(w, errmap.New(errmap.CodeInvalidArgument, "invalid id: "+r.PathValue(name), err))
		return idwrap.IDWrap{}, false
	}
	return id, true
}
