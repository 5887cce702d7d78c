package rview

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"tidytodo/server/internal/api"
	"tidytodo/server/pkg/idwrap"
	"tidytodo/server/pkg/model/mitem"
	"tidytodo/server/pkg/model/mlist"
	"tidytodo/server/pkg/service/sitem"
	"tidytodo/server/pkg/service/slist"
)

//go:embed templates/*.html
var templateFS embed.FS

// ViewsAPI renders the server-side HTML pages over the same services the
// JSON API uses.
type ViewsAPI struct {
	ls   slist.ListService
	is   sitem.ItemService
	tmpl *template.Template
}

func New(ls slist.ListService, is sitem.ItemService) *ViewsAPI {
	return &ViewsAPI{
		ls:   ls,
		is:   is,
		tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func CreateServices(v *ViewsAPI) []api.Service {
	return []api.Service{
		{Path: "GET /{$}", Handler: http.HandlerFunc(v.Home)},
		{Path: "GET /lists", Handler: http.HandlerFunc(v.Lists)},
		{Path: "GET /lists/{listId}/items", Handler: http.HandlerFunc(v.Items)},
	}
}

func (v *ViewsAPI) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/lists", http.StatusFound)
}

type listsPage struct {
	Lists    []mlist.List
	HasLists bool
	Error    string
}

func (v *ViewsAPI) Lists(w http.ResponseWriter, r *http.Request) {
	page := listsPage{}
	lists, err := v.ls.GetAll(r.Context())
	if err != nil {
		slog.Error("render lists", "error", err)
		page.Error = "Unable to load lists. Please try again."
	} else {
		page.Lists = lists
		page.HasLists = len(lists) > 0
	}
	v.render(w, "lists.html", page)
}

type itemsPage struct {
	List          *mlist.List
	Items         []mitem.Item
	HasItems      bool
	HideCompleted bool
	Error         string
}

func (v *ViewsAPI) Items(w http.ResponseWriter, r *http.Request) {
	hideCompleted, _ := strconv.ParseBool(r.URL.Query().Get("hideCompleted"))
	page := itemsPage{HideCompleted: hideCompleted}

	listID, err := idwrap.NewText(r.PathValue("listId"))
	if err != nil {
		page.Error = "Unknown list."
		v.render(w, "items.html", page)
		return
	}

	list, err := v.ls.Get(r.Context(), listID)
	if err != nil {
		page.Error = "Unable to load this list. It may have been deleted."
		v.render(w, "items.html", page)
		return
	}
	page.List = list

	items, err := v.is.ListOrdered(r.Context(), listID)
	if err != nil {
		slog.Error("render items", "list_id", listID.String(), "error", err)
		page.Error = "Unable to load items. Please try again."
		v.render(w, "items.html", page)
		return
	}
	visible := items[:0]
	for _, it := range items {
		if it.Hidden || (hideCompleted && it.Completed) {
			continue
		}
		visible = append(visible, it)
	}
	items = visible
	page.Items = items
	page.HasItems = len(items) > 0
	v.render(w, "items.html", page)
}

func (v *ViewsAPI) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := v.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
	}
}
