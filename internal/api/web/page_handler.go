package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/osteele/liquid"
	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/api/middleware"
	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/dashboard"
)

// ToastObserver is told about every toast a page shows.
type ToastObserver func(page string, kind dashboard.ToastKind)

// PageHandler drives one dashboard page from HTTP requests. GET requests
// render the current screen; POST requests change it and redirect back.
type PageHandler[T domain.Entity] struct {
	// ListPath renders the list; ActionPath prefixes every action route.
	ListPath   string
	ActionPath string
	Title      string

	page    *dashboard.Page[T]
	screen  *dashboard.Screen[T]
	flashes *Flashes
	nav     []NavItem
	observe ToastObserver
	log     zerolog.Logger
}

// NavItem is one sidebar link.
type NavItem struct {
	Href  string
	Label string
}

func NewPageHandler[T domain.Entity](
	listPath, actionPath, title string,
	page *dashboard.Page[T],
	screen *dashboard.Screen[T],
	flashes *Flashes,
	nav []NavItem,
	log zerolog.Logger,
) *PageHandler[T] {
	return &PageHandler[T]{
		ListPath:   listPath,
		ActionPath: actionPath,
		Title:      title,
		page:       page,
		screen:     screen,
		flashes:    flashes,
		nav:        nav,
		log:        log.With().Str("page", page.Controller().Schema().Name).Logger(),
	}
}

// SetToastObserver installs fn. Call before serving.
func (h *PageHandler[T]) SetToastObserver(fn ToastObserver) { h.observe = fn }

// Register mounts the page routes on g.
func (h *PageHandler[T]) Register(g *echo.Group) {
	g.GET(h.ListPath, h.List)
	g.GET(h.ActionPath+"/new", h.New)
	g.GET(h.ActionPath+"/:id/edit", h.Edit)
	g.POST(h.ActionPath+"/form", h.Submit)
	g.POST(h.ActionPath+"/modal/close", h.CloseModal)
	g.GET(h.ActionPath+"/:id/delete", h.AskDelete)
	g.POST(h.ActionPath+"/:id/delete", h.ConfirmDelete)
	g.POST(h.ActionPath+"/:id/delete/cancel", h.CancelDelete)
}

// List handles the list page. Query parameters map to controller events:
// q searches (empty clears), className filters, detail opens the detail
// panel on a row (empty closes it), menu toggles a row menu. Without menu
// any open menu closes, as a click elsewhere would.
func (h *PageHandler[T]) List(c echo.Context) error {
	ctx := c.Request().Context()
	ctl := h.page.Controller()
	params := c.QueryParams()

	if params.Has("q") {
		q := c.QueryParam("q")
		var err error
		if q == "" {
			err = ctl.ClearSearch(ctx)
		} else {
			err = ctl.SubmitSearch(ctx, q)
		}
		if err != nil {
			h.log.Warn().Err(err).Str("keyword", q).Msg("search failed")
		}
	}
	if params.Has("className") {
		if err := ctl.SelectClass(ctx, c.QueryParam("className")); err != nil {
			h.log.Warn().Err(err).Msg("class filter failed")
		}
	}
	if params.Has("detail") {
		if id := c.QueryParam("detail"); id == "" {
			ctl.CloseDetail()
		} else if err := ctl.SelectRow(ctx, id); err != nil {
			h.log.Warn().Err(err).Str("id", id).Msg("detail failed")
		}
	}
	if params.Has("menu") {
		ctl.ToggleDropdown(c.QueryParam("menu"))
	} else {
		ctl.ClickOutside("")
	}

	return h.render(c, http.StatusOK)
}

// New opens the empty add form.
func (h *PageHandler[T]) New(c echo.Context) error {
	h.page.Controller().OpenAdd()
	return h.render(c, http.StatusOK)
}

// Edit loads the record and opens the pre-filled form.
func (h *PageHandler[T]) Edit(c echo.Context) error {
	if err := h.page.Controller().RequestEdit(c.Request().Context(), c.Param("id")); err != nil {
		h.page.Controller().Toast(dashboard.ToastError, dashboard.MsgLoadFailed)
	}
	return h.render(c, http.StatusOK)
}

// Submit copies the posted fields into the open form and submits it. An
// invalid form re-renders with its errors; otherwise the outcome toast is
// flashed and the browser goes back to the list.
func (h *PageHandler[T]) Submit(c echo.Context) error {
	ctl := h.page.Controller()
	if _, ok := ctl.Form(); !ok {
		return c.Redirect(http.StatusSeeOther, h.ListPath)
	}

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	for _, field := range ctl.Schema().Fields {
		if !form.Has(field) {
			continue
		}
		if err := ctl.Input(field, form.Get(field)); err != nil {
			return err
		}
	}

	errs, err := ctl.Submit(c.Request().Context())
	if !errs.Valid() {
		return h.render(c, http.StatusUnprocessableEntity)
	}
	if err != nil {
		h.log.Warn().Err(err).Msg("submit failed")
	}
	return h.redirect(c)
}

// CloseModal dismisses the form without saving.
func (h *PageHandler[T]) CloseModal(c echo.Context) error {
	h.page.Controller().CloseModal()
	return h.redirect(c)
}

// AskDelete opens the delete confirmation for the row.
func (h *PageHandler[T]) AskDelete(c echo.Context) error {
	h.page.Controller().ClickDelete(c.Param("id"))
	return h.render(c, http.StatusOK)
}

// ConfirmDelete deletes the row the confirmation was opened for.
func (h *PageHandler[T]) ConfirmDelete(c echo.Context) error {
	ctl := h.page.Controller()
	if id := c.Param("id"); ctl.DeleteTarget() != id {
		ctl.ClickDelete(id)
	}
	if err := ctl.ConfirmDelete(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("delete failed")
	}
	return h.redirect(c)
}

func (h *PageHandler[T]) CancelDelete(c echo.Context) error {
	h.page.Controller().CancelDelete()
	return h.redirect(c)
}

// redirect moves pending toasts into the session and sends the browser to
// the list.
func (h *PageHandler[T]) redirect(c echo.Context) error {
	toasts := h.screen.DrainToasts()
	h.count(toasts)
	if err := h.flashes.Add(c, toasts...); err != nil {
		h.log.Warn().Err(err).Msg("flash save failed")
	}
	return c.Redirect(http.StatusSeeOther, h.ListPath)
}

func (h *PageHandler[T]) render(c echo.Context, status int) error {
	fresh := h.screen.DrainToasts()
	h.count(fresh)
	toasts := append(h.flashes.Take(c), fresh...)

	email, _ := c.Get(middleware.ContextEmail).(string)
	return c.Render(status, "list", h.bindings(h.screen.Snapshot(), toasts, email))
}

func (h *PageHandler[T]) count(toasts []dashboard.Toast) {
	if h.observe == nil {
		return
	}
	for _, t := range toasts {
		h.observe(h.page.Controller().Schema().Name, t.Kind)
	}
}

func (h *PageHandler[T]) bindings(snap dashboard.Snapshot[T], toasts []dashboard.Toast, email string) liquid.Bindings {
	ctl := h.page.Controller()
	schema := ctl.Schema()

	rows := make([]map[string]any, 0, len(snap.Rows))
	for _, item := range snap.Rows {
		row := make(map[string]any)
		for k, v := range schema.Row(item) {
			row[k] = v
		}
		rows = append(rows, row)
	}

	b := liquid.Bindings{
		"title":         h.Title,
		"label":         schema.Label,
		"base":          h.ListPath,
		"base_path":     h.ActionPath,
		"columns":       schema.Fields,
		"rows":          rows,
		"empty":         string(snap.Empty),
		"empty_message": emptyMessage(snap.Empty, schema.Label),
		"keyword":       ctl.Keyword(),
		"className":     ctl.ClassName(),
		"classes":       domain.ClassNames,
		"filterable":    schema.Options["className"] != nil,
		"open_dropdown": snap.OpenDropdown,
		"selected":      snap.Selected,
		"confirm":       map[string]any{"open": snap.ConfirmOpen, "id": snap.DeleteTarget},
		"loading":       snap.Loading,
		"toasts":        toastBindings(toasts),
		"nav":           h.navBindings(),
	}
	if email != "" {
		b["user"] = email
	}
	if snap.Modal != nil {
		b["modal"] = modalBindings(*snap.Modal, schema.Fields, schema.Options, snap.FormErrors)
	}
	if snap.Detail != nil {
		b["detail"] = detailBindings(*snap.Detail, schema)
	}
	return b
}

// detailBindings titles each record by its first schema field.
func detailBindings[T domain.Entity](d dashboard.Detail[T], schema dashboard.Schema[T]) map[string]any {
	title := func(item T) string { return schema.Get(item, schema.Fields[0]) }

	related := make([]map[string]any, 0, len(d.Related))
	for _, r := range d.Related {
		related = append(related, map[string]any{"id": r.EntityID(), "title": title(r)})
	}
	item := make(map[string]any)
	for k, v := range schema.Row(d.Item) {
		item[k] = v
	}
	return map[string]any{
		"title":     title(d.Item),
		"item":      item,
		"className": schema.Get(d.Item, "className"),
		"related":   related,
	}
}

func (h *PageHandler[T]) navBindings() []map[string]any {
	out := make([]map[string]any, 0, len(h.nav))
	for _, n := range h.nav {
		out = append(out, map[string]any{
			"href":   n.Href,
			"label":  n.Label,
			"active": n.Href == h.ListPath,
		})
	}
	return out
}

func modalBindings(m dashboard.Modal, fields []string, options map[string][]string, errs map[string]string) map[string]any {
	fb := make([]map[string]any, 0, len(fields))
	for _, f := range fields {
		opts := options[f]
		if opts == nil {
			opts = []string{}
		}
		fb = append(fb, map[string]any{
			"name":    f,
			"value":   m.Values[f],
			"error":   errs[f],
			"options": opts,
		})
	}
	return map[string]any{
		"title":          m.Title,
		"mode":           m.Mode.String(),
		"id":             m.ID,
		"submit_enabled": m.SubmitEnabled,
		"fields":         fb,
	}
}

func toastBindings(toasts []dashboard.Toast) []map[string]any {
	out := make([]map[string]any, 0, len(toasts))
	for _, t := range toasts {
		out = append(out, map[string]any{"kind": string(t.Kind), "message": t.Message})
	}
	return out
}

func emptyMessage(state dashboard.EmptyState, label string) string {
	switch state {
	case dashboard.EmptyNoData:
		return "No " + label + " data yet."
	case dashboard.EmptyNoResults:
		return "No results found."
	case dashboard.EmptyNoFilterMatch:
		return "No " + label + " in this class."
	}
	return ""
}
