package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/validate"
	"github.com/schoolhub/admin-dashboard/pkg/debounce"
)

// KeyEnter triggers an immediate search from the search box.
const KeyEnter = "Enter"

var (
	ErrNoForm          = errors.New("no form is open")
	ErrUnknownField    = errors.New("unknown form field")
	ErrNoDeleteTarget  = errors.New("no delete is awaiting confirmation")
	ErrHandlerNotBound = errors.New("handler not bound")
)

// Handlers are the page callbacks a controller invokes for user actions.
type Handlers[T domain.Entity] struct {
	Add       func(ctx context.Context, item T) error
	Edit      func(ctx context.Context, id string, item T) error
	Delete    func(ctx context.Context, id string) error
	GetDetail func(ctx context.Context, id string) error
	Detail    func(ctx context.Context, id string) error
	Search    func(ctx context.Context, keyword string) error
	Filter    func(ctx context.Context, className string) error
	Reload    func(ctx context.Context) error
}

// ListController holds the UI state of one entity list and turns user
// actions into handler calls and view updates.
type ListController[T domain.Entity] struct {
	schema    Schema[T]
	view      View[T]
	debouncer *debounce.Debouncer

	mu           sync.Mutex
	ctx          context.Context
	handlers     Handlers[T]
	rows         []T
	keyword      string
	className    string
	form         *FormState[T]
	deleteTarget string
	openMenu     string
	detail       *Detail[T]
}

// NewListController returns a controller rendering into view. Typed search
// input waits searchDelay before running.
func NewListController[T domain.Entity](schema Schema[T], view View[T], searchDelay time.Duration) *ListController[T] {
	return &ListController[T]{
		schema:    schema,
		view:      view,
		debouncer: debounce.New(searchDelay),
		ctx:       context.Background(),
	}
}

func (c *ListController[T]) Bind(h Handlers[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = h
}

// SetContext sets the context debounced searches run under.
func (c *ListController[T]) SetContext(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx = ctx
}

func (c *ListController[T]) Schema() Schema[T] { return c.schema }

func (c *ListController[T]) bound() Handlers[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handlers
}

// --- List ---

// DisplayList renders items newest first. An empty list renders the no-data
// placeholder.
func (c *ListController[T]) DisplayList(items []T) {
	rows := slices.Clone(items)
	slices.Reverse(rows)

	c.mu.Lock()
	c.rows = rows
	c.openMenu = ""
	c.mu.Unlock()

	c.view.SetOpenDropdown("")
	if len(rows) == 0 {
		c.view.RenderEmpty(EmptyNoData)
		return
	}
	c.view.RenderList(rows)
}

// ShowEmpty replaces the rows with a placeholder.
func (c *ListController[T]) ShowEmpty(state EmptyState) {
	c.mu.Lock()
	c.rows = nil
	c.openMenu = ""
	c.mu.Unlock()
	c.view.RenderEmpty(state)
}

// Rows returns the rows as last displayed.
func (c *ListController[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.rows)
}

// Loading toggles the spinner.
func (c *ListController[T]) Loading(on bool) { c.view.SetLoading(on) }

func (c *ListController[T]) Toast(kind ToastKind, msg string) {
	c.view.ShowToast(Toast{Kind: kind, Message: msg})
}

// --- Search and filter ---

// InputSearch records the search box text and schedules a debounced search.
func (c *ListController[T]) InputSearch(text string) {
	c.mu.Lock()
	c.keyword = text
	c.mu.Unlock()

	c.debouncer.Trigger(func() {
		c.mu.Lock()
		ctx := c.ctx
		c.mu.Unlock()
		_ = c.runSearch(ctx)
	})
}

// PressKey handles a key press in the search box. Only Enter searches.
func (c *ListController[T]) PressKey(ctx context.Context, key string) error {
	if key != KeyEnter {
		return nil
	}
	return c.ClickSearch(ctx)
}

// ClickSearch runs the search now, dropping any pending debounced one.
func (c *ListController[T]) ClickSearch(ctx context.Context) error {
	c.debouncer.Cancel()
	return c.runSearch(ctx)
}

// SubmitSearch sets the search box to text and searches at once, as a
// submitted search form does.
func (c *ListController[T]) SubmitSearch(ctx context.Context, text string) error {
	c.mu.Lock()
	c.keyword = text
	c.mu.Unlock()
	return c.ClickSearch(ctx)
}

// ClearSearch empties the search box and reloads the full list.
func (c *ListController[T]) ClearSearch(ctx context.Context) error {
	c.debouncer.Cancel()
	c.mu.Lock()
	c.keyword = ""
	c.className = ""
	c.mu.Unlock()

	h := c.bound()
	if h.Reload == nil {
		return ErrHandlerNotBound
	}
	return h.Reload(ctx)
}

func (c *ListController[T]) Keyword() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyword
}

func (c *ListController[T]) runSearch(ctx context.Context) error {
	h := c.bound()
	if h.Search == nil {
		return ErrHandlerNotBound
	}
	return h.Search(ctx, c.Keyword())
}

// SelectClass filters the list by class. An empty name reloads everything.
func (c *ListController[T]) SelectClass(ctx context.Context, className string) error {
	c.mu.Lock()
	c.className = className
	c.mu.Unlock()

	h := c.bound()
	if h.Filter == nil {
		return ErrHandlerNotBound
	}
	return h.Filter(ctx, className)
}

func (c *ListController[T]) ClassName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.className
}

// --- Add / edit modal ---

// OpenAdd shows an empty form.
func (c *ListController[T]) OpenAdd() {
	var blank T
	c.openForm(NewAddForm(blank))
}

// RequestEdit asks the page to load id; the page answers with OpenEdit.
func (c *ListController[T]) RequestEdit(ctx context.Context, id string) error {
	c.closeDropdown()
	h := c.bound()
	if h.GetDetail == nil {
		return ErrHandlerNotBound
	}
	return h.GetDetail(ctx, id)
}

// OpenEdit shows the form pre-filled with item.
func (c *ListController[T]) OpenEdit(item T) {
	c.openForm(NewEditForm(item))
}

func (c *ListController[T]) openForm(f FormState[T]) {
	c.mu.Lock()
	c.form = &f
	c.mu.Unlock()

	c.view.ShowFormErrors(nil)
	c.view.ShowModal(f.modal(c.schema))
}

// Input sets one form field and redraws the modal with the new dirty state.
func (c *ListController[T]) Input(field, value string) error {
	if !c.schema.hasField(field) {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	c.mu.Lock()
	if c.form == nil {
		c.mu.Unlock()
		return ErrNoForm
	}
	next := c.form.With(c.schema, field, value)
	c.form = &next
	c.mu.Unlock()

	c.view.ShowModal(next.modal(c.schema))
	return nil
}

// Form returns the open form.
func (c *ListController[T]) Form() (FormState[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return FormState[T]{}, false
	}
	return *c.form, true
}

func (c *ListController[T]) SubmitEnabled() bool {
	f, ok := c.Form()
	return ok && f.SubmitEnabled()
}

// Submit validates the open form. Invalid input is shown on the form and
// returned; no handler runs. A valid form closes, the add or edit handler
// runs behind the spinner, and the outcome is reported as a toast.
func (c *ListController[T]) Submit(ctx context.Context) (validate.Errors, error) {
	f, ok := c.Form()
	if !ok {
		return nil, ErrNoForm
	}

	item := c.schema.trimmed(f.Current)
	if errs := c.schema.Validate(item); !errs.Valid() {
		c.view.ShowFormErrors(errs)
		return errs, nil
	}
	if !f.SubmitEnabled() {
		return nil, nil
	}

	h := c.bound()
	c.CloseModal()
	c.view.SetLoading(true)
	defer c.view.SetLoading(false)

	if f.Mode == ModeEdit {
		if h.Edit == nil {
			return nil, ErrHandlerNotBound
		}
		return nil, c.report(h.Edit(ctx, f.ID(), item), MsgEditSuccess, MsgEditFailed)
	}
	if h.Add == nil {
		return nil, ErrHandlerNotBound
	}
	return nil, c.report(h.Add(ctx, item), MsgAddSuccess, MsgAddFailed)
}

// report shows the outcome toast. A stale response means a newer mutation
// of the same row superseded this one, which still succeeded upstream.
func (c *ListController[T]) report(err error, success, failure string) error {
	if err == nil || errors.Is(err, domain.ErrStaleResponse) {
		c.Toast(ToastSuccess, success)
		return nil
	}
	c.Toast(ToastError, failure)
	return err
}

func (c *ListController[T]) CloseModal() {
	c.mu.Lock()
	c.form = nil
	c.mu.Unlock()
	c.view.CloseModal()
}

// --- Delete ---

// ClickDelete opens the confirmation for id.
func (c *ListController[T]) ClickDelete(id string) {
	c.closeDropdown()
	c.mu.Lock()
	c.deleteTarget = id
	c.mu.Unlock()
	c.view.ShowDeleteConfirm(id)
}

func (c *ListController[T]) DeleteTarget() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteTarget
}

// ConfirmDelete hides the confirmation and deletes the pending target.
func (c *ListController[T]) ConfirmDelete(ctx context.Context) error {
	id := c.DeleteTarget()
	if id == "" {
		return ErrNoDeleteTarget
	}
	c.CancelDelete()

	h := c.bound()
	if h.Delete == nil {
		return ErrHandlerNotBound
	}
	c.view.SetLoading(true)
	defer c.view.SetLoading(false)
	return c.report(h.Delete(ctx, id), MsgDeleteSuccess, MsgDeleteFailed)
}

func (c *ListController[T]) CancelDelete() {
	c.mu.Lock()
	c.deleteTarget = ""
	c.mu.Unlock()
	c.view.HideDeleteConfirm()
}

// --- Detail panel ---

// SelectRow asks the page to load id into the detail panel; the page
// answers with ShowDetail.
func (c *ListController[T]) SelectRow(ctx context.Context, id string) error {
	c.closeDropdown()
	h := c.bound()
	if h.Detail == nil {
		return ErrHandlerNotBound
	}
	return h.Detail(ctx, id)
}

// ShowDetail opens the panel on item, listing related beside it, and
// highlights the item's row.
func (c *ListController[T]) ShowDetail(item T, related []T) {
	d := Detail[T]{Item: item, Related: slices.Clone(related)}
	c.mu.Lock()
	c.detail = &d
	c.mu.Unlock()
	c.view.ShowDetail(d)
}

func (c *ListController[T]) CloseDetail() {
	c.mu.Lock()
	c.detail = nil
	c.mu.Unlock()
	c.view.HideDetail()
}

// Selected returns the id of the row shown in the detail panel, or "".
func (c *ListController[T]) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return ""
	}
	return c.detail.Item.EntityID()
}

// --- Row dropdowns ---

// ToggleDropdown opens the action menu of row id, closing any other, or
// closes it when it is already open.
func (c *ListController[T]) ToggleDropdown(id string) {
	c.mu.Lock()
	if c.openMenu == id {
		c.openMenu = ""
	} else {
		c.openMenu = id
	}
	open := c.openMenu
	c.mu.Unlock()
	c.view.SetOpenDropdown(open)
}

// ClickOutside handles a click anywhere on the page. insideMenu is the row id
// whose menu content contains the click target, or "" for none. The open
// menu closes unless the click landed inside it.
func (c *ListController[T]) ClickOutside(insideMenu string) {
	c.mu.Lock()
	if c.openMenu == "" || c.openMenu == insideMenu {
		c.mu.Unlock()
		return
	}
	c.openMenu = ""
	c.mu.Unlock()
	c.view.SetOpenDropdown("")
}

func (c *ListController[T]) OpenDropdown() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.openMenu
}

func (c *ListController[T]) closeDropdown() {
	c.mu.Lock()
	was := c.openMenu
	c.openMenu = ""
	c.mu.Unlock()
	if was != "" {
		c.view.SetOpenDropdown("")
	}
}
