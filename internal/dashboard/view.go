package dashboard

import (
	"maps"
	"slices"
	"sync"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/validate"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast messages.
const (
	MsgAddSuccess    = "Add successfully!"
	MsgEditSuccess   = "Edit successfully!"
	MsgDeleteSuccess = "Delete successfully!"
	MsgAddFailed     = "Failed to add!"
	MsgEditFailed    = "Failed to edit!"
	MsgDeleteFailed  = "Failed to delete!"
	MsgLoadFailed    = "Failed to load data!"
)

type Toast struct {
	Kind    ToastKind
	Message string
}

// EmptyState names the placeholder shown instead of rows.
type EmptyState string

const (
	EmptyNone          EmptyState = ""
	EmptyNoData        EmptyState = "no-data"
	EmptyNoResults     EmptyState = "no-results"
	EmptyNoFilterMatch EmptyState = "no-filter-results"
)

// Modal is the add/edit form as the view should draw it.
type Modal struct {
	Title         string
	Mode          FormMode
	ID            string
	Values        map[string]string
	SubmitEnabled bool
}

// Detail is the side panel of the selected row. Related holds the rows that
// share its class, the row itself included.
type Detail[T domain.Entity] struct {
	Item    T
	Related []T
}

// View receives every visible change the controller makes. Implementations
// must be safe for concurrent use: debounced searches fire on timer goroutines.
type View[T domain.Entity] interface {
	RenderList(rows []T)
	RenderEmpty(state EmptyState)
	ShowModal(m Modal)
	CloseModal()
	ShowFormErrors(errs validate.Errors)
	ShowDeleteConfirm(id string)
	HideDeleteConfirm()
	SetOpenDropdown(id string)
	ShowDetail(d Detail[T])
	HideDetail()
	SetLoading(on bool)
	ShowToast(t Toast)
}

// Screen is a View that keeps the latest rendered state in memory. The HTML
// surface renders from it and tests assert on it.
type Screen[T domain.Entity] struct {
	mu sync.Mutex

	rows         []T
	empty        EmptyState
	modal        *Modal
	formErrors   validate.Errors
	confirmOpen  bool
	deleteTarget string
	openDropdown string
	detail       *Detail[T]
	loading      int
	toasts       []Toast
	renders      int
}

var _ View[domain.Ads] = (*Screen[domain.Ads])(nil)

func NewScreen[T domain.Entity]() *Screen[T] {
	return &Screen[T]{}
}

func (s *Screen[T]) RenderList(rows []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = slices.Clone(rows)
	s.empty = EmptyNone
	s.renders++
}

func (s *Screen[T]) RenderEmpty(state EmptyState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.empty = state
	s.renders++
}

func (s *Screen[T]) ShowModal(m Modal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.Values = maps.Clone(m.Values)
	s.modal = &m
}

func (s *Screen[T]) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = nil
	s.formErrors = nil
}

func (s *Screen[T]) ShowFormErrors(errs validate.Errors) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formErrors = maps.Clone(errs)
}

func (s *Screen[T]) ShowDeleteConfirm(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmOpen = true
	s.deleteTarget = id
}

func (s *Screen[T]) HideDeleteConfirm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmOpen = false
	s.deleteTarget = ""
}

func (s *Screen[T]) SetOpenDropdown(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openDropdown = id
}

func (s *Screen[T]) ShowDetail(d Detail[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Related = slices.Clone(d.Related)
	s.detail = &d
}

func (s *Screen[T]) HideDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
}

// SetLoading nests: the spinner stays on until every start has been stopped.
func (s *Screen[T]) SetLoading(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.loading++
	} else if s.loading > 0 {
		s.loading--
	}
}

func (s *Screen[T]) ShowToast(t Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, t)
}

// Snapshot is a point-in-time copy of a Screen.
type Snapshot[T domain.Entity] struct {
	Rows         []T
	Empty        EmptyState
	Modal        *Modal
	FormErrors   validate.Errors
	ConfirmOpen  bool
	DeleteTarget string
	OpenDropdown string
	Loading      bool
	Renders      int

	// Detail is nil while no row is selected. Selected is its row id.
	Detail   *Detail[T]
	Selected string
}

func (s *Screen[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot[T]{
		Rows:         slices.Clone(s.rows),
		Empty:        s.empty,
		FormErrors:   maps.Clone(s.formErrors),
		ConfirmOpen:  s.confirmOpen,
		DeleteTarget: s.deleteTarget,
		OpenDropdown: s.openDropdown,
		Loading:      s.loading > 0,
		Renders:      s.renders,
	}
	if s.modal != nil {
		m := *s.modal
		m.Values = maps.Clone(m.Values)
		snap.Modal = &m
	}
	if s.detail != nil {
		d := *s.detail
		d.Related = slices.Clone(d.Related)
		snap.Detail = &d
		snap.Selected = d.Item.EntityID()
	}
	return snap
}

// DrainToasts returns and forgets the queued toasts.
func (s *Screen[T]) DrainToasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.toasts
	s.toasts = nil
	return out
}
