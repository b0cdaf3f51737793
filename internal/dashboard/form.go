package dashboard

import "github.com/schoolhub/admin-dashboard/internal/core/domain"

type FormMode int

const (
	ModeAdd FormMode = iota
	ModeEdit
)

func (m FormMode) String() string {
	if m == ModeEdit {
		return "Edit"
	}
	return "Add"
}

// FormState is the open add/edit form. It is a value: every change produces
// a new state with Dirty recomputed against Original.
type FormState[T domain.Entity] struct {
	Mode     FormMode
	Original T
	Current  T
	Dirty    bool
}

func NewAddForm[T domain.Entity](blank T) FormState[T] {
	return FormState[T]{Mode: ModeAdd, Original: blank, Current: blank}
}

func NewEditForm[T domain.Entity](item T) FormState[T] {
	return FormState[T]{Mode: ModeEdit, Original: item, Current: item}
}

// With returns the state after field was set to value. In add mode any input
// marks the form dirty; in edit mode the form is dirty while any field
// differs from the original.
func (f FormState[T]) With(s Schema[T], field, value string) FormState[T] {
	if s.Normalize != nil {
		value = s.Normalize(field, value)
	}
	f.Current = s.Set(f.Current, field, value)
	if f.Mode == ModeAdd {
		f.Dirty = true
	} else {
		f.Dirty = !s.equal(s.trimmed(f.Original), s.trimmed(f.Current))
	}
	return f
}

// SubmitEnabled is always true when adding and true only for a dirty form
// when editing.
func (f FormState[T]) SubmitEnabled() bool {
	return f.Mode == ModeAdd || f.Dirty
}

// ID is the id of the record being edited, "" when adding.
func (f FormState[T]) ID() string {
	if f.Mode == ModeEdit {
		return f.Original.EntityID()
	}
	return ""
}

func (f FormState[T]) modal(s Schema[T]) Modal {
	values := make(map[string]string, len(s.Fields))
	for _, field := range s.Fields {
		values[field] = s.Get(f.Current, field)
	}
	return Modal{
		Title:         f.Mode.String() + " " + s.Label,
		Mode:          f.Mode,
		ID:            f.ID(),
		Values:        values,
		SubmitEnabled: f.SubmitEnabled(),
	}
}
