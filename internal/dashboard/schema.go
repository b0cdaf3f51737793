package dashboard

import (
	"strings"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/validate"
)

// Schema tells the generic controller how to read, edit, validate and
// search one entity type.
type Schema[T domain.Entity] struct {
	// Name is the collection key used in routes and generation keys.
	Name string
	// Label is the singular display name used in modal titles.
	Label string
	// Fields lists the form fields in display order.
	Fields []string

	Get      func(item T, field string) string
	Set      func(item T, field, value string) T
	Validate func(item T) validate.Errors
	// Matches reports whether item matches an already normalised keyword.
	Matches func(item T, keyword string) bool
	// Normalize rewrites raw input for field. Nil keeps input unchanged.
	Normalize func(field, value string) string
	// Options lists the choices of select fields.
	Options map[string][]string
}

// Row flattens item into its id plus every schema field.
func (s Schema[T]) Row(item T) map[string]string {
	row := make(map[string]string, len(s.Fields)+1)
	row["id"] = item.EntityID()
	for _, f := range s.Fields {
		row[f] = s.Get(item, f)
	}
	return row
}

func (s Schema[T]) hasField(field string) bool {
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

func (s Schema[T]) equal(a, b T) bool {
	for _, f := range s.Fields {
		if s.Get(a, f) != s.Get(b, f) {
			return false
		}
	}
	return true
}

// trimmed returns item with every field trimmed of surrounding spaces.
func (s Schema[T]) trimmed(item T) T {
	for _, f := range s.Fields {
		item = s.Set(item, f, strings.TrimSpace(s.Get(item, f)))
	}
	return item
}

// AdsSchema describes the advertisement list.
func AdsSchema() Schema[domain.Ads] {
	return Schema[domain.Ads]{
		Name:   "ads",
		Label:  "Ads",
		Fields: []string{"network", "link", "email", "phone", "status"},
		Get: func(a domain.Ads, field string) string {
			switch field {
			case "network":
				return a.Network
			case "link":
				return a.Link
			case "email":
				return a.Email
			case "phone":
				return a.Phone
			case "status":
				return a.Status
			}
			return ""
		},
		Set: func(a domain.Ads, field, value string) domain.Ads {
			switch field {
			case "network":
				a.Network = value
			case "link":
				a.Link = value
			case "email":
				a.Email = value
			case "phone":
				a.Phone = value
			case "status":
				a.Status = value
			}
			return a
		},
		Validate: validate.AdsForm,
		Matches: func(a domain.Ads, kw string) bool {
			return strings.Contains(validate.NormalizeKeyword(a.Network), kw) ||
				strings.Contains(a.Email, kw) ||
				strings.Contains(a.Phone, kw) ||
				strings.Contains(a.Link, kw)
		},
		Normalize: func(field, value string) string {
			if field == "phone" {
				return validate.FormatPhoneNumber(value)
			}
			return value
		},
		Options: map[string][]string{"status": domain.AdsStatuses},
	}
}

// PersonSchema describes a teacher or student list. Only teachers carry
// the subject field.
func PersonSchema(kind domain.PersonKind) Schema[domain.Person] {
	fields := []string{"name", "email", "className", "gender", "avatarUrl"}
	if kind == domain.KindTeacher {
		fields = append(fields, "subject")
	}
	return Schema[domain.Person]{
		Name:   kind.Plural(),
		Label:  string(kind),
		Fields: fields,
		Get: func(p domain.Person, field string) string {
			switch field {
			case "name":
				return p.Name
			case "email":
				return p.Email
			case "className":
				return p.ClassName
			case "gender":
				return p.Gender
			case "avatarUrl":
				return p.AvatarURL
			case "subject":
				return p.Subject
			}
			return ""
		},
		Set: func(p domain.Person, field, value string) domain.Person {
			switch field {
			case "name":
				p.Name = value
			case "email":
				p.Email = value
			case "className":
				p.ClassName = value
			case "gender":
				p.Gender = value
			case "avatarUrl":
				p.AvatarURL = value
			case "subject":
				if kind == domain.KindTeacher {
					p.Subject = value
				}
			}
			p.Kind = kind
			return p
		},
		Validate: func(p domain.Person) validate.Errors {
			return validate.PersonForm(p, kind)
		},
		Matches: func(p domain.Person, kw string) bool {
			return strings.Contains(validate.NormalizeKeyword(p.Name), kw) ||
				strings.Contains(p.Email, kw)
		},
		Options: map[string][]string{
			"className": domain.ClassNames,
			"gender":    domain.Genders,
		},
	}
}
