package validate

import "github.com/schoolhub/admin-dashboard/internal/core/domain"

// Errors maps a form field to its message. Only failing fields are present.
type Errors map[string]string

func (e Errors) add(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// PersonForm validates a teacher or student form. Subject is checked only
// for teachers.
func PersonForm(p domain.Person, kind domain.PersonKind) Errors {
	errs := Errors{}
	errs.add("email", Email(p.Email))
	errs.add("name", Name(p.Name))
	errs.add("className", Class(p.ClassName))
	if kind == domain.KindTeacher {
		errs.add("subject", Subject(p.Subject))
	}
	errs.add("avatarUrl", AvatarURL(p.AvatarURL))
	errs.add("gender", Gender(p.Gender))
	return errs
}

// AdsForm validates the advertisement form.
func AdsForm(a domain.Ads) Errors {
	errs := Errors{}
	errs.add("email", Email(a.Email))
	errs.add("phone", Phone(a.Phone))
	errs.add("status", Status(a.Status))
	errs.add("network", Network(a.Network))
	errs.add("link", Link(a.Link))
	return errs
}

// UserAuth validates the registration form.
func UserAuth(r domain.Registration) Errors {
	errs := Errors{}
	errs.add("email", Email(r.Email))
	errs.add("password", Password(r.Password))
	errs.add("confirmPassword", ConfirmPassword(r.Password, r.ConfirmPassword))
	return errs
}
