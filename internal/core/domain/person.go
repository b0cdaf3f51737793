package domain

import (
	"encoding/json"
	"fmt"
)

// PersonKind discriminates the two person profiles managed by the dashboard.
type PersonKind string

const (
	KindTeacher PersonKind = "Teacher"
	KindStudent PersonKind = "Student"
)

// ClassNames is the fixed set of classes a person can belong to.
var ClassNames = []string{"SS1", "SS2", "SS3", "SS4", "SS5"}

// Genders is the fixed set of gender options offered by the forms.
var Genders = []string{"Female", "Male"}

// ParsePersonKind maps a resource or route name to a PersonKind.
func ParsePersonKind(s string) (PersonKind, error) {
	switch s {
	case "Teacher", "teacher", "teachers":
		return KindTeacher, nil
	case "Student", "student", "students":
		return KindStudent, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Endpoint is the REST resource path that stores this kind.
func (k PersonKind) Endpoint() string { return string(k) }

// Plural is the lowercase collection label used in routes and messages.
func (k PersonKind) Plural() string {
	switch k {
	case KindTeacher:
		return "teachers"
	case KindStudent:
		return "students"
	}
	return ""
}

// Person is a teacher or student profile. Subject is carried only by
// KindTeacher records and is dropped from the wire form of students.
type Person struct {
	ID        string
	Kind      PersonKind
	Name      string
	Email     string
	ClassName string
	Gender    string
	AvatarURL string
	Subject   string
}

// EntityID implements the dashboard entity contract.
func (p Person) EntityID() string { return p.ID }

type personWire struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ClassName string `json:"className"`
	Gender    string `json:"gender"`
	AvatarURL string `json:"avatarUrl"`
	Subject   string `json:"subject,omitempty"`
}

func (p Person) MarshalJSON() ([]byte, error) {
	w := personWire{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		ClassName: p.ClassName,
		Gender:    p.Gender,
		AvatarURL: p.AvatarURL,
	}
	switch p.Kind {
	case KindTeacher:
		w.Subject = p.Subject
	case KindStudent, "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire record. The kind is not part of the payload
// and stays empty until the owning service stamps it with WithKind.
func (p *Person) UnmarshalJSON(data []byte) error {
	var w personWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*p = Person{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		ClassName: w.ClassName,
		Gender:    w.Gender,
		AvatarURL: w.AvatarURL,
		Subject:   w.Subject,
	}
	return nil
}

// WithKind returns a copy tagged with kind. Students lose any subject.
func (p Person) WithKind(kind PersonKind) Person {
	p.Kind = kind
	if kind != KindTeacher {
		p.Subject = ""
	}
	return p
}
