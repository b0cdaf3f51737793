package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParsePersonKind(t *testing.T) {
	for _, in := range []string{"Teacher", "teacher", "teachers"} {
		if k, err := ParsePersonKind(in); err != nil || k != KindTeacher {
			t.Errorf("ParsePersonKind(%q) = %q, %v", in, k, err)
		}
	}
	if k, err := ParsePersonKind("students"); err != nil || k != KindStudent {
		t.Errorf("students: %q, %v", k, err)
	}
	if _, err := ParsePersonKind("parents"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestPerson_MarshalJSON_SubjectOnlyForTeachers(t *testing.T) {
	p := Person{Name: "Ada", Email: "ada@x.io", ClassName: "SS1", Gender: "Female", AvatarURL: "https://x/a.png", Subject: "Math"}

	teacher, err := json.Marshal(p.WithKind(KindTeacher))
	if err != nil {
		t.Fatalf("marshal teacher: %v", err)
	}
	if !strings.Contains(string(teacher), `"subject":"Math"`) {
		t.Errorf("teacher payload missing subject: %s", teacher)
	}

	student, err := json.Marshal(p.WithKind(KindStudent))
	if err != nil {
		t.Fatalf("marshal student: %v", err)
	}
	if strings.Contains(string(student), "subject") {
		t.Errorf("student payload carries subject: %s", student)
	}
	if strings.Contains(string(student), `"id"`) {
		t.Errorf("empty id should be omitted: %s", student)
	}

	p.Kind = "Parent"
	if _, err := json.Marshal(p); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}

func TestPerson_UnmarshalJSON(t *testing.T) {
	var p Person
	if err := json.Unmarshal([]byte(`{"id":"7","name":"Ada","subject":"Math"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "7" || p.Kind != "" || p.Subject != "Math" {
		t.Errorf("a subject must not imply a kind: %+v", p)
	}

	var s Person
	if err := json.Unmarshal([]byte(`{"id":"8","name":"Bo"}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.Kind != "" {
		t.Errorf("kind should be left for the service to stamp, got %q", s.Kind)
	}
}

func TestDeriveStatusID(t *testing.T) {
	cases := map[string]string{
		"Active":   StatusIDActive,
		"Paused":   StatusIDPaused,
		"Inactive": StatusIDPaused,
		"":         StatusIDPaused,
	}
	for in, want := range cases {
		if got := DeriveStatusID(in); got != want {
			t.Errorf("DeriveStatusID(%q) = %q, want %q", in, got, want)
		}
	}
	ad := Ads{Status: "Active", StatusID: "paused"}.WithDerivedStatus()
	if ad.StatusID != StatusIDActive {
		t.Errorf("WithDerivedStatus: %q", ad.StatusID)
	}
}
