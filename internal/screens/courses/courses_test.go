package courses

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/catalog"
	"github.com/abhisek/skilldash/internal/settings"
	"github.com/abhisek/skilldash/internal/store"
)

type mockProgress struct {
	completed   map[string]bool
	enrollments []store.Enrollment
}

func (m *mockProgress) Enrollments(context.Context) ([]store.Enrollment, error) {
	return m.enrollments, nil
}

func (m *mockProgress) CompletedCourses(context.Context) (map[string]bool, error) {
	return m.completed, nil
}

type mockPrefs struct{ showCompleted bool }

func (m mockPrefs) Load(context.Context) (settings.Preferences, error) {
	p := settings.Defaults()
	p.ShowCompleted = m.showCompleted
	return p, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestCoursesScreen_ListsCatalog(t *testing.T) {
	s := New(nil, nil)
	if len(s.results) != len(catalog.AllCourses()) {
		t.Errorf("results = %d, want %d", len(s.results), len(catalog.AllCourses()))
	}
	if s.Title() != "Courses" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestCoursesScreen_DifficultyCycling(t *testing.T) {
	s := New(nil, nil)
	want := []assessment.Difficulty{
		assessment.DifficultyBeginner,
		assessment.DifficultyIntermediate,
		assessment.DifficultyAdvanced,
		"",
	}
	for _, d := range want {
		s.Update(keyPress('d'))
		if s.filter.Difficulty != d {
			t.Fatalf("difficulty = %q, want %q", s.filter.Difficulty, d)
		}
		for _, c := range s.results {
			if d != "" && c.Difficulty != d {
				t.Errorf("%s has difficulty %s under %s filter", c.ID, c.Difficulty, d)
			}
		}
	}
}

func TestCoursesScreen_Search(t *testing.T) {
	s := New(nil, nil)
	s.Update(keyPress('/'))
	if !s.CapturesInput() {
		t.Fatal("expected search input to capture keys")
	}
	for _, r := range "kubernetes" {
		s.Update(keyPress(r))
	}
	if len(s.results) != 1 || s.results[0].ID != "kubernetes-orchestration" {
		t.Errorf("results = %+v", s.results)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.CapturesInput() {
		t.Error("Esc should release the search input")
	}
	if len(s.results) != len(catalog.AllCourses()) {
		t.Errorf("Esc should clear the query, got %d results", len(s.results))
	}
}

func TestCoursesScreen_HideCompleted(t *testing.T) {
	progress := &mockProgress{
		completed: map[string]bool{"html-css-fundamentals": true},
		enrollments: []store.Enrollment{
			{PathID: "full-stack-web-developer"},
		},
	}
	s := New(progress, mockPrefs{showCompleted: false})
	s.Update(s.Init()())

	for _, c := range s.results {
		if c.ID == "html-css-fundamentals" {
			t.Error("completed course should be hidden")
		}
	}
	if !s.started["react-development"] {
		t.Error("courses of enrolled paths should count as started")
	}
	if !strings.Contains(s.View(120, 40), "In Progress") {
		t.Error("expected an in-progress course in view")
	}
}

func TestCoursesScreen_ExpandDetails(t *testing.T) {
	s := New(nil, nil)
	s.Update(keyPress('j'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(120, 40)
	if !strings.Contains(view, "Requires: HTML & CSS Fundamentals") {
		t.Error("expected prerequisites in expanded details")
	}
}

func TestCoursesScreen_NoMatches(t *testing.T) {
	s := New(nil, nil)
	s.Update(keyPress('/'))
	for _, r := range "zzzz" {
		s.Update(keyPress(r))
	}
	if !strings.Contains(s.View(120, 40), "No courses match") {
		t.Error("expected empty-state message")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(keyPress('c'))
	if len(s.results) != len(catalog.AllCourses()) {
		t.Error("c should clear all filters")
	}
}
