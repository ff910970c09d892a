package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/skilldash/internal/assessment"
)

func TestValidate_SeedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func TestValidateCatalog_DetectsProblems(t *testing.T) {
	tests := []struct {
		name    string
		courses []Course
		paths   []Path
		want    string
	}{
		{
			name: "cycle",
			courses: []Course{
				{ID: "a", Difficulty: beginner, Prerequisites: []string{"b"}},
				{ID: "b", Difficulty: beginner, Prerequisites: []string{"a"}},
			},
			want: "cycle",
		},
		{
			name:    "dangling prerequisite",
			courses: []Course{{ID: "a", Difficulty: beginner, Prerequisites: []string{"nonexistent"}}},
			want:    "nonexistent",
		},
		{
			name:    "duplicate",
			courses: []Course{{ID: "a", Difficulty: beginner}, {ID: "a", Difficulty: beginner}},
			want:    "duplicate",
		},
		{
			name:    "bad difficulty",
			courses: []Course{{ID: "a", Difficulty: "Expert"}},
			want:    "difficulty",
		},
		{
			name:    "path with unknown course",
			courses: []Course{{ID: "a", Difficulty: beginner}},
			paths:   []Path{{ID: "p", CourseIDs: []string{"a", "ghost"}}},
			want:    "ghost",
		},
		{
			name:    "empty path",
			courses: []Course{{ID: "a", Difficulty: beginner}},
			paths:   []Path{{ID: "p"}},
			want:    "no courses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCatalog(tt.courses, tt.paths)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestTopologicalOrder(t *testing.T) {
	order := TopologicalOrder()
	if len(order) != len(AllCourses()) {
		t.Fatalf("topo order has %d courses, want %d", len(order), len(AllCourses()))
	}
	pos := make(map[string]int, len(order))
	for i, course := range order {
		pos[course.ID] = i
	}
	for _, course := range order {
		for _, prereq := range course.Prerequisites {
			if pos[prereq] >= pos[course.ID] {
				t.Errorf("%s appears before its prerequisite %s", course.ID, prereq)
			}
		}
	}
}

func TestPrerequisitesAndDependents(t *testing.T) {
	prereqs := Prerequisites("machine-learning-fundamentals")
	var ids []string
	for _, p := range prereqs {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"pandas-data-manipulation", "statistics-probability"}, ids); diff != "" {
		t.Errorf("prerequisites mismatch (-want +got):\n%s", diff)
	}

	deps := Dependents("container-technologies")
	if len(deps) != 2 {
		t.Errorf("dependents of container-technologies = %d, want 2", len(deps))
	}
	if Prerequisites("missing") != nil {
		t.Error("unknown course should have no prerequisites")
	}
}

func TestState(t *testing.T) {
	completed := map[string]bool{"html-css-fundamentals": true}
	started := map[string]bool{"javascript-essentials": true, "react-development": true}

	tests := []struct {
		id   string
		want CourseState
	}{
		{"html-css-fundamentals", StateCompleted},
		{"javascript-essentials", StateInProgress},
		{"react-development", StateLocked},
		{"sql-essentials", StateAvailable},
		{"unknown", StateLocked},
	}
	for _, tt := range tests {
		if got := State(tt.id, completed, started); got != tt.want {
			t.Errorf("State(%s) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"query matches title", Filter{Query: "react"}, []string{"react-development"}},
		{"query matches skill", Filter{Query: "KUBER"}, []string{"kubernetes-orchestration"}},
		{"query matches description", Filter{Query: "flexbox"}, []string{"html-css-fundamentals"}},
		{"difficulty", Filter{Difficulty: assessment.DifficultyAdvanced}, []string{
			"machine-learning-fundamentals", "deep-learning", "kubernetes-orchestration",
		}},
		{"skill exact", Filter{Skill: "sql"}, []string{"database-design", "sql-essentials"}},
		{"combined", Filter{Query: "data", Difficulty: assessment.DifficultyBeginner}, []string{
			"sql-essentials", "python-for-data-science",
		}},
		{"no match", Filter{Query: "cobol"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, course := range Search(tt.filter) {
				got = append(got, course.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearch_EmptyFilterReturnsAll(t *testing.T) {
	if got, want := len(Search(Filter{})), len(AllCourses()); got != want {
		t.Errorf("len = %d, want %d", got, want)
	}
}

func TestPaths(t *testing.T) {
	paths := AllPaths()
	var titles []string
	for _, p := range paths {
		titles = append(titles, p.Title)
	}
	want := []string{"Full Stack Web Developer", "Data Science Professional", "Cloud Solutions Architect"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	paths[0].CourseIDs[0] = "mutated"
	p, err := GetPath("full-stack-web-developer")
	if err != nil {
		t.Fatalf("GetPath: %v", err)
	}
	if p.CourseIDs[0] != "html-css-fundamentals" {
		t.Error("AllPaths returned shared slices")
	}
	if len(PathCourses(p)) != len(p.CourseIDs) {
		t.Errorf("PathCourses len = %d", len(PathCourses(p)))
	}

	if _, err := GetPath("nope"); err == nil {
		t.Error("expected error for unknown path")
	}
}

func TestPathProgress(t *testing.T) {
	p, err := GetPath("cloud-solutions-architect")
	if err != nil {
		t.Fatal(err)
	}

	prog := PathProgress(p, nil)
	if prog.Completed != 0 || prog.Total != 6 || prog.Percent != 0 {
		t.Errorf("empty progress = %+v", prog)
	}
	if prog.Next == nil || prog.Next.ID != "cloud-computing-basics" {
		t.Errorf("next = %v", prog.Next)
	}

	completed := map[string]bool{"cloud-computing-basics": true, "aws-fundamentals": true}
	prog = PathProgress(p, completed)
	if prog.Completed != 2 || prog.Percent != 33 {
		t.Errorf("progress = %+v, want 2 completed at 33%%", prog)
	}
	if prog.Next == nil || prog.Next.ID != "azure-fundamentals" {
		t.Errorf("next = %v", prog.Next)
	}

	all := make(map[string]bool)
	for _, id := range p.CourseIDs {
		all[id] = true
	}
	prog = PathProgress(p, all)
	if !prog.Done() || prog.Percent != 100 || prog.Next != nil {
		t.Errorf("finished progress = %+v", prog)
	}
}

func TestSkills(t *testing.T) {
	skills := Skills()
	seen := make(map[string]bool)
	for _, s := range skills {
		if seen[s] {
			t.Errorf("duplicate skill %q", s)
		}
		seen[s] = true
	}
	if skills[0] != "HTML/CSS" {
		t.Errorf("first skill = %q", skills[0])
	}
}
