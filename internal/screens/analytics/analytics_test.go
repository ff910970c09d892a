package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	report "github.com/abhisek/skilldash/internal/analytics"
)

type mockReporter struct {
	rep     report.Report
	err     error
	targets []int
}

func (m *mockReporter) Report(_ context.Context, target int) (report.Report, error) {
	m.targets = append(m.targets, target)
	r := m.rep
	r.Target = target
	return r, m.err
}

func sampleReport() report.Report {
	return report.Report{
		Metrics: report.Metrics{SkillsTracked: 2, AssessmentsCompleted: 3, CoursesCompleted: 1, AverageScore: 70, TimeSpent: 30 * time.Minute},
		Skills: []report.SkillProgress{
			{Name: "Hooks", Current: 50},
			{Name: "React", Current: 100},
		},
		History: []report.ScoreEntry{
			{Title: "Python Basics", CompletedAt: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC), Percent: 60, Band: report.BandGood},
		},
		Monthly: []report.MonthTotal{
			{Month: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Spent: 20 * time.Minute},
		},
	}
}

func TestAnalyticsScreen_ShowsReport(t *testing.T) {
	m := &mockReporter{rep: sampleReport()}
	s := New(m)
	s.Update(s.Init()())

	if len(m.targets) != 1 || m.targets[0] != report.DefaultTarget {
		t.Errorf("targets = %v, want default", m.targets)
	}
	view := s.View(120, 60)
	for _, want := range []string{
		"Key metrics", "70%", "30m",
		"Skill progress (target 80%)", "Hooks", "In Progress", "Complete",
		"Score history", "Python Basics", "Good",
		"Learning time", "Apr 2026", "20m",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAnalyticsScreen_AdjustTarget(t *testing.T) {
	m := &mockReporter{rep: sampleReport()}
	s := New(m)
	s.Update(s.Init()())

	_, cmd := s.Update(tea.KeyPressMsg{Code: '-', Text: "-"})
	if cmd == nil {
		t.Fatal("expected reload after lowering the target")
	}
	s.Update(cmd())
	if !strings.Contains(s.View(120, 60), "target 75%") {
		t.Error("target not lowered")
	}

	s.target = 100
	if _, cmd := s.Update(tea.KeyPressMsg{Code: '+', Text: "+"}); cmd != nil {
		t.Error("target should not exceed 100")
	}
	if got := m.targets; len(got) != 2 || got[1] != 75 {
		t.Errorf("targets = %v", got)
	}
}

func TestAnalyticsScreen_Empty(t *testing.T) {
	s := New(&mockReporter{})
	s.Update(s.Init()())
	view := s.View(120, 60)
	if !strings.Contains(view, "Complete an assessment") || !strings.Contains(view, "No completed assessments yet") {
		t.Errorf("empty state not shown:\n%s", view)
	}
}

func TestAnalyticsScreen_Error(t *testing.T) {
	s := New(&mockReporter{err: errors.New("disk on fire")})
	s.Update(s.Init()())
	if !strings.Contains(s.View(120, 60), "disk on fire") {
		t.Error("error not shown")
	}
}

func TestAnalyticsScreen_Scrolls(t *testing.T) {
	s := New(&mockReporter{rep: sampleReport()})
	s.Update(s.Init()())

	for range 50 {
		s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	}
	view := s.View(120, 5)
	if strings.Contains(view, "Key metrics") {
		t.Error("header should scroll out of a short view")
	}
	if !strings.Contains(view, "Apr 2026") {
		t.Errorf("last section should be visible at the bottom:\n%s", view)
	}
}
