package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/skilldash/internal/store"
)

func newTestAnalytics(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(ReposFrom(st), "u1", nil), st
}

func completed(id, title string, score, max int, start time.Time, took time.Duration) store.AssessmentRecord {
	done := start.Add(took)
	return store.AssessmentRecord{
		ID: id, UserID: "u1", AssessmentID: title, Title: title,
		Status: store.StatusCompleted, Score: score, MaxScore: max,
		StartedAt: start, CompletedAt: &done,
	}
}

func TestScoreBand(t *testing.T) {
	tests := []struct {
		pct  int
		want Band
	}{
		{100, BandExcellent},
		{80, BandExcellent},
		{79, BandGood},
		{60, BandGood},
		{59, BandNeedsWork},
		{0, BandNeedsWork},
	}
	for _, tt := range tests {
		if got := ScoreBand(tt.pct); got != tt.want {
			t.Errorf("ScoreBand(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{12*time.Minute + 20*time.Second, "12m"},
		{65 * time.Minute, "1h 05m"},
		{26*time.Hour + 30*time.Second, "26h 01m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestReport(t *testing.T) {
	svc, st := newTestAnalytics(t)
	ctx := context.Background()
	march := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	for _, r := range []store.AssessmentRecord{
		completed("a1", "React Development", 2, 4, march, 10*time.Minute),
		completed("a2", "React Development", 4, 4, april, 5*time.Minute),
		completed("a3", "Python Basics", 3, 5, april.Add(time.Hour), 15*time.Minute),
		{ID: "a4", UserID: "u1", AssessmentID: "js", Title: "JS", Status: store.StatusInProgress, StartedAt: april},
	} {
		if err := st.AssessmentRepo().Record(ctx, r); err != nil {
			t.Fatalf("record %s: %v", r.ID, err)
		}
	}
	for _, sk := range []store.UserSkill{
		{UserID: "u1", Name: "React", Score: 100, Level: "Advanced", Source: "react-development"},
		{UserID: "u1", Name: "Hooks", Score: 50, Level: "Intermediate", Source: "react-development"},
		{UserID: "u1", Name: "Go", Source: store.SkillSourceProfile},
	} {
		if err := st.SkillRepo().Upsert(ctx, sk); err != nil {
			t.Fatalf("upsert %s: %v", sk.Name, err)
		}
	}
	if err := st.LearningPathRepo().Enroll(ctx, "u1", "frontend-developer", "Frontend Developer"); err != nil {
		t.Fatal(err)
	}
	if err := st.LearningPathRepo().SetCourseCompleted(ctx, "u1", "frontend-developer", "react-fundamentals", true); err != nil {
		t.Fatal(err)
	}

	rep, err := svc.Report(ctx, 0)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Target != DefaultTarget {
		t.Errorf("target = %d, want default %d", rep.Target, DefaultTarget)
	}

	want := Metrics{
		SkillsTracked:        3,
		AssessmentsCompleted: 3,
		CoursesCompleted:     1,
		AverageScore:         70, // (50 + 100 + 60) / 3
		BestScore:            100,
		TimeSpent:            30 * time.Minute,
	}
	if rep.Metrics != want {
		t.Errorf("metrics = %+v, want %+v", rep.Metrics, want)
	}

	if len(rep.Skills) != 2 || rep.Skills[0].Name != "Hooks" || rep.Skills[1].Name != "React" {
		t.Fatalf("skills = %+v, want Hooks then React", rep.Skills)
	}
	if rep.Skills[0].Reached() || !rep.Skills[1].Reached() {
		t.Errorf("reached = %v/%v, want false/true", rep.Skills[0].Reached(), rep.Skills[1].Reached())
	}

	if len(rep.History) != 3 {
		t.Fatalf("history = %+v", rep.History)
	}
	first := rep.History[0]
	if first.Title != "Python Basics" || first.Percent != 60 || first.Band != BandGood {
		t.Errorf("newest entry = %+v", first)
	}
	if last := rep.History[2]; last.Percent != 50 || last.Band != BandNeedsWork || !last.CompletedAt.Equal(march.Add(10*time.Minute)) {
		t.Errorf("oldest entry = %+v", last)
	}

	if len(rep.Monthly) != 2 {
		t.Fatalf("monthly = %+v", rep.Monthly)
	}
	if rep.Monthly[0].Label() != "Mar 2026" || rep.Monthly[0].Spent != 10*time.Minute {
		t.Errorf("march = %+v", rep.Monthly[0])
	}
	if rep.Monthly[1].Label() != "Apr 2026" || rep.Monthly[1].Spent != 20*time.Minute {
		t.Errorf("april = %+v", rep.Monthly[1])
	}
}

func TestReport_CustomTarget(t *testing.T) {
	svc, st := newTestAnalytics(t)
	ctx := context.Background()
	if err := st.SkillRepo().Upsert(ctx, store.UserSkill{UserID: "u1", Name: "Hooks", Score: 50, Source: "react-development"}); err != nil {
		t.Fatal(err)
	}

	rep, err := svc.Report(ctx, 50)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Target != 50 || len(rep.Skills) != 1 || !rep.Skills[0].Reached() {
		t.Errorf("report = %+v", rep)
	}

	rep, _ = svc.Report(ctx, 101)
	if rep.Target != DefaultTarget {
		t.Errorf("target = %d, want default for out-of-range input", rep.Target)
	}
}

func TestReport_Empty(t *testing.T) {
	svc, _ := newTestAnalytics(t)
	rep, err := svc.Report(context.Background(), 0)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if rep.Metrics != (Metrics{}) || len(rep.Skills) != 0 || len(rep.History) != 0 || len(rep.Monthly) != 0 {
		t.Errorf("empty report = %+v", rep)
	}
}

func TestMonthlyKeepsNewest(t *testing.T) {
	var recs []store.AssessmentRecord
	for m := 1; m <= 8; m++ {
		start := time.Date(2026, time.Month(m), 5, 9, 0, 0, 0, time.UTC)
		recs = append(recs, completed("a", "t", 1, 1, start, time.Duration(m)*time.Minute))
	}
	got := monthly(recs, MonthsShown)
	if len(got) != MonthsShown || got[0].Label() != "Mar 2026" || got[5].Spent != 8*time.Minute {
		t.Errorf("monthly = %+v", got)
	}
}
