package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil || s.DB() == nil {
		t.Fatal("expected non-nil driver and db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SettingsRepo().Set(ctx, "k", []byte(`"v"`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.SettingsRepo().Get(ctx, "k")
	if err != nil || !ok || string(got) != `"v"` {
		t.Errorf("Get after reopen = (%q, %v, %v)", got, ok, err)
	}
}

func TestProfileUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	p, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile when none exists")
	}

	if err := repo.Upsert(ctx, &Profile{UserID: "u1", Email: "ada@example.com", FullName: "Ada"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	first, err := repo.Get(ctx, "u1")
	if err != nil || first == nil {
		t.Fatalf("get: (%v, %v)", first, err)
	}

	if err := repo.Upsert(ctx, &Profile{UserID: "u1", Email: "ada@example.com", FullName: "Ada L.", Company: "Engines"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Ada L." || got.Company != "Engines" {
		t.Errorf("profile = %+v", got)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed: %v -> %v", first.CreatedAt, got.CreatedAt)
	}

	if err := repo.Upsert(ctx, &Profile{}); err == nil {
		t.Error("expected error for empty user id")
	}
}

func TestSkillRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.SkillRepo()
	ctx := context.Background()

	for _, sk := range []UserSkill{
		{UserID: "u1", Name: "Go", Source: "profile"},
		{UserID: "u1", Name: "React", Level: "Beginner", Score: 40, Source: "react-development"},
		{UserID: "u2", Name: "Go"},
	} {
		if err := repo.Upsert(ctx, sk); err != nil {
			t.Fatalf("upsert %s: %v", sk.Name, err)
		}
	}

	// Re-assessing updates the existing row.
	if err := repo.Upsert(ctx, UserSkill{UserID: "u1", Name: "React", Level: "Advanced", Score: 90, Source: "react-development"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	skills, err := repo.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("len = %d, want 2", len(skills))
	}
	if skills[1].Name != "React" || skills[1].Level != "Advanced" || skills[1].Score != 90 {
		t.Errorf("React skill = %+v", skills[1])
	}

	if err := repo.Delete(ctx, "u1", "Go"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "u1", "Missing"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
	n, err := repo.Count(ctx, "u1")
	if err != nil || n != 1 {
		t.Errorf("Count = (%d, %v), want 1", n, err)
	}
}

func TestAssessmentRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	done1 := base.Add(10 * time.Minute)
	done2 := base.Add(2 * time.Hour)

	recs := []AssessmentRecord{
		{ID: "a1", UserID: "u1", AssessmentID: "react-development", Title: "React", Status: StatusCompleted,
			Score: 3, MaxScore: 4, SkillScores: map[string]int{"React": 100, "Hooks": 50}, StartedAt: base, CompletedAt: &done1},
		{ID: "a2", UserID: "u1", AssessmentID: "javascript-fundamentals", Title: "JS", Status: StatusCompleted,
			Score: 5, MaxScore: 5, StartedAt: base.Add(time.Hour), CompletedAt: &done2},
		{ID: "a3", UserID: "u1", AssessmentID: "react-development", Title: "React", Status: StatusInProgress,
			StartedAt: base.Add(3 * time.Hour)},
		{ID: "b1", UserID: "u2", AssessmentID: "react-development", Title: "React", Status: StatusCompleted,
			Score: 1, MaxScore: 4, StartedAt: base, CompletedAt: &done1},
	}
	for _, r := range recs {
		if err := repo.Record(ctx, r); err != nil {
			t.Fatalf("record %s: %v", r.ID, err)
		}
	}

	total, completed, err := repo.Counts(ctx, "u1")
	if err != nil || total != 3 || completed != 2 {
		t.Errorf("Counts = (%d, %d, %v), want (3, 2)", total, completed, err)
	}

	recent, err := repo.RecentCompleted(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "a2" || recent[1].ID != "a1" {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[1].SkillScores["Hooks"] != 50 {
		t.Errorf("skill scores = %v", recent[1].SkillScores)
	}
	if recent[1].CompletedAt == nil || !recent[1].CompletedAt.Equal(done1) {
		t.Errorf("completed_at = %v, want %v", recent[1].CompletedAt, done1)
	}

	latest, err := repo.LatestCompleted(ctx, "u1")
	if err != nil {
		t.Fatalf("LatestCompleted: %v", err)
	}
	if len(latest) != 2 || latest["react-development"].ID != "a1" || latest["javascript-fundamentals"].ID != "a2" {
		t.Fatalf("LatestCompleted = %+v, in-progress a3 must be skipped", latest)
	}

	// Finishing the in-progress attempt replaces the row and makes it the latest.
	done3 := base.Add(4 * time.Hour)
	a3 := recs[2]
	a3.Status = StatusCompleted
	a3.Score, a3.MaxScore = 2, 4
	a3.CompletedAt = &done3
	if err := repo.Record(ctx, a3); err != nil {
		t.Fatalf("re-record: %v", err)
	}
	all, err := repo.List(ctx, "u1")
	if err != nil || len(all) != 3 || all[0].ID != "a3" || all[0].Status != StatusCompleted {
		t.Errorf("List = (%+v, %v)", all, err)
	}
	latest, err = repo.LatestCompleted(ctx, "u1")
	if err != nil || latest["react-development"].ID != "a3" {
		t.Errorf("LatestCompleted after finish = (%+v, %v), want a3", latest, err)
	}

	none, err := repo.LatestCompleted(ctx, "nobody")
	if err != nil || len(none) != 0 {
		t.Errorf("LatestCompleted unknown user = (%v, %v)", none, err)
	}
}

func TestAssessmentRecordPercent(t *testing.T) {
	tests := []struct {
		score, max int
		want       int
		ok         bool
	}{
		{3, 4, 75, true},
		{2, 3, 67, true},
		{0, 5, 0, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := AssessmentRecord{Score: tt.score, MaxScore: tt.max}.Percent()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Percent(%d/%d) = (%d, %v), want (%d, %v)", tt.score, tt.max, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLearningPathRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearningPathRepo()
	ctx := context.Background()

	if err := repo.Enroll(ctx, "u1", "full-stack", "Full Stack Web Developer"); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := repo.SetCourseCompleted(ctx, "u1", "full-stack", "html-css", true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// Enrolling again must not reset progress.
	if err := repo.Enroll(ctx, "u1", "full-stack", "Full Stack Web Developer"); err != nil {
		t.Fatalf("re-enroll: %v", err)
	}
	if err := repo.SetCourseCompleted(ctx, "u1", "full-stack", "js-basics", true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := repo.SetCourseCompleted(ctx, "u1", "full-stack", "js-basics", true); err != nil {
		t.Fatalf("complete twice: %v", err)
	}

	e, err := repo.Get(ctx, "u1", "full-stack")
	if err != nil || e == nil {
		t.Fatalf("get: (%v, %v)", e, err)
	}
	if len(e.CompletedCourses) != 2 || e.CompletedCourses[0] != "html-css" || e.CompletedCourses[1] != "js-basics" {
		t.Errorf("completed = %v", e.CompletedCourses)
	}

	if err := repo.SetCourseCompleted(ctx, "u1", "full-stack", "html-css", false); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	e, _ = repo.Get(ctx, "u1", "full-stack")
	if len(e.CompletedCourses) != 1 || e.CompletedCourses[0] != "js-basics" {
		t.Errorf("completed after undo = %v", e.CompletedCourses)
	}

	err = repo.SetCourseCompleted(ctx, "u1", "data-science", "python", true)
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("err = %v, want ErrNotEnrolled", err)
	}

	n, err := repo.Count(ctx, "u1")
	if err != nil || n != 1 {
		t.Errorf("Count = (%d, %v), want 1", n, err)
	}
	list, err := repo.List(ctx, "u1")
	if err != nil || len(list) != 1 || list[0].Title != "Full Stack Web Developer" {
		t.Errorf("List = (%+v, %v)", list, err)
	}
}

func TestSettingsRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "prefs"); err != nil || ok {
		t.Fatalf("Get missing = (%v, %v)", ok, err)
	}
	if err := repo.Set(ctx, "prefs", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.Set(ctx, "prefs", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := repo.Get(ctx, "prefs")
	if err != nil || !ok || string(v) != `{"a":2}` {
		t.Errorf("Get = (%q, %v, %v)", v, ok, err)
	}
	if err := repo.Delete(ctx, "prefs"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "prefs"); ok {
		t.Error("key still present after delete")
	}
}

func TestActivityRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ActivityRepo()
	ctx := context.Background()

	score := 80
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var last int64
	for i, title := range []string{"first", "second", "third"} {
		a := Activity{UserID: "u1", Kind: ActivitySkillAdded, Title: title, Timestamp: ts}
		if i == 2 {
			a.Kind = ActivityAssessmentCompleted
			a.Score = &score
		}
		got, err := repo.Append(ctx, a)
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if got.Sequence <= last {
			t.Errorf("sequence %d not greater than %d", got.Sequence, last)
		}
		last = got.Sequence
	}

	recent, err := repo.Recent(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Title != "third" || recent[1].Title != "second" {
		t.Fatalf("recent = %+v", recent)
	}
	if recent[0].Score == nil || *recent[0].Score != 80 {
		t.Errorf("score = %v", recent[0].Score)
	}
	if recent[1].Score != nil {
		t.Errorf("unexpected score %v", *recent[1].Score)
	}

	if _, err := repo.Append(ctx, Activity{UserID: "u1"}); err == nil {
		t.Error("expected error for missing kind")
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SkillRepo().Upsert(ctx, UserSkill{UserID: "u1", Name: "Go"}); err != nil {
		t.Fatal(err)
	}
	before, err := s.ActivityRepo().Append(ctx, Activity{UserID: "u1", Kind: ActivitySkillAdded})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n, _ := s.SkillRepo().Count(ctx, "u1"); n != 0 {
		t.Errorf("skills after reset = %d", n)
	}
	if got, _ := s.ActivityRepo().Recent(ctx, "u1", 0); len(got) != 0 {
		t.Errorf("activity after reset = %d", len(got))
	}

	after, err := s.ActivityRepo().Append(ctx, Activity{UserID: "u1", Kind: ActivitySkillAdded})
	if err != nil {
		t.Fatal(err)
	}
	if after.Sequence <= before.Sequence {
		t.Errorf("sequence rewound: %d after %d", after.Sequence, before.Sequence)
	}
}

func TestInTx(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.ActivityRepo().Append(ctx, Activity{UserID: "u1", Kind: ActivitySkillAdded})
	if err != nil {
		t.Fatal(err)
	}

	errBoom := errors.New("boom")
	err = s.InTx(ctx, func(tx *Store) error {
		if err := tx.SkillRepo().Upsert(ctx, UserSkill{UserID: "u1", Name: "Go"}); err != nil {
			return err
		}
		if _, err := tx.ActivityRepo().Append(ctx, Activity{UserID: "u1", Kind: ActivitySkillAdded}); err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("InTx err = %v, want boom", err)
	}
	if n, _ := s.SkillRepo().Count(ctx, "u1"); n != 0 {
		t.Errorf("skills after rollback = %d, want 0", n)
	}
	if got, _ := s.ActivityRepo().Recent(ctx, "u1", 0); len(got) != 1 {
		t.Errorf("activity after rollback = %d, want 1", len(got))
	}

	var inside Activity
	err = s.InTx(ctx, func(tx *Store) error {
		if err := tx.SkillRepo().Upsert(ctx, UserSkill{UserID: "u1", Name: "Go"}); err != nil {
			return err
		}
		// Nested calls join the open transaction.
		return tx.InTx(ctx, func(tx *Store) error {
			inside, err = tx.ActivityRepo().Append(ctx, Activity{UserID: "u1", Kind: ActivitySkillAdded})
			return err
		})
	})
	if err != nil {
		t.Fatalf("InTx commit: %v", err)
	}
	if n, _ := s.SkillRepo().Count(ctx, "u1"); n != 1 {
		t.Errorf("skills after commit = %d, want 1", n)
	}
	if inside.Sequence != first.Sequence+1 {
		t.Errorf("sequence = %d, want %d (rolled back value reused)", inside.Sequence, first.Sequence+1)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("SKILLDASH_DB", want)
		got, err := DefaultDBPath()
		if err != nil || got != want {
			t.Errorf("DefaultDBPath = (%q, %v), want %q", got, err, want)
		}
		if _, err := os.Stat(filepath.Dir(want)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("SKILLDASH_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		want := filepath.Join(dir, "skilldash", "skilldash.db")
		if err != nil || got != want {
			t.Errorf("DefaultDBPath = (%q, %v), want %q", got, err, want)
		}
	})
}
