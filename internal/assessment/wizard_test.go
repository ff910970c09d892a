package assessment

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeClock advances by one second on every call.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestWizard(t *testing.T) *Wizard {
	t.Helper()
	m, err := NewStepModel(sampleSteps())
	if err != nil {
		t.Fatalf("NewStepModel: %v", err)
	}
	clock := &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
	n := 0
	return NewWizard(m, testTable(t),
		WithClock(clock.Now),
		WithIDFunc(func() string { n++; return fmt.Sprintf("attempt-%d", n) }),
	)
}

func TestWizard_PhaseGuards(t *testing.T) {
	w := newTestWizard(t)

	if w.Phase() != PhaseNotStarted {
		t.Fatalf("initial phase = %v", w.Phase())
	}
	if _, err := w.Current(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Current before start: err = %v", err)
	}
	if err := w.Next(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Next before start: err = %v", err)
	}
	if err := w.Back(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Back before start: err = %v", err)
	}
	if w.Progress() != 0 {
		t.Errorf("Progress before start = %v, want 0", w.Progress())
	}

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start: err = %v", err)
	}
	if w.AttemptID() != "attempt-1" {
		t.Errorf("AttemptID = %q", w.AttemptID())
	}
}

func TestWizard_StepKindGuards(t *testing.T) {
	w := newTestWizard(t)
	_ = w.Start()

	if err := w.Select(0); !errors.Is(err, ErrWrongStepKind) {
		t.Errorf("Select on intro: err = %v", err)
	}
	if _, err := w.Send("hi"); !errors.Is(err, ErrWrongStepKind) {
		t.Errorf("Send on intro: err = %v", err)
	}
	if err := w.Back(); !errors.Is(err, ErrAtFirstStep) {
		t.Errorf("Back on first step: err = %v", err)
	}

	if err := w.Next(); err != nil {
		t.Fatalf("Next from intro: %v", err)
	}
	if _, err := w.Send("hi"); !errors.Is(err, ErrWrongStepKind) {
		t.Errorf("Send on question: err = %v", err)
	}
	if err := w.Select(3); !errors.Is(err, ErrOptionRange) {
		t.Errorf("Select(3) on 3 options: err = %v", err)
	}
	if err := w.Select(-1); !errors.Is(err, ErrOptionRange) {
		t.Errorf("Select(-1): err = %v", err)
	}
}

func TestWizard_AnswerRequiredToAdvance(t *testing.T) {
	w := newTestWizard(t)
	_ = w.Start()
	_ = w.Next()

	if w.CanAdvance() {
		t.Error("CanAdvance should be false before answering")
	}
	if err := w.Next(); !errors.Is(err, ErrAnswerRequired) {
		t.Errorf("Next without answer: err = %v", err)
	}

	if err := w.Select(1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !w.CanAdvance() {
		t.Error("CanAdvance should be true after answering")
	}
	if err := w.Next(); err != nil {
		t.Errorf("Next after answer: %v", err)
	}
	if w.Index() != 2 {
		t.Errorf("Index = %d, want 2", w.Index())
	}
}

func TestWizard_BackKeepsAnswers(t *testing.T) {
	w := newTestWizard(t)
	_ = w.Start()
	_ = w.Next()
	_ = w.Select(2)
	_ = w.Next()

	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if a, ok := w.Answer("q1"); !ok || a != 2 {
		t.Errorf("Answer(q1) = (%d, %v), want (2, true)", a, ok)
	}

	// Answers may be changed until the attempt is finished.
	if err := w.Select(1); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if a, _ := w.Answer("q1"); a != 1 {
		t.Errorf("Answer(q1) after change = %d, want 1", a)
	}
}

func walkToChat(t *testing.T, w *Wizard, answers map[string]int) {
	t.Helper()
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for {
		s, err := w.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if s.Kind == KindQuestion {
			if err := w.Select(answers[s.ID]); err != nil {
				t.Fatalf("Select %s: %v", s.ID, err)
			}
		}
		if s.Kind == KindChat {
			return
		}
		if err := w.Next(); err != nil {
			t.Fatalf("Next from %s: %v", s.ID, err)
		}
	}
}

func TestWizard_ChatTranscript(t *testing.T) {
	w := newTestWizard(t)
	walkToChat(t, w, map[string]int{"q1": 1, "q2": 0, "q3": 1})

	tr := w.Transcript("chat")
	if len(tr) != 1 || tr[0].Role != RoleAssistant || tr[0].Text != "Any questions?" {
		t.Fatalf("seeded transcript = %+v", tr)
	}

	if _, err := w.Send("   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("Send blank: err = %v", err)
	}

	reply, err := w.Send("I'm stuck on timing")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Role != RoleAssistant || reply.Text != "hard reply" {
		t.Errorf("reply = %+v, want hard reply", reply)
	}

	// Unmatched messages cycle through fallbacks deterministically.
	r1, _ := w.Send("banana")
	r2, _ := w.Send("apple")
	r3, _ := w.Send("cherry")
	if r1.Text != "fb0" || r2.Text != "fb1" || r3.Text != "fb0" {
		t.Errorf("fallbacks = %q %q %q", r1.Text, r2.Text, r3.Text)
	}

	tr = w.Transcript("chat")
	if len(tr) != 9 {
		t.Fatalf("transcript length = %d, want 9", len(tr))
	}
	if tr[1].Role != RoleUser || tr[1].Text != "I'm stuck on timing" {
		t.Errorf("user message = %+v", tr[1])
	}

	// Leaving and re-entering the chat step must not reseed it.
	_ = w.Back()
	_ = w.Next()
	if got := len(w.Transcript("chat")); got != 9 {
		t.Errorf("transcript after re-entry = %d, want 9", got)
	}
}

func TestWizard_NextAtLastStep(t *testing.T) {
	w := newTestWizard(t)
	walkToChat(t, w, map[string]int{"q1": 1, "q2": 0, "q3": 1})

	if !w.IsLast() {
		t.Fatal("expected to be on last step")
	}
	if err := w.Next(); !errors.Is(err, ErrLastStep) {
		t.Errorf("Next on last step: err = %v", err)
	}
}

func TestWizard_FinishRequiresLastStep(t *testing.T) {
	w := newTestWizard(t)
	_ = w.Start()
	if _, err := w.Finish(); !errors.Is(err, ErrNotLastStep) {
		t.Errorf("Finish on intro: err = %v", err)
	}
}

func TestWizard_FinishScoresAttempt(t *testing.T) {
	w := newTestWizard(t)
	// q1 correct, q2 wrong, q3 correct.
	walkToChat(t, w, map[string]int{"q1": 1, "q2": 1, "q3": 1})
	_, _ = w.Send("how long?")

	r, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if w.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, want completed", w.Phase())
	}
	if r.Correct != 2 || r.Total != 3 {
		t.Errorf("correct/total = %d/%d, want 2/3", r.Correct, r.Total)
	}
	if r.Score != 67 {
		t.Errorf("Score = %d, want 67", r.Score)
	}
	if r.SkillScores["Math"] != 100 || r.SkillScores["Go"] != 0 {
		t.Errorf("SkillScores = %v", r.SkillScores)
	}
	if r.ChatMessages != 1 {
		t.Errorf("ChatMessages = %d, want 1", r.ChatMessages)
	}
	if r.AttemptID != "attempt-1" {
		t.Errorf("AttemptID = %q", r.AttemptID)
	}
	if r.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", r.Duration)
	}
	if w.Progress() != 1 {
		t.Errorf("Progress after finish = %v, want 1", w.Progress())
	}

	if _, err := w.Finish(); !errors.Is(err, ErrCompleted) {
		t.Errorf("second Finish: err = %v", err)
	}
	if err := w.Select(0); !errors.Is(err, ErrCompleted) {
		t.Errorf("Select after finish: err = %v", err)
	}

	got, ok := w.Result()
	if !ok || got.Score != 67 {
		t.Errorf("Result() = (%+v, %v)", got, ok)
	}
	got.SkillScores["Math"] = 0
	again, _ := w.Result()
	if again.SkillScores["Math"] != 100 {
		t.Error("Result() exposes internal map")
	}
}

func TestWizard_FinishRejectsUnanswered(t *testing.T) {
	// The last step is itself a question, so Finish is reachable unanswered.
	m, err := NewStepModel([]Step{
		{ID: "intro", Kind: KindIntro},
		{ID: "q1", Kind: KindQuestion, Body: "?", Options: []string{"a", "b"}, Answer: 0},
	})
	if err != nil {
		t.Fatalf("NewStepModel: %v", err)
	}
	w := NewWizard(m, nil)
	_ = w.Start()
	_ = w.Next()

	_, err = w.Finish()
	if !errors.Is(err, ErrUnanswered) {
		t.Fatalf("Finish with unanswered: err = %v", err)
	}

	_ = w.Select(0)
	r, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if r.Score != 100 {
		t.Errorf("Score = %d, want 100", r.Score)
	}
}

func TestWizard_ResetForRetake(t *testing.T) {
	w := newTestWizard(t)
	walkToChat(t, w, map[string]int{"q1": 1, "q2": 0, "q3": 1})
	_, _ = w.Send("hello")
	if _, err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	w.Reset()
	if w.Phase() != PhaseNotStarted {
		t.Errorf("phase after reset = %v", w.Phase())
	}
	if _, ok := w.Result(); ok {
		t.Error("result should be cleared after reset")
	}
	if _, ok := w.Answer("q1"); ok {
		t.Error("answers should be cleared after reset")
	}

	if err := w.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if w.AttemptID() != "attempt-2" {
		t.Errorf("AttemptID after retake = %q, want attempt-2", w.AttemptID())
	}
	if len(w.Transcript("chat")) != 0 {
		t.Error("transcript should be cleared after reset")
	}
}

func TestWizard_Progress(t *testing.T) {
	w := newTestWizard(t)
	_ = w.Start()
	if got := w.Progress(); got != 0.2 {
		t.Errorf("Progress at step 0 = %v, want 0.2", got)
	}
	_ = w.Next()
	if got := w.Progress(); got != 0.4 {
		t.Errorf("Progress at step 1 = %v, want 0.4", got)
	}
}

func TestWizard_WithoutModel(t *testing.T) {
	for name, m := range map[string]*StepModel{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			w := NewWizard(m, nil, WithClock(nil), WithIDFunc(nil), nil)

			if err := w.Start(); !errors.Is(err, ErrInvalidModel) {
				t.Fatalf("Start err = %v, want ErrInvalidModel", err)
			}
			if w.Phase() != PhaseNotStarted {
				t.Errorf("phase = %v after failed start", w.Phase())
			}
			if _, err := w.Current(); err == nil {
				t.Error("Current should fail")
			}
			if err := w.Next(); err == nil {
				t.Error("Next should fail")
			}
			if _, err := w.Finish(); err == nil {
				t.Error("Finish should fail")
			}
			if w.Progress() != 0 || w.IsLast() {
				t.Errorf("Progress = %v, IsLast = %v", w.Progress(), w.IsLast())
			}
		})
	}
}

func TestWizard_NilOptionsKeepDefaults(t *testing.T) {
	m, err := NewStepModel(sampleSteps())
	if err != nil {
		t.Fatal(err)
	}
	w := NewWizard(m, nil, WithClock(nil), WithIDFunc(nil))
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if w.AttemptID() == "" || w.StartedAt().IsZero() {
		t.Errorf("attempt = %q started %v, want defaults", w.AttemptID(), w.StartedAt())
	}
}

func TestPercentAndSkillLevel(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.correct, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}

	levels := map[int]Difficulty{
		0:   DifficultyBeginner,
		49:  DifficultyBeginner,
		50:  DifficultyIntermediate,
		79:  DifficultyIntermediate,
		80:  DifficultyAdvanced,
		100: DifficultyAdvanced,
	}
	for score, want := range levels {
		if got := SkillLevel(score); got != want {
			t.Errorf("SkillLevel(%d) = %s, want %s", score, got, want)
		}
	}
}
