package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Phase is the lifecycle phase of a wizard.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithClock overrides the time source. A nil clock is ignored.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// WithIDFunc overrides the attempt ID generator. A nil func is ignored.
func WithIDFunc(id func() string) Option {
	return func(w *Wizard) {
		if id != nil {
			w.newID = id
		}
	}
}

// Wizard walks a StepModel, collecting answers and chat transcripts.
// A Wizard is not safe for concurrent use.
type Wizard struct {
	model     *StepModel
	assistant *Assistant
	now       func() time.Time
	newID     func() string

	phase       Phase
	index       int
	attemptID   string
	answers     map[string]int
	transcripts map[string][]Message
	unmatched   int
	startedAt   time.Time
	finishedAt  time.Time
	result      *Result
}

// NewWizard creates a wizard over model. A nil table selects the default
// assistant replies.
func NewWizard(model *StepModel, table *ResponseTable, opts ...Option) *Wizard {
	w := &Wizard{
		model:       model,
		assistant:   NewAssistant(table),
		now:         time.Now,
		newID:       func() string { return uuid.New().String() },
		answers:     make(map[string]int),
		transcripts: make(map[string][]Message),
	}
	for _, o := range opts {
		if o != nil {
			o(w)
		}
	}
	return w
}

// Model returns the step model.
func (w *Wizard) Model() *StepModel { return w.model }

// Phase returns the current phase.
func (w *Wizard) Phase() Phase { return w.phase }

// Index returns the current step index.
func (w *Wizard) Index() int { return w.index }

// AttemptID returns the ID of the current attempt, empty before Start.
func (w *Wizard) AttemptID() string { return w.attemptID }

// StartedAt returns when the current attempt began, zero before Start.
func (w *Wizard) StartedAt() time.Time { return w.startedAt }

// Start begins a new attempt at the first step. It fails with
// ErrInvalidModel when the wizard has no steps to walk.
func (w *Wizard) Start() error {
	if w.model == nil || w.model.Len() == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidModel)
	}
	switch w.phase {
	case PhaseInProgress:
		return ErrAlreadyStarted
	case PhaseCompleted:
		return ErrCompleted
	}
	w.phase = PhaseInProgress
	w.index = 0
	w.attemptID = w.newID()
	w.startedAt = w.now()
	w.enter()
	return nil
}

// Reset discards the current attempt so the wizard can be started again.
func (w *Wizard) Reset() {
	w.phase = PhaseNotStarted
	w.index = 0
	w.attemptID = ""
	w.answers = make(map[string]int)
	w.transcripts = make(map[string][]Message)
	w.unmatched = 0
	w.startedAt = time.Time{}
	w.finishedAt = time.Time{}
	w.result = nil
}

// Current returns the active step.
func (w *Wizard) Current() (Step, error) {
	if err := w.requireInProgress(); err != nil {
		return Step{}, err
	}
	s, _ := w.model.Step(w.index)
	return s, nil
}

// Progress reports completion as a fraction in [0, 1].
func (w *Wizard) Progress() float64 {
	switch {
	case w.phase == PhaseNotStarted:
		return 0
	case w.phase == PhaseCompleted:
		return 1
	case w.model == nil || w.model.Len() == 0:
		return 0
	}
	return float64(w.index+1) / float64(w.model.Len())
}

// IsLast reports whether the active step is the final one.
func (w *Wizard) IsLast() bool {
	return w.model != nil && w.index == w.model.Len()-1
}

// Select records option as the answer to the active question step.
func (w *Wizard) Select(option int) error {
	s, err := w.Current()
	if err != nil {
		return err
	}
	if s.Kind != KindQuestion {
		return fmt.Errorf("%w: select on %s step", ErrWrongStepKind, s.Kind)
	}
	if option < 0 || option >= len(s.Options) {
		return fmt.Errorf("%w: %d (have %d options)", ErrOptionRange, option, len(s.Options))
	}
	w.answers[s.ID] = option
	return nil
}

// Answer returns the recorded answer for a question step.
func (w *Wizard) Answer(stepID string) (int, bool) {
	a, ok := w.answers[stepID]
	return a, ok
}

// Send posts a user message on the active chat step and returns the
// assistant's reply, which is also appended to the transcript.
func (w *Wizard) Send(text string) (Message, error) {
	s, err := w.Current()
	if err != nil {
		return Message{}, err
	}
	if s.Kind != KindChat {
		return Message{}, fmt.Errorf("%w: send on %s step", ErrWrongStepKind, s.Kind)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	w.transcripts[s.ID] = append(w.transcripts[s.ID], Message{Role: RoleUser, Text: text, At: w.now()})

	reply, matched := w.assistant.Reply(text, w.unmatched)
	if !matched {
		w.unmatched++
	}
	msg := Message{Role: RoleAssistant, Text: reply, At: w.now()}
	w.transcripts[s.ID] = append(w.transcripts[s.ID], msg)
	return msg, nil
}

// Transcript returns a copy of the chat transcript of a step.
func (w *Wizard) Transcript(stepID string) []Message {
	return append([]Message(nil), w.transcripts[stepID]...)
}

// CanAdvance reports whether Next would succeed.
func (w *Wizard) CanAdvance() bool {
	return w.checkAdvance() == nil
}

// Next moves to the following step.
func (w *Wizard) Next() error {
	if err := w.checkAdvance(); err != nil {
		return err
	}
	w.index++
	w.enter()
	return nil
}

// Back moves to the previous step. Answers and transcripts are kept.
func (w *Wizard) Back() error {
	if err := w.requireInProgress(); err != nil {
		return err
	}
	if w.index == 0 {
		return ErrAtFirstStep
	}
	w.index--
	return nil
}

// Finish completes the attempt and computes its result.
func (w *Wizard) Finish() (Result, error) {
	if err := w.requireInProgress(); err != nil {
		return Result{}, err
	}
	if !w.IsLast() {
		return Result{}, ErrNotLastStep
	}
	for _, s := range w.model.steps {
		if s.Kind != KindQuestion {
			continue
		}
		if _, ok := w.answers[s.ID]; !ok {
			return Result{}, fmt.Errorf("%w: %s", ErrUnanswered, s.ID)
		}
	}

	w.finishedAt = w.now()
	w.phase = PhaseCompleted
	r := w.score()
	w.result = &r
	return r, nil
}

// Result returns the result of a completed attempt.
func (w *Wizard) Result() (Result, bool) {
	if w.result == nil {
		return Result{}, false
	}
	return w.result.clone(), true
}

func (w *Wizard) checkAdvance() error {
	s, err := w.Current()
	if err != nil {
		return err
	}
	if w.IsLast() {
		return ErrLastStep
	}
	if s.Kind == KindQuestion {
		if _, ok := w.answers[s.ID]; !ok {
			return ErrAnswerRequired
		}
	}
	return nil
}

func (w *Wizard) requireInProgress() error {
	if w.model == nil {
		return ErrInvalidModel
	}
	switch w.phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseCompleted:
		return ErrCompleted
	}
	return nil
}

// enter seeds the transcript of a chat step the first time it is visited.
func (w *Wizard) enter() {
	if w.model == nil {
		return
	}
	s, ok := w.model.Step(w.index)
	if !ok || s.Kind != KindChat {
		return
	}
	if _, seen := w.transcripts[s.ID]; seen {
		return
	}
	prompt := s.Prompt
	if prompt == "" {
		prompt = w.assistant.Greeting()
	}
	w.transcripts[s.ID] = []Message{{Role: RoleAssistant, Text: prompt, At: w.now()}}
}
