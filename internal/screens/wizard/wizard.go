// Package wizard is the interactive assessment screen: it walks an
// assessment.Wizard through its intro, question and chat steps.
package wizard

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/router"
	"github.com/abhisek/skilldash/internal/screen"
	"github.com/abhisek/skilldash/internal/screens/result"
	"github.com/abhisek/skilldash/internal/ui/components"
	"github.com/abhisek/skilldash/internal/ui/layout"
)

// Recorder persists attempt progress. *tracker.Service satisfies it.
type Recorder interface {
	StartAttempt(ctx context.Context, def assessment.Definition, attemptID string, startedAt time.Time) error
	RecordResult(ctx context.Context, def assessment.Definition, res assessment.Result) error
}

// WizardScreen implements screen.Screen for one assessment attempt.
type WizardScreen struct {
	def    assessment.Definition
	wiz    *assessment.Wizard
	rec    Recorder
	delay  time.Duration
	logger *zap.Logger

	choice components.MultiChoice
	input  components.TextInput

	typing  bool // an assistant reply is hidden behind the typing indicator
	sendSeq int  // bumped per message sent; replies carry the value they were sent with
	saving  bool
	errMsg  string
	fatal   string
	mdCache map[string]string
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)

// New creates a wizard screen for def. delay is the simulated assistant
// typing time; zero shows replies immediately.
func New(def assessment.Definition, wiz *assessment.Wizard, rec Recorder, delay time.Duration, logger *zap.Logger) *WizardScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	if delay < 0 {
		delay = 0
	}
	return &WizardScreen{
		def:     def,
		wiz:     wiz,
		rec:     rec,
		delay:   delay,
		logger:  logger,
		input:   components.NewTextInput("Ask the assistant...", 280),
		mdCache: make(map[string]string),
	}
}

func (s *WizardScreen) Init() tea.Cmd {
	if s.wiz.Phase() == assessment.PhaseNotStarted {
		if err := s.wiz.Start(); err != nil {
			s.fatal = err.Error()
			return nil
		}
	}
	focus := s.syncStep()
	start := s.startAttempt()
	if focus == nil {
		return start
	}
	return tea.Batch(start, focus)
}

func (s *WizardScreen) Title() string {
	return s.def.Title
}

func (s *WizardScreen) KeyHints() []layout.KeyHint {
	if s.fatal != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	step, err := s.wiz.Current()
	if err != nil {
		return nil
	}
	last := s.wiz.IsLast()
	forward := "Next"
	if last {
		forward = "Finish"
	}
	switch step.Kind {
	case assessment.KindQuestion:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Choose"},
			{Key: "Enter", Description: forward},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Leave"},
		}
	case assessment.KindChat:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Tab", Description: forward},
			{Key: "Shift+Tab", Description: "Back"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: forward},
			{Key: "←", Description: "Back"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptStartedMsg:
		if msg.Err != nil {
			s.logger.Warn("record attempt start",
				zap.String("assessment_id", s.def.ID), zap.Error(msg.Err))
		}
		return s, nil

	case replyReadyMsg:
		if msg.Seq == s.sendSeq && s.onStep(msg.StepID) {
			s.typing = false
		}
		return s, nil

	case resultSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.onChat() && !s.typing {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *WizardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.fatal != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.saving {
		return s, nil
	}

	step, err := s.wiz.Current()
	if err != nil {
		return s, nil
	}

	key := msg.String()
	switch step.Kind {
	case assessment.KindIntro:
		switch key {
		case "enter", "right", "l", "tab":
			return s.advance()
		case "left", "h", "shift+tab":
			return s.back()
		}

	case assessment.KindQuestion:
		switch key {
		case "enter":
			s.choice.Chosen = s.choice.Selected
			if err := s.wiz.Select(s.choice.Chosen); err != nil {
				s.errMsg = describe(err)
				return s, nil
			}
			return s.advance()
		case "right", "l", "tab":
			return s.advance()
		case "left", "h", "shift+tab":
			return s.back()
		}
		s.choice, _ = s.choice.Update(msg)
		if s.choice.HasChoice() {
			if err := s.wiz.Select(s.choice.Chosen); err != nil {
				s.errMsg = describe(err)
				return s, nil
			}
			s.errMsg = ""
		}
		return s, nil

	case assessment.KindChat:
		switch key {
		case "tab":
			return s.advance()
		case "shift+tab":
			return s.back()
		case "enter":
			if s.typing {
				return s, nil
			}
			if s.input.Value() == "" {
				return s.advance()
			}
			return s.send(step)
		}
		if s.typing {
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

// advance moves to the next step, or finishes on the last one.
func (s *WizardScreen) advance() (screen.Screen, tea.Cmd) {
	if s.wiz.IsLast() {
		return s.finish()
	}
	if err := s.wiz.Next(); err != nil {
		s.errMsg = describe(err)
		return s, nil
	}
	s.errMsg = ""
	s.typing = false
	return s, s.syncStep()
}

func (s *WizardScreen) back() (screen.Screen, tea.Cmd) {
	if err := s.wiz.Back(); err != nil {
		s.errMsg = describe(err)
		return s, nil
	}
	s.errMsg = ""
	s.typing = false
	return s, s.syncStep()
}

func (s *WizardScreen) send(step assessment.Step) (screen.Screen, tea.Cmd) {
	if _, err := s.wiz.Send(s.input.Value()); err != nil {
		s.errMsg = describe(err)
		return s, nil
	}
	s.errMsg = ""
	s.input.Reset()
	s.typing = true
	s.sendSeq++

	ready := replyReadyMsg{StepID: step.ID, Seq: s.sendSeq}
	if s.delay == 0 {
		return s, func() tea.Msg { return ready }
	}
	return s, tea.Tick(s.delay, func(time.Time) tea.Msg { return ready })
}

func (s *WizardScreen) finish() (screen.Screen, tea.Cmd) {
	res, err := s.wiz.Finish()
	if err != nil {
		s.errMsg = describe(err)
		return s, nil
	}
	s.errMsg = ""
	s.saving = true

	def, rec := s.def, s.rec
	if rec == nil {
		return s, func() tea.Msg { return resultSavedMsg{Result: res} }
	}
	return s, func() tea.Msg {
		err := rec.RecordResult(context.Background(), def, res)
		return resultSavedMsg{Result: res, Err: err}
	}
}

func (s *WizardScreen) handleSaved(msg resultSavedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.logger.Error("record assessment result",
			zap.String("assessment_id", s.def.ID), zap.Error(msg.Err))
	}

	def, wiz, rec, delay, logger := s.def, s.wiz, s.rec, s.delay, s.logger
	retake := func() screen.Screen {
		wiz.Reset()
		return New(def, wiz, rec, delay, logger)
	}
	next := result.New(def, msg.Result, msg.Err, retake)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *WizardScreen) startAttempt() tea.Cmd {
	if s.rec == nil {
		return nil
	}
	def, rec := s.def, s.rec
	id, at := s.wiz.AttemptID(), s.wiz.StartedAt()
	return func() tea.Msg {
		return attemptStartedMsg{Err: rec.StartAttempt(context.Background(), def, id, at)}
	}
}

// syncStep rebuilds the per-step widgets after the wizard moved.
func (s *WizardScreen) syncStep() tea.Cmd {
	step, err := s.wiz.Current()
	if err != nil {
		return nil
	}
	switch step.Kind {
	case assessment.KindQuestion:
		chosen, ok := s.wiz.Answer(step.ID)
		if !ok {
			chosen = -1
		}
		s.choice = components.NewMultiChoice(step.Body, step.Options, chosen)
		s.input.Blur()
	case assessment.KindChat:
		s.input.Reset()
		return s.input.Focus()
	default:
		s.input.Blur()
	}
	return nil
}

func (s *WizardScreen) onStep(id string) bool {
	step, err := s.wiz.Current()
	return err == nil && step.ID == id
}

func (s *WizardScreen) onChat() bool {
	step, err := s.wiz.Current()
	return err == nil && step.Kind == assessment.KindChat
}

// describe turns wizard errors into short inline messages.
func describe(err error) string {
	switch {
	case errors.Is(err, assessment.ErrAnswerRequired):
		return "Choose an answer to continue."
	case errors.Is(err, assessment.ErrAtFirstStep):
		return "This is the first step."
	case errors.Is(err, assessment.ErrUnanswered):
		return "Answer every question before finishing."
	case errors.Is(err, assessment.ErrEmptyMessage):
		return "Type a message first."
	default:
		return err.Error()
	}
}
