package assessment

import (
	"errors"
	"fmt"
	"strings"
)

// StepKind is the declared type of a wizard step.
type StepKind string

const (
	KindIntro    StepKind = "intro"
	KindQuestion StepKind = "question"
	KindChat     StepKind = "chat"
)

// Option count bounds for question steps.
const (
	MinOptions = 2
	MaxOptions = 6
)

// Step is a single page of the assessment wizard.
type Step struct {
	ID    string   `json:"id"`
	Kind  StepKind `json:"kind"`
	Title string   `json:"title,omitempty"`

	// Body is the intro text (markdown) or the question text.
	Body string `json:"body,omitempty"`

	// Options and Answer apply to question steps. Answer is the index of the
	// correct option.
	Options []string `json:"options,omitempty"`
	Answer  int      `json:"answer,omitempty"`

	// Skill tags the skill a question measures.
	Skill string `json:"skill,omitempty"`

	// Prompt is the assistant's opening line on a chat step.
	Prompt string `json:"prompt,omitempty"`
}

// StepModel is a validated, ordered sequence of steps.
type StepModel struct {
	steps []Step
}

// NewStepModel validates steps and returns a model holding a copy of them.
// Every problem found is reported in the returned error.
func NewStepModel(steps []Step) (*StepModel, error) {
	if err := validateSteps(steps); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	return &StepModel{steps: cloneSteps(steps)}, nil
}

// Len returns the number of steps.
func (m *StepModel) Len() int {
	return len(m.steps)
}

// Step returns the step at index i.
func (m *StepModel) Step(i int) (Step, bool) {
	if i < 0 || i >= len(m.steps) {
		return Step{}, false
	}
	return cloneStep(m.steps[i]), true
}

// Steps returns a copy of all steps.
func (m *StepModel) Steps() []Step {
	return cloneSteps(m.steps)
}

// QuestionCount returns the number of question steps.
func (m *StepModel) QuestionCount() int {
	n := 0
	for _, s := range m.steps {
		if s.Kind == KindQuestion {
			n++
		}
	}
	return n
}

// Skills returns the distinct skill tags of question steps in order of
// first appearance.
func (m *StepModel) Skills() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range m.steps {
		if s.Kind != KindQuestion || s.Skill == "" || seen[s.Skill] {
			continue
		}
		seen[s.Skill] = true
		out = append(out, s.Skill)
	}
	return out
}

func validateSteps(steps []Step) error {
	if len(steps) == 0 {
		return errors.New("no steps")
	}

	var errs []error
	ids := make(map[string]bool, len(steps))
	questions := 0

	if steps[0].Kind != KindIntro {
		errs = append(errs, fmt.Errorf("first step must be %q, got %q", KindIntro, steps[0].Kind))
	}

	for i, s := range steps {
		label := fmt.Sprintf("step %d", i)
		if s.ID != "" {
			label = fmt.Sprintf("step %d (%s)", i, s.ID)
		}

		switch {
		case strings.TrimSpace(s.ID) == "":
			errs = append(errs, fmt.Errorf("%s: empty id", label))
		case ids[s.ID]:
			errs = append(errs, fmt.Errorf("%s: duplicate id", label))
		}
		ids[s.ID] = true

		switch s.Kind {
		case KindIntro:
		case KindQuestion:
			questions++
			if strings.TrimSpace(s.Body) == "" {
				errs = append(errs, fmt.Errorf("%s: question text is empty", label))
			}
			if len(s.Options) < MinOptions || len(s.Options) > MaxOptions {
				errs = append(errs, fmt.Errorf("%s: %d options, want %d..%d", label, len(s.Options), MinOptions, MaxOptions))
			}
			for j, opt := range s.Options {
				if strings.TrimSpace(opt) == "" {
					errs = append(errs, fmt.Errorf("%s: option %d is empty", label, j))
				}
			}
			if s.Answer < 0 || s.Answer >= len(s.Options) {
				errs = append(errs, fmt.Errorf("%s: answer index %d out of range", label, s.Answer))
			}
		case KindChat:
			if strings.TrimSpace(s.Prompt) == "" {
				errs = append(errs, fmt.Errorf("%s: chat prompt is empty", label))
			}
		default:
			errs = append(errs, fmt.Errorf("%s: unknown kind %q", label, s.Kind))
		}
	}

	if questions == 0 {
		errs = append(errs, errors.New("at least one question step is required"))
	}

	return errors.Join(errs...)
}

func cloneStep(s Step) Step {
	s.Options = append([]string(nil), s.Options...)
	return s
}

func cloneSteps(steps []Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = cloneStep(s)
	}
	return out
}
