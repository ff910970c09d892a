package assessment

import "errors"

var (
	ErrInvalidTable   = errors.New("invalid response table")
	ErrInvalidModel   = errors.New("invalid step model")
	ErrNotStarted     = errors.New("assessment not started")
	ErrAlreadyStarted = errors.New("assessment already started")
	ErrCompleted      = errors.New("assessment already completed")
	ErrWrongStepKind  = errors.New("operation not valid for this step")
	ErrOptionRange    = errors.New("option out of range")
	ErrAnswerRequired = errors.New("an answer is required before continuing")
	ErrAtFirstStep    = errors.New("already at the first step")
	ErrLastStep       = errors.New("at the last step")
	ErrNotLastStep    = errors.New("finish is only allowed on the last step")
	ErrUnanswered     = errors.New("unanswered question")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrUnknown        = errors.New("unknown assessment")
)
