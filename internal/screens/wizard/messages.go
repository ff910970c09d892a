package wizard

import "github.com/abhisek/skilldash/internal/assessment"

// attemptStartedMsg is sent once the in-progress attempt has been stored.
type attemptStartedMsg struct {
	Err error
}

// replyReadyMsg is sent when the simulated typing delay has elapsed.
type replyReadyMsg struct {
	StepID string
	Seq    int
}

// resultSavedMsg is sent after a finished attempt has been persisted.
type resultSavedMsg struct {
	Result assessment.Result
	Err    error
}
