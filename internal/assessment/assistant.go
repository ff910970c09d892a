package assessment

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of a chat step transcript.
type Message struct {
	Role Role
	Text string
	At   time.Time
}

// Assistant is the scripted chat participant. It answers from a fixed
// ResponseTable and never calls out to a model.
type Assistant struct {
	table *ResponseTable
}

// NewAssistant creates an assistant backed by table. A nil table selects
// the default replies.
func NewAssistant(table *ResponseTable) *Assistant {
	if table == nil {
		table = DefaultResponseTable()
	}
	return &Assistant{table: table}
}

// Reply answers message. When no rule matches, the fallback at position
// unmatched is returned and matched is false; callers advance their counter.
func (a *Assistant) Reply(message string, unmatched int) (reply string, matched bool) {
	if r, ok := a.table.Match(message); ok {
		return r, true
	}
	return a.table.Fallback(unmatched), false
}

// Greeting returns the table's greeting.
func (a *Assistant) Greeting() string {
	return a.table.Greeting()
}
