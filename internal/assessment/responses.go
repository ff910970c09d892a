package assessment

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Rule maps a set of keywords to a canned reply. A message matches the rule
// when one of its words starts with any of the keywords. Keywords containing
// a space are matched as whole-word phrases, ignoring punctuation and
// repeated spaces.
type Rule struct {
	Keywords []string
	Reply    string
}

// ResponseTable is the fixed set of replies the assistant can give.
// It is immutable after construction and safe for concurrent use.
type ResponseTable struct {
	greeting  string
	rules     []Rule
	fallbacks []string
}

// NewResponseTable builds a table from the given greeting, ordered rules and
// fallback replies. All slices are copied; keywords are lower-cased.
func NewResponseTable(greeting string, rules []Rule, fallbacks []string) (*ResponseTable, error) {
	var errs []error

	greeting = strings.TrimSpace(greeting)
	if greeting == "" {
		errs = append(errs, errors.New("greeting is empty"))
	}
	if len(fallbacks) == 0 {
		errs = append(errs, errors.New("at least one fallback reply is required"))
	}

	copied := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if strings.TrimSpace(r.Reply) == "" {
			errs = append(errs, fmt.Errorf("rule %d: reply is empty", i))
		}
		var kws []string
		for _, kw := range r.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			errs = append(errs, fmt.Errorf("rule %d: no keywords", i))
		}
		copied = append(copied, Rule{Keywords: kws, Reply: r.Reply})
	}

	fb := make([]string, 0, len(fallbacks))
	for i, f := range fallbacks {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, fmt.Errorf("fallback %d is empty", i))
		}
		fb = append(fb, f)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, errors.Join(errs...))
	}

	return &ResponseTable{greeting: greeting, rules: copied, fallbacks: fb}, nil
}

// Greeting returns the line the assistant opens with when no step prompt is set.
func (t *ResponseTable) Greeting() string {
	return t.greeting
}

// Match returns the reply of the first rule whose keyword appears in message.
func (t *ResponseTable) Match(message string) (string, bool) {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return "", false
	}
	words := strings.FieldsFunc(msg, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	padded := " " + strings.Join(words, " ") + " "
	for _, r := range t.rules {
		for _, kw := range r.Keywords {
			if matchKeyword(padded, words, kw) {
				return r.Reply, true
			}
		}
	}
	return "", false
}

// matchKeyword reports whether kw prefixes one of words, or for a phrase,
// whether it appears in joined (the words space-joined and padded).
func matchKeyword(joined string, words []string, kw string) bool {
	if strings.Contains(kw, " ") {
		return strings.Contains(joined, " "+strings.Join(strings.Fields(kw), " ")+" ")
	}
	for _, w := range words {
		if strings.HasPrefix(w, kw) {
			return true
		}
	}
	return false
}

// Fallback returns the n-th fallback reply, cycling through the list.
func (t *ResponseTable) Fallback(n int) string {
	if n < 0 {
		n = 0
	}
	return t.fallbacks[n%len(t.fallbacks)]
}

// Rules returns a copy of the rule list.
func (t *ResponseTable) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = Rule{Keywords: append([]string(nil), r.Keywords...), Reply: r.Reply}
	}
	return out
}

// Fallbacks returns a copy of the fallback replies.
func (t *ResponseTable) Fallbacks() []string {
	return append([]string(nil), t.fallbacks...)
}

var defaultTable = mustTable(
	"Hi! I'm your assessment assistant. Ask me about the topics, the format, or how to prepare.",
	[]Rule{
		{
			Keywords: []string{"hello", "hey"},
			Reply:    "Hello! Tell me which part of the assessment you'd like to talk through.",
		},
		{
			Keywords: []string{"thank"},
			Reply:    "You're welcome! Good luck with the rest of the assessment.",
		},
		{
			Keywords: []string{"how long", "much time", "time limit", "timer", "duration", "minutes"},
			Reply: "Each assessment lists an estimated duration, but there is no hard timer. " +
				"Take the time you need and move on when you're confident.",
		},
		{
			Keywords: []string{"is hard", "so hard", "too hard", "difficult", "stuck", "confus", "tricky"},
			Reply: "That's normal. Eliminate the options you know are wrong first, " +
				"then pick the one that best matches the core concept being tested.",
		},
		{
			Keywords: []string{"study", "prepar", "practic", "learn"},
			Reply: "A good plan: review the fundamentals listed under **Skills Covered**, " +
				"work through a small project, then retake the assessment to measure progress.",
		},
		{
			Keywords: []string{"score", "grade", "passing", "to pass", "result"},
			Reply: "Your score is the share of questions you answered correctly. " +
				"Per-skill scores are saved to your profile when you finish.",
		},
		{
			Keywords: []string{"retake", "again", "redo"},
			Reply: "You can retake any assessment from the assessments list. " +
				"Your latest attempt is what shows on the dashboard.",
		},
		{
			Keywords: []string{"help", "how do i", "how to", "what do i", "what should i"},
			Reply: "Use the arrow keys to choose an answer and Enter to confirm. " +
				"You can go back to earlier steps at any time before finishing.",
		},
	},
	[]string{
		"Interesting question! I can only help with the assessment itself, though.",
		"I'm not sure about that one. Try asking about timing, difficulty, or how to prepare.",
		"Let's keep going. You can ask me about scoring or retakes as well.",
	},
)

// DefaultResponseTable returns the built-in assistant replies.
func DefaultResponseTable() *ResponseTable {
	return defaultTable
}

func mustTable(greeting string, rules []Rule, fallbacks []string) *ResponseTable {
	t, err := NewResponseTable(greeting, rules, fallbacks)
	if err != nil {
		panic(err)
	}
	return t
}
