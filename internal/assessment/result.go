package assessment

import (
	"maps"
	"math"
	"time"
)

// Result summarises a completed attempt.
type Result struct {
	AttemptID string

	Correct int
	Total   int
	// Score is the percentage of correct answers, rounded to the nearest integer.
	Score int

	// SkillScores maps each tagged skill to its percentage score.
	SkillScores map[string]int

	StartedAt  time.Time
	FinishedAt time.Time
	Duration   time.Duration

	// ChatMessages counts user messages sent across all chat steps.
	ChatMessages int
}

// Percent returns round(100*correct/total), or 0 when total is 0.
func Percent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// SkillLevel maps a percentage score to a proficiency label.
func SkillLevel(score int) Difficulty {
	switch {
	case score >= 80:
		return DifficultyAdvanced
	case score >= 50:
		return DifficultyIntermediate
	default:
		return DifficultyBeginner
	}
}

func (w *Wizard) score() Result {
	type tally struct{ correct, total int }
	perSkill := make(map[string]*tally)

	r := Result{
		AttemptID:  w.attemptID,
		StartedAt:  w.startedAt,
		FinishedAt: w.finishedAt,
		Duration:   w.finishedAt.Sub(w.startedAt),
	}

	for _, s := range w.model.steps {
		if s.Kind != KindQuestion {
			continue
		}
		r.Total++
		ok := w.answers[s.ID] == s.Answer
		if ok {
			r.Correct++
		}
		if s.Skill == "" {
			continue
		}
		t := perSkill[s.Skill]
		if t == nil {
			t = &tally{}
			perSkill[s.Skill] = t
		}
		t.total++
		if ok {
			t.correct++
		}
	}

	r.Score = Percent(r.Correct, r.Total)
	r.SkillScores = make(map[string]int, len(perSkill))
	for skill, t := range perSkill {
		r.SkillScores[skill] = Percent(t.correct, t.total)
	}

	for _, msgs := range w.transcripts {
		for _, m := range msgs {
			if m.Role == RoleUser {
				r.ChatMessages++
			}
		}
	}
	return r
}

func (r Result) clone() Result {
	r.SkillScores = maps.Clone(r.SkillScores)
	return r
}
