// Package analytics computes the learner's progress report: skill scores
// against a target, assessment score history and learning time.
package analytics

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/store"
)

const (
	// DefaultTarget is the skill score a learner aims for when none is set.
	DefaultTarget = 80

	// HistoryLimit is how many completed attempts the score history shows.
	HistoryLimit = 10

	// MonthsShown is how many months with recorded learning time are kept.
	MonthsShown = 6
)

// Band labels a score the way the history list does.
type Band string

const (
	BandExcellent Band = "Excellent"
	BandGood      Band = "Good"
	BandNeedsWork Band = "Needs Work"
)

// ScoreBand returns Excellent from 80%, Good from 60% and Needs Work below.
func ScoreBand(pct int) Band {
	switch {
	case pct >= 80:
		return BandExcellent
	case pct >= 60:
		return BandGood
	default:
		return BandNeedsWork
	}
}

// Metrics are the headline numbers of the report.
type Metrics struct {
	SkillsTracked        int
	AssessmentsCompleted int
	CoursesCompleted     int
	AverageScore         int // mean over every scored completed attempt
	BestScore            int
	TimeSpent            time.Duration
}

// SkillProgress is one assessed skill measured against the target.
type SkillProgress struct {
	Name    string
	Current int
	Target  int
	Source  string
}

// Reached reports whether the skill met its target.
func (p SkillProgress) Reached() bool {
	return p.Current >= p.Target
}

// ScoreEntry is one completed attempt in the score history.
type ScoreEntry struct {
	Title       string
	CompletedAt time.Time
	Percent     int
	Band        Band
}

// MonthTotal is the time spent on assessments finished in one month.
type MonthTotal struct {
	Month time.Time // first day of the month, UTC
	Spent time.Duration
}

// Label formats the month as "Jan 2026".
func (m MonthTotal) Label() string {
	return m.Month.Format("Jan 2006")
}

// FormatDuration renders d as "1h 05m", or "12m" under an hour.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h, m := int(d.Hours()), int(d.Minutes())%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// Report is everything the analytics views render.
type Report struct {
	Target  int
	Metrics Metrics
	Skills  []SkillProgress
	History []ScoreEntry
	Monthly []MonthTotal
}

// Repos groups the repositories the report reads.
type Repos struct {
	Skills      store.SkillRepo
	Assessments store.AssessmentRepo
	Paths       store.LearningPathRepo
}

// ReposFrom collects the report's repositories from a Store.
func ReposFrom(st *store.Store) Repos {
	return Repos{
		Skills:      st.SkillRepo(),
		Assessments: st.AssessmentRepo(),
		Paths:       st.LearningPathRepo(),
	}
}

// Service builds reports for one user.
type Service struct {
	repos  Repos
	userID string
	logger *zap.Logger
}

// NewService creates an analytics service for userID.
func NewService(repos Repos, userID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repos: repos, userID: userID, logger: logger}
}

// Report builds the progress report. A target outside 1-100 selects
// DefaultTarget.
func (s *Service) Report(ctx context.Context, target int) (Report, error) {
	if target < 1 || target > 100 {
		target = DefaultTarget
	}
	rep := Report{Target: target}

	skills, err := s.repos.Skills.List(ctx, s.userID)
	if err != nil {
		return Report{}, fmt.Errorf("list skills: %w", err)
	}
	rep.Metrics.SkillsTracked = len(skills)
	rep.Skills = skillProgress(skills, target)

	recs, err := s.repos.Assessments.RecentCompleted(ctx, s.userID, 0)
	if err != nil {
		return Report{}, fmt.Errorf("list completed assessments: %w", err)
	}
	rep.Metrics.AssessmentsCompleted = len(recs)
	rep.History = history(recs, HistoryLimit)
	rep.Monthly = monthly(recs, MonthsShown)
	scoreMetrics(&rep.Metrics, recs)

	enrollments, err := s.repos.Paths.List(ctx, s.userID)
	if err != nil {
		return Report{}, fmt.Errorf("list enrollments: %w", err)
	}
	done := make(map[string]bool)
	for _, e := range enrollments {
		for _, id := range e.CompletedCourses {
			done[id] = true
		}
	}
	rep.Metrics.CoursesCompleted = len(done)

	s.logger.Debug("analytics report built",
		zap.Int("skills", len(rep.Skills)),
		zap.Int("attempts", rep.Metrics.AssessmentsCompleted),
	)
	return rep, nil
}

// skillProgress keeps the skills an assessment scored, weakest first.
// Skills added by hand carry no score and are left out.
func skillProgress(skills []store.UserSkill, target int) []SkillProgress {
	var out []SkillProgress
	for _, sk := range skills {
		if sk.Source == store.SkillSourceProfile {
			continue
		}
		out = append(out, SkillProgress{Name: sk.Name, Current: sk.Score, Target: target, Source: sk.Source})
	}
	slices.SortStableFunc(out, func(a, b SkillProgress) int {
		return cmp.Or(cmp.Compare(a.Current, b.Current), cmp.Compare(a.Name, b.Name))
	})
	return out
}

func history(recs []store.AssessmentRecord, limit int) []ScoreEntry {
	var out []ScoreEntry
	for _, r := range recs {
		pct, ok := r.Percent()
		if !ok || r.CompletedAt == nil {
			continue
		}
		out = append(out, ScoreEntry{Title: r.Title, CompletedAt: *r.CompletedAt, Percent: pct, Band: ScoreBand(pct)})
		if len(out) == limit {
			break
		}
	}
	return out
}

// monthly totals attempt durations by completion month and keeps the
// newest n months that have any, oldest first.
func monthly(recs []store.AssessmentRecord, n int) []MonthTotal {
	totals := make(map[time.Time]time.Duration)
	for _, r := range recs {
		if r.CompletedAt == nil || r.CompletedAt.Before(r.StartedAt) {
			continue
		}
		at := r.CompletedAt.UTC()
		month := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += r.CompletedAt.Sub(r.StartedAt)
	}

	out := make([]MonthTotal, 0, len(totals))
	for m, d := range totals {
		out = append(out, MonthTotal{Month: m, Spent: d})
	}
	slices.SortFunc(out, func(a, b MonthTotal) int { return a.Month.Compare(b.Month) })
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

func scoreMetrics(m *Metrics, recs []store.AssessmentRecord) {
	sum, n := 0, 0
	for _, r := range recs {
		if r.CompletedAt != nil && !r.CompletedAt.Before(r.StartedAt) {
			m.TimeSpent += r.CompletedAt.Sub(r.StartedAt)
		}
		pct, ok := r.Percent()
		if !ok {
			continue
		}
		sum += pct
		n++
		m.BestScore = max(m.BestScore, pct)
	}
	if n > 0 {
		m.AverageScore = (sum + n/2) / n
	}
}
