// Package tracker persists learner progress: assessment attempts, the
// skills they prove, and learning path enrollments.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/catalog"
	"github.com/abhisek/skilldash/internal/store"
)

// ErrCourseNotInPath is returned when a course is marked on a path that
// does not contain it.
var ErrCourseNotInPath = errors.New("course is not part of the learning path")

// Repos groups the repositories the tracker writes to.
type Repos struct {
	Assessments store.AssessmentRepo
	Skills      store.SkillRepo
	Paths       store.LearningPathRepo
	Activity    store.ActivityRepo

	// Atomic runs fn with repositories bound to one transaction. When nil,
	// fn gets these repositories and each write commits on its own.
	Atomic func(ctx context.Context, fn func(Repos) error) error
}

// ReposFrom collects the tracker's repositories from a Store.
func ReposFrom(st *store.Store) Repos {
	r := reposOf(st)
	r.Atomic = func(ctx context.Context, fn func(Repos) error) error {
		return st.InTx(ctx, func(tx *store.Store) error {
			return fn(reposOf(tx))
		})
	}
	return r
}

func reposOf(st *store.Store) Repos {
	return Repos{
		Assessments: st.AssessmentRepo(),
		Skills:      st.SkillRepo(),
		Paths:       st.LearningPathRepo(),
		Activity:    st.ActivityRepo(),
	}
}

// Service records progress for one user.
type Service struct {
	repos  Repos
	userID string
	logger *zap.Logger
}

// NewService creates a tracker for userID.
func NewService(repos Repos, userID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repos: repos, userID: userID, logger: logger}
}

// UserID returns the user the service records for.
func (s *Service) UserID() string { return s.userID }

// StartAttempt stores an in-progress row for a freshly started wizard.
func (s *Service) StartAttempt(ctx context.Context, def assessment.Definition, attemptID string, startedAt time.Time) error {
	err := s.repos.Assessments.Record(ctx, store.AssessmentRecord{
		ID:           attemptID,
		UserID:       s.userID,
		AssessmentID: def.ID,
		Title:        def.Title,
		Status:       store.StatusInProgress,
		StartedAt:    startedAt,
	})
	if err != nil {
		return fmt.Errorf("start attempt: %w", err)
	}
	s.logger.Info("assessment started",
		zap.String("assessment_id", def.ID),
		zap.String("attempt_id", attemptID),
	)
	return nil
}

// RecordResult stores a finished attempt, updates the skills it covered
// and appends an assessment_completed activity. Either all three are
// stored or none is.
func (s *Service) RecordResult(ctx context.Context, def assessment.Definition, res assessment.Result) error {
	finished := res.FinishedAt
	skills := make([]string, 0, len(res.SkillScores))
	for name := range res.SkillScores {
		skills = append(skills, name)
	}
	slices.Sort(skills)

	err := s.atomic(ctx, func(r Repos) error {
		err := r.Assessments.Record(ctx, store.AssessmentRecord{
			ID:           res.AttemptID,
			UserID:       s.userID,
			AssessmentID: def.ID,
			Title:        def.Title,
			Status:       store.StatusCompleted,
			Score:        res.Correct,
			MaxScore:     res.Total,
			SkillScores:  res.SkillScores,
			ChatMessages: res.ChatMessages,
			StartedAt:    res.StartedAt,
			CompletedAt:  &finished,
		})
		if err != nil {
			return fmt.Errorf("record result: %w", err)
		}

		for _, name := range skills {
			score := res.SkillScores[name]
			err := r.Skills.Upsert(ctx, store.UserSkill{
				UserID:    s.userID,
				Name:      name,
				Level:     string(assessment.SkillLevel(score)),
				Score:     score,
				Source:    def.ID,
				UpdatedAt: finished,
			})
			if err != nil {
				return fmt.Errorf("record skill %s: %w", name, err)
			}
		}

		score := res.Score
		if _, err := r.Activity.Append(ctx, store.Activity{
			UserID:    s.userID,
			Kind:      store.ActivityAssessmentCompleted,
			Title:     def.Title,
			Detail:    fmt.Sprintf("%d/%d correct", res.Correct, res.Total),
			Score:     &score,
			Timestamp: finished,
		}); err != nil {
			return fmt.Errorf("record activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("assessment completed",
		zap.String("assessment_id", def.ID),
		zap.String("attempt_id", res.AttemptID),
		zap.Int("score", res.Score),
		zap.Duration("duration", res.Duration),
	)
	return nil
}

// Enroll joins the learning path pathID.
func (s *Service) Enroll(ctx context.Context, pathID string) error {
	path, err := catalog.GetPath(pathID)
	if err != nil {
		return err
	}
	existing, err := s.repos.Paths.Get(ctx, s.userID, pathID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if err := s.repos.Paths.Enroll(ctx, s.userID, path.ID, path.Title); err != nil {
		return err
	}
	s.record(ctx, store.ActivityPathEnrolled, "Enrolled in "+path.Title, "")
	return nil
}

// SetCourseCompleted marks or unmarks courseID within an enrolled path.
func (s *Service) SetCourseCompleted(ctx context.Context, pathID, courseID string, done bool) error {
	path, err := catalog.GetPath(pathID)
	if err != nil {
		return err
	}
	if !slices.Contains(path.CourseIDs, courseID) {
		return fmt.Errorf("%w: %s not in %s", ErrCourseNotInPath, courseID, pathID)
	}
	if err := s.repos.Paths.SetCourseCompleted(ctx, s.userID, pathID, courseID, done); err != nil {
		return err
	}
	if done {
		course, _ := catalog.GetCourse(courseID)
		s.record(ctx, store.ActivityCourseCompleted, "Completed "+course.Title, path.Title)
	}
	return nil
}

// Enrollments returns the user's learning path enrollments.
func (s *Service) Enrollments(ctx context.Context) ([]store.Enrollment, error) {
	return s.repos.Paths.List(ctx, s.userID)
}

// CompletedCourses returns every course completed on any enrolled path.
func (s *Service) CompletedCourses(ctx context.Context) (map[string]bool, error) {
	es, err := s.repos.Paths.List(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool)
	for _, e := range es {
		for _, id := range e.CompletedCourses {
			done[id] = true
		}
	}
	return done, nil
}

// LatestResults maps each assessment the user has completed to its most
// recent completed attempt.
func (s *Service) LatestResults(ctx context.Context) (map[string]store.AssessmentRecord, error) {
	return s.repos.Assessments.LatestCompleted(ctx, s.userID)
}

func (s *Service) atomic(ctx context.Context, fn func(Repos) error) error {
	if s.repos.Atomic == nil {
		return fn(s.repos)
	}
	return s.repos.Atomic(ctx, fn)
}

func (s *Service) record(ctx context.Context, kind, title, detail string) {
	if _, err := s.repos.Activity.Append(ctx, store.Activity{UserID: s.userID, Kind: kind, Title: title, Detail: detail}); err != nil {
		s.logger.Warn("append activity failed", zap.String("kind", kind), zap.Error(err))
	}
}
