// Package dashboard aggregates the numbers shown on the home screen and by
// the stats command.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/skilldash/internal/assessment"
	"github.com/abhisek/skilldash/internal/store"
)

// RecentLimit is how many completed assessments the dashboard lists.
const RecentLimit = 5

// UserStats are the headline counters.
type UserStats struct {
	SkillsCount          int
	AssessmentsCount     int
	LearningPathsCount   int
	CompletedAssessments int
}

// CompletionRate returns round(100*completed/total), or 0 with no attempts.
func (s UserStats) CompletionRate() int {
	return assessment.Percent(s.CompletedAssessments, s.AssessmentsCount)
}

// RecentItem is one completed assessment in the recent list.
type RecentItem struct {
	Title       string
	CompletedAt time.Time
	Percent     int
	HasScore    bool
}

// Overview summarizes the assessment catalog for the learner.
type Overview struct {
	Available    int // assessments in the catalog
	Completed    int // catalog assessments with at least one completed attempt
	AverageScore int // mean of the latest completed score per assessment
}

// Snapshot is everything the home screen renders.
type Snapshot struct {
	Name     string
	Stats    UserStats
	Recent   []RecentItem
	Activity []store.Activity
	Overview Overview
}

// Repos groups the repositories the dashboard reads.
type Repos struct {
	Profiles    store.ProfileRepo
	Skills      store.SkillRepo
	Assessments store.AssessmentRepo
	Paths       store.LearningPathRepo
	Activity    store.ActivityRepo
}

// ReposFrom collects the dashboard's repositories from a Store.
func ReposFrom(st *store.Store) Repos {
	return Repos{
		Profiles:    st.ProfileRepo(),
		Skills:      st.SkillRepo(),
		Assessments: st.AssessmentRepo(),
		Paths:       st.LearningPathRepo(),
		Activity:    st.ActivityRepo(),
	}
}

// Service computes dashboard data for one user.
type Service struct {
	repos   Repos
	catalog *assessment.Catalog
	userID  string
	logger  *zap.Logger
}

// NewService creates a dashboard service.
func NewService(repos Repos, cat *assessment.Catalog, userID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repos: repos, catalog: cat, userID: userID, logger: logger}
}

// Stats loads the headline counters.
func (s *Service) Stats(ctx context.Context) (UserStats, error) {
	var st UserStats
	var err error

	if st.SkillsCount, err = s.repos.Skills.Count(ctx, s.userID); err != nil {
		return UserStats{}, fmt.Errorf("count skills: %w", err)
	}
	if st.AssessmentsCount, st.CompletedAssessments, err = s.repos.Assessments.Counts(ctx, s.userID); err != nil {
		return UserStats{}, fmt.Errorf("count assessments: %w", err)
	}
	if st.LearningPathsCount, err = s.repos.Paths.Count(ctx, s.userID); err != nil {
		return UserStats{}, fmt.Errorf("count learning paths: %w", err)
	}
	return st, nil
}

// Recent returns the latest completed assessments, newest first.
func (s *Service) Recent(ctx context.Context) ([]RecentItem, error) {
	recs, err := s.repos.Assessments.RecentCompleted(ctx, s.userID, RecentLimit)
	if err != nil {
		return nil, err
	}
	items := make([]RecentItem, 0, len(recs))
	for _, r := range recs {
		item := RecentItem{Title: r.Title}
		if r.CompletedAt != nil {
			item.CompletedAt = *r.CompletedAt
		}
		if r.Score > 0 && r.MaxScore > 0 {
			item.Percent, item.HasScore = r.Percent()
		}
		items = append(items, item)
	}
	return items, nil
}

// Overview summarizes catalog coverage and scores.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	ov := Overview{Available: s.catalog.Len()}

	recs, err := s.repos.Assessments.LatestCompleted(ctx, s.userID)
	if err != nil {
		return Overview{}, err
	}
	sum := 0
	for id, r := range recs {
		if _, err := s.catalog.Get(id); err != nil {
			continue
		}
		pct, _ := r.Percent()
		sum += pct
		ov.Completed++
	}
	if ov.Completed > 0 {
		ov.AverageScore = (sum + ov.Completed/2) / ov.Completed
	}
	return ov, nil
}

// Load builds the full home screen snapshot. fallbackEmail is used for the
// greeting when the profile has no name or email.
func (s *Service) Load(ctx context.Context, fallbackEmail string) (Snapshot, error) {
	var snap Snapshot
	var err error

	p, err := s.repos.Profiles.Get(ctx, s.userID)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Name = GreetingName(p, fallbackEmail)

	if snap.Stats, err = s.Stats(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Recent, err = s.Recent(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Activity, err = s.repos.Activity.Recent(ctx, s.userID, RecentLimit); err != nil {
		return Snapshot{}, err
	}
	if snap.Overview, err = s.Overview(ctx); err != nil {
		return Snapshot{}, err
	}

	s.logger.Debug("dashboard loaded",
		zap.Int("assessments", snap.Stats.AssessmentsCount),
		zap.Int("completed", snap.Stats.CompletedAssessments),
	)
	return snap, nil
}

// GreetingName picks the name to greet the learner with: the profile's full
// name, else the local part of an email, else "there".
func GreetingName(p *store.Profile, fallbackEmail string) string {
	if p != nil {
		if name := strings.TrimSpace(p.FullName); name != "" {
			return name
		}
		if local := emailLocal(p.Email); local != "" {
			return local
		}
	}
	if local := emailLocal(fallbackEmail); local != "" {
		return local
	}
	return "there"
}

func emailLocal(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}
