package store

import (
	"context"
	"time"
)

// Profile is the editable user profile keyed by the local user ID.
type Profile struct {
	UserID      string
	Email       string
	FullName    string
	Bio         string
	Location    string
	Company     string
	JobTitle    string
	WebsiteURL  string
	GitHubURL   string
	LinkedInURL string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserSkill is one named skill on the user's profile.
type UserSkill struct {
	UserID    string
	Name      string
	Level     string // Beginner, Intermediate, Advanced or empty
	Score     int    // last assessed percentage, 0 when added by hand
	Source    string // SkillSourceProfile or the assessment ID that produced it
	UpdatedAt time.Time
}

// SkillSourceProfile marks a skill the learner added by hand.
const SkillSourceProfile = "profile"

// AssessmentStatus is the lifecycle state of a stored attempt.
type AssessmentStatus string

const (
	StatusInProgress AssessmentStatus = "in_progress"
	StatusCompleted  AssessmentStatus = "completed"
)

// AssessmentRecord is one persisted assessment attempt.
type AssessmentRecord struct {
	ID           string // attempt ID
	UserID       string
	AssessmentID string
	Title        string
	Status       AssessmentStatus
	Score        int // correct answers
	MaxScore     int // question count
	SkillScores  map[string]int
	ChatMessages int
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// Percent returns the rounded score percentage, or false when the record
// has no questions to score against.
func (r AssessmentRecord) Percent() (int, bool) {
	if r.MaxScore <= 0 {
		return 0, false
	}
	return (r.Score*100 + r.MaxScore/2) / r.MaxScore, true
}

// Enrollment is a user's membership in a learning path.
type Enrollment struct {
	UserID           string
	PathID           string
	Title            string
	CompletedCourses []string
	EnrolledAt       time.Time
	UpdatedAt        time.Time
}

// Activity kinds recorded in the activity log.
const (
	ActivityAssessmentCompleted = "assessment_completed"
	ActivityProfileUpdated      = "profile_updated"
	ActivityPathEnrolled        = "path_enrolled"
	ActivityCourseCompleted     = "course_completed"
	ActivitySkillAdded          = "skill_added"
	ActivitySkillRemoved        = "skill_removed"
)

// Activity is one entry in the append-only activity log.
type Activity struct {
	Sequence  int64
	Timestamp time.Time
	UserID    string
	Kind      string
	Title     string
	Detail    string
	Score     *int
}

// ProfileRepo persists the user profile.
type ProfileRepo interface {
	// Get returns the profile for userID, or nil if none exists.
	Get(ctx context.Context, userID string) (*Profile, error)

	// Upsert inserts or replaces the profile, keyed by UserID.
	Upsert(ctx context.Context, p *Profile) error
}

// SkillRepo persists profile skills.
type SkillRepo interface {
	List(ctx context.Context, userID string) ([]UserSkill, error)

	// Upsert inserts or updates a skill, unique per user and name.
	Upsert(ctx context.Context, s UserSkill) error

	// Delete removes a skill. Deleting a missing skill is not an error.
	Delete(ctx context.Context, userID, name string) error

	Count(ctx context.Context, userID string) (int, error)
}

// AssessmentRepo persists assessment attempts.
type AssessmentRepo interface {
	// Record inserts or replaces an attempt, keyed by its ID.
	Record(ctx context.Context, rec AssessmentRecord) error

	// List returns all attempts, newest first.
	List(ctx context.Context, userID string) ([]AssessmentRecord, error)

	// RecentCompleted returns up to limit completed attempts, most recently
	// completed first.
	RecentCompleted(ctx context.Context, userID string, limit int) ([]AssessmentRecord, error)

	// Counts returns the total number of attempts and how many completed.
	Counts(ctx context.Context, userID string) (total, completed int, err error)

	// LatestCompleted returns the most recently completed attempt of each
	// assessment, keyed by assessment ID.
	LatestCompleted(ctx context.Context, userID string) (map[string]AssessmentRecord, error)
}

// LearningPathRepo persists learning path enrollments.
type LearningPathRepo interface {
	// Enroll adds the user to a path. Enrolling twice is a no-op.
	Enroll(ctx context.Context, userID, pathID, title string) error

	List(ctx context.Context, userID string) ([]Enrollment, error)

	// Get returns the enrollment, or nil if the user is not enrolled.
	Get(ctx context.Context, userID, pathID string) (*Enrollment, error)

	// SetCourseCompleted marks or unmarks a course within an enrolled path.
	SetCourseCompleted(ctx context.Context, userID, pathID, courseID string, done bool) error

	Count(ctx context.Context, userID string) (int, error)
}

// SettingsRepo is a key/value store for small JSON documents.
type SettingsRepo interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ActivityRepo is the append-only activity log.
type ActivityRepo interface {
	// Append stamps the entry with the next sequence number and stores it.
	Append(ctx context.Context, a Activity) (Activity, error)

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]Activity, error)
}
