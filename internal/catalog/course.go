package catalog

import "github.com/abhisek/skilldash/internal/assessment"

// Course is one entry in the static course catalog.
type Course struct {
	ID            string
	Title         string
	Description   string
	Duration      string
	Difficulty    assessment.Difficulty
	Skills        []string
	Prerequisites []string // course IDs that must be completed first
}

// Path is a curated, ordered sequence of courses.
type Path struct {
	ID            string
	Title         string
	Description   string
	EstimatedTime string
	Difficulty    assessment.Difficulty
	Skills        []string
	CourseIDs     []string
}

// CourseState is a course's status for one learner.
type CourseState int

const (
	StateLocked CourseState = iota
	StateAvailable
	StateInProgress
	StateCompleted
)

func (s CourseState) String() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateAvailable:
		return "Available"
	case StateInProgress:
		return "In Progress"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Progress summarizes a learner's completion of a path.
type Progress struct {
	Completed int
	Total     int
	Percent   int
	Next      *Course // first unfinished course in path order, nil when done
}

// Done reports whether every course of the path is completed.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed == p.Total
}
