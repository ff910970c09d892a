package catalog

import (
	"strings"

	"github.com/abhisek/skilldash/internal/assessment"
)

// Filter narrows the course list. Zero-valued fields match everything.
type Filter struct {
	Query      string                // substring of title, description or a skill
	Difficulty assessment.Difficulty // exact level
	Skill      string                // exact skill name
}

// Match reports whether course satisfies every set field of f.
// All comparisons ignore case.
func (f Filter) Match(course Course) bool {
	if f.Difficulty != "" && !strings.EqualFold(string(f.Difficulty), string(course.Difficulty)) {
		return false
	}
	if skill := strings.TrimSpace(f.Skill); skill != "" {
		found := false
		for _, s := range course.Skills {
			if strings.EqualFold(s, skill) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(course.Title), q) ||
		strings.Contains(strings.ToLower(course.Description), q) {
		return true
	}
	for _, s := range course.Skills {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Search returns the courses matching f in catalog order.
func Search(f Filter) []Course {
	var result []Course
	for _, course := range c.courses {
		if f.Match(course) {
			result = append(result, course)
		}
	}
	return result
}

// Skills returns every distinct skill taught by the catalog, in first-seen order.
func Skills() []string {
	seen := make(map[string]bool)
	var skills []string
	for _, course := range c.courses {
		for _, s := range course.Skills {
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}
	}
	return skills
}
