package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/skilldash/internal/assessment"
)

// validateCatalog performs all structural checks on courses and paths.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(courses []Course, paths []Path) error {
	var errs []string

	idSet := make(map[string]bool, len(courses))
	for _, course := range courses {
		if course.ID == "" {
			errs = append(errs, fmt.Sprintf("course %q has an empty ID", course.Title))
			continue
		}
		if idSet[course.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course ID: %q", course.ID))
		}
		idSet[course.ID] = true
		if _, err := assessment.ParseDifficulty(string(course.Difficulty)); err != nil {
			errs = append(errs, fmt.Sprintf("course %q: %v", course.ID, err))
		}
	}

	for _, course := range courses {
		for _, prereqID := range course.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("course %q references nonexistent prerequisite %q", course.ID, prereqID))
			}
		}
	}

	// Check for cycles using Kahn's algorithm
	inDegree := make(map[string]int, len(courses))
	adjList := make(map[string][]string)
	for _, course := range courses {
		inDegree[course.ID] = len(course.Prerequisites)
		for _, prereqID := range course.Prerequisites {
			adjList[prereqID] = append(adjList[prereqID], course.ID)
		}
	}

	var queue []string
	for _, course := range courses {
		if inDegree[course.ID] == 0 {
			queue = append(queue, course.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited < len(inDegree) {
		var cycleNodes []string
		for _, course := range courses {
			if inDegree[course.ID] > 0 {
				cycleNodes = append(cycleNodes, course.ID)
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving courses: %s", strings.Join(cycleNodes, ", ")))
	}

	pathIDs := make(map[string]bool, len(paths))
	for _, p := range paths {
		if pathIDs[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate path ID: %q", p.ID))
		}
		pathIDs[p.ID] = true
		if len(p.CourseIDs) == 0 {
			errs = append(errs, fmt.Sprintf("path %q has no courses", p.ID))
		}
		for _, id := range p.CourseIDs {
			if !idSet[id] {
				errs = append(errs, fmt.Sprintf("path %q references nonexistent course %q", p.ID, id))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("course catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
