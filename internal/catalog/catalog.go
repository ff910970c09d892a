package catalog

import (
	"fmt"
	"slices"
	"sort"
)

// catalog holds the course DAG and learning paths with precomputed indices.
type catalog struct {
	courses    []Course
	byID       map[string]*Course
	dependents map[string][]string
	topoOrder  []Course
	paths      []Path
	pathByID   map[string]*Path
}

// c is the package-level catalog singleton, set by init() in seed.go.
var c *catalog

// buildCatalog constructs the catalog and its indices, including a
// topological order of courses (Kahn's algorithm).
func buildCatalog(courses []Course, paths []Path) *catalog {
	cat := &catalog{
		courses:    courses,
		byID:       make(map[string]*Course, len(courses)),
		dependents: make(map[string][]string),
		paths:      paths,
		pathByID:   make(map[string]*Path, len(paths)),
	}

	for i := range cat.courses {
		cat.byID[cat.courses[i].ID] = &cat.courses[i]
	}
	for i := range cat.paths {
		cat.pathByID[cat.paths[i].ID] = &cat.paths[i]
	}
	for i := range cat.courses {
		for _, prereqID := range cat.courses[i].Prerequisites {
			cat.dependents[prereqID] = append(cat.dependents[prereqID], cat.courses[i].ID)
		}
	}

	inDegree := make(map[string]int, len(courses))
	for i := range courses {
		inDegree[courses[i].ID] = len(courses[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		cat.topoOrder = append(cat.topoOrder, *cat.byID[id])

		deps := slices.Clone(cat.dependents[id])
		sort.Strings(deps)
		for _, depID := range deps {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	return cat
}

// GetCourse returns a course by ID, or error if not found.
func GetCourse(id string) (Course, error) {
	course, ok := c.byID[id]
	if !ok {
		return Course{}, fmt.Errorf("course not found: %q", id)
	}
	return *course, nil
}

// AllCourses returns every course in catalog order.
func AllCourses() []Course {
	return slices.Clone(c.courses)
}

// TopologicalOrder returns all courses so that prerequisites come first.
func TopologicalOrder() []Course {
	return slices.Clone(c.topoOrder)
}

// Prerequisites returns the direct prerequisite courses of id.
func Prerequisites(id string) []Course {
	course, ok := c.byID[id]
	if !ok {
		return nil
	}
	result := make([]Course, 0, len(course.Prerequisites))
	for _, prereqID := range course.Prerequisites {
		if p, ok := c.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// Dependents returns courses that directly require id.
func Dependents(id string) []Course {
	result := make([]Course, 0, len(c.dependents[id]))
	for _, depID := range c.dependents[id] {
		if d, ok := c.byID[depID]; ok {
			result = append(result, *d)
		}
	}
	return result
}

// IsUnlocked returns true if all prerequisites of id are in the completed set.
func IsUnlocked(id string, completed map[string]bool) bool {
	course, ok := c.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range course.Prerequisites {
		if !completed[prereqID] {
			return false
		}
	}
	return true
}

// State classifies a course for a learner. A course counts as in progress
// when it is unlocked and listed in started.
func State(id string, completed, started map[string]bool) CourseState {
	switch {
	case completed[id]:
		return StateCompleted
	case !IsUnlocked(id, completed):
		return StateLocked
	case started[id]:
		return StateInProgress
	default:
		return StateAvailable
	}
}

// AllPaths returns every learning path in display order.
func AllPaths() []Path {
	paths := make([]Path, len(c.paths))
	for i, p := range c.paths {
		paths[i] = p
		paths[i].Skills = slices.Clone(p.Skills)
		paths[i].CourseIDs = slices.Clone(p.CourseIDs)
	}
	return paths
}

// GetPath returns a learning path by ID, or error if not found.
func GetPath(id string) (Path, error) {
	p, ok := c.pathByID[id]
	if !ok {
		return Path{}, fmt.Errorf("learning path not found: %q", id)
	}
	out := *p
	out.Skills = slices.Clone(p.Skills)
	out.CourseIDs = slices.Clone(p.CourseIDs)
	return out, nil
}

// PathCourses returns the courses of a path in path order.
func PathCourses(p Path) []Course {
	result := make([]Course, 0, len(p.CourseIDs))
	for _, id := range p.CourseIDs {
		if course, ok := c.byID[id]; ok {
			result = append(result, *course)
		}
	}
	return result
}

// PathProgress computes how far a learner is through p.
func PathProgress(p Path, completed map[string]bool) Progress {
	prog := Progress{Total: len(p.CourseIDs)}
	for _, id := range p.CourseIDs {
		if completed[id] {
			prog.Completed++
			continue
		}
		if prog.Next == nil {
			if course, ok := c.byID[id]; ok {
				next := *course
				prog.Next = &next
			}
		}
	}
	if prog.Total > 0 {
		prog.Percent = (prog.Completed*100 + prog.Total/2) / prog.Total
	}
	return prog
}

// Validate checks the catalog for structural issues.
func Validate() error {
	return validateCatalog(c.courses, c.paths)
}
