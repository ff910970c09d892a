package assessment

import (
	"fmt"
	"strings"
)

// Difficulty is the level label shared by assessments, courses and paths.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// AllDifficulties returns the difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// ParseDifficulty parses a difficulty case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range AllDifficulties() {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Definition describes an assessment offered in the catalog.
type Definition struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Difficulty  Difficulty `json:"difficulty"`
	Skills      []string   `json:"skills"`
	Steps       []Step     `json:"steps"`
}

// Catalog is an ordered set of assessment definitions with their compiled
// step models.
type Catalog struct {
	defs   []Definition
	byID   map[string]int
	models map[string]*StepModel
}

// NewCatalog validates every definition and builds a catalog.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{
		byID:   make(map[string]int, len(defs)),
		models: make(map[string]*StepModel, len(defs)),
	}
	for _, d := range defs {
		if err := c.add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Extend returns a new catalog containing c's definitions followed by defs.
func (c *Catalog) Extend(defs []Definition) (*Catalog, error) {
	return NewCatalog(append(c.All(), defs...))
}

func (c *Catalog) add(d Definition) error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("assessment %q: empty id", d.Title)
	}
	if _, dup := c.byID[d.ID]; dup {
		return fmt.Errorf("duplicate assessment id %q", d.ID)
	}
	if _, err := ParseDifficulty(string(d.Difficulty)); err != nil {
		return fmt.Errorf("assessment %q: %w", d.ID, err)
	}
	m, err := NewStepModel(d.Steps)
	if err != nil {
		return fmt.Errorf("assessment %q: %w", d.ID, err)
	}
	c.byID[d.ID] = len(c.defs)
	c.defs = append(c.defs, cloneDefinition(d))
	c.models[d.ID] = m
	return nil
}

// All returns the definitions in catalog order.
func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	for i, d := range c.defs {
		out[i] = cloneDefinition(d)
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Get returns a definition by ID.
func (c *Catalog) Get(id string) (Definition, error) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return cloneDefinition(c.defs[i]), nil
}

// Model returns the compiled step model of a definition.
func (c *Catalog) Model(id string) (*StepModel, error) {
	m, ok := c.models[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return m, nil
}

// NewWizard starts a fresh wizard for the given assessment.
func (c *Catalog) NewWizard(id string, table *ResponseTable, opts ...Option) (*Wizard, error) {
	m, err := c.Model(id)
	if err != nil {
		return nil, err
	}
	return NewWizard(m, table, opts...), nil
}

func cloneDefinition(d Definition) Definition {
	d.Skills = append([]string(nil), d.Skills...)
	d.Steps = cloneSteps(d.Steps)
	return d
}
