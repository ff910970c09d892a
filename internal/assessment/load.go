package assessment

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const definitionsSchemaURL = "schema://assessment-definitions.json"

// definitionsSchema describes a JSON array of assessment definitions.
var definitionsSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"id", "title", "difficulty", "steps"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"duration":    map[string]any{"type": "string"},
			"difficulty":  map[string]any{"enum": []any{"Beginner", "Intermediate", "Advanced"}},
			"skills":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"steps": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "kind"},
					"properties": map[string]any{
						"id":    map[string]any{"type": "string", "minLength": 1},
						"kind":  map[string]any{"enum": []any{"intro", "question", "chat"}},
						"title": map[string]any{"type": "string"},
						"body":  map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": MinOptions,
							"maxItems": MaxOptions,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"answer": map[string]any{"type": "integer", "minimum": 0},
						"skill":  map[string]any{"type": "string"},
						"prompt": map[string]any{"type": "string"},
					},
					"additionalProperties": false,
				},
			},
		},
		"additionalProperties": false,
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func definitionsValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// Round-trip through JSON so the compiler sees plain decoded values.
		b, err := json.Marshal(definitionsSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(b, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(definitionsSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(definitionsSchemaURL)
	})
	return compiledSchema, compileErr
}

// LoadDefinitions parses and validates a JSON array of assessment
// definitions. Structural problems are reported by the JSON schema; step
// semantics are checked by NewStepModel when the definitions are added to a
// catalog.
func LoadDefinitions(data []byte) ([]Definition, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	v, err := definitionsValidator()
	if err != nil {
		return nil, fmt.Errorf("compile definitions schema: %w", err)
	}
	if err := v.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("decode definitions: %w", err)
	}
	for i := range defs {
		if _, err := NewStepModel(defs[i].Steps); err != nil {
			return nil, fmt.Errorf("assessment %q: %w", defs[i].ID, err)
		}
	}
	return defs, nil
}

// LoadDefinitionsFile reads definitions from a JSON file.
func LoadDefinitionsFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadDefinitions(data)
}
