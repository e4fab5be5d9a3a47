package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/perfmark/component"
)

// writeJSON renders results.json plus a schema describing the document,
// so downstream tooling can validate what it consumes.
func writeJSON(res component.Results, dir string) error {
	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return fmt.Errorf("rendering json report: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, JSONFile), append(data, '\n'), 0o600)
	if err != nil {
		return fmt.Errorf("writing json report: %w", err)
	}

	schema, err := json.MarshalIndent(resultsSchema(), "", "    ")
	if err != nil {
		return fmt.Errorf("rendering results schema: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, SchemaFile), append(schema, '\n'), 0o600)
	if err != nil {
		return fmt.Errorf("writing results schema: %w", err)
	}

	return nil
}

// resultsSchema describes the results.json document: component names
// mapping to arrays of samples.
func resultsSchema() *jsonschema.Schema {
	location := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"function": {Type: "string"},
			"file":     {Type: "string"},
			"line":     {Type: "integer"},
		},
		PropertyOrder: []string{"function", "file", "line"},
	}

	sample := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"label":         {Type: "string"},
			"component":     {Type: "string"},
			"value":         {Type: "number"},
			"units":         {Type: "string"},
			"display_units": {Type: "string"},
			"laps":          {Type: "integer"},
			"location":      location,
		},
		PropertyOrder: []string{
			"label", "component", "value", "units", "display_units", "laps", "location",
		},
	}

	return &jsonschema.Schema{
		Type: "object",
		AdditionalProperties: &jsonschema.Schema{
			Type:  "array",
			Items: sample,
		},
	}
}
