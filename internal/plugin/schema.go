package plugin

import (
	"fmt"

	"plugcheck/internal/jsonutil"
)

// schemaMarkers are the keys at least one of which a JSON Schema file must
// declare at the top level.
var schemaMarkers = []string{"$schema", "type", "properties"}

// ValidateSchemaFile checks that path parses as JSON and declares at least
// one schema marker key.
func ValidateSchemaFile(path string) error {
	doc, err := jsonutil.ParseFile(path)
	if err != nil {
		return err
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%s: schema file is not a JSON object", path)
	}
	for _, marker := range schemaMarkers {
		if _, ok := obj[marker]; ok {
			return nil
		}
	}
	return fmt.Errorf("%s: missing all of $schema, type, properties", path)
}
