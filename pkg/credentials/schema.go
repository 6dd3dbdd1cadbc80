package credentials

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema compiles the JSON schema for a type's payload: its fields as
// properties, the required set, and no additional properties.
func (r *Registry) Schema(tag string) (map[string]any, bool) {
	spec, ok := r.Lookup(tag)
	if !ok {
		return nil, false
	}

	properties := map[string]any{}
	required := []string{}

	for _, field := range spec.Fields {
		properties[field.Name] = map[string]any{"type": schemaType(field.Kind)}

		if field.Required {
			required = append(required, field.Name)
		}
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	return schema, true
}

func schemaType(kind FieldKind) string {
	// Everything is entered as text; numbers stay strings on the wire,
	// matching what the original form submitted.
	_ = kind

	return "string"
}

// ValidatePayload checks a payload against the type's schema. Unknown
// tags validate trivially (their payload is free-form JSON).
func (r *Registry) ValidatePayload(tag string, payload map[string]any) error {
	schema, ok := r.Schema(tag)
	if !ok {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("validate %s payload: %w", tag, err)
	}

	if result.Valid() {
		return nil
	}

	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}

	return fmt.Errorf("invalid %s payload: %s", tag, strings.Join(reasons, "; "))
}
