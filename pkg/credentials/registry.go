// Package credentials describes the credential type catalog.
//
// Each type tag maps to a field-schema descriptor, so adding a type is a
// registration, not a new branch in a central switch. Unknown types fall
// back to a raw JSON editor.
package credentials

import (
	"sort"
)

// FieldKind selects the input widget and masking for a field.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindSecret FieldKind = "secret"
	KindNumber FieldKind = "number"
	KindEmail  FieldKind = "email"
)

// FieldSpec describes one field of a credential payload.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
}

// Secret reports whether the field value must be masked when rendered.
func (f FieldSpec) Secret() bool { return f.Kind == KindSecret }

// TypeSpec describes a credential type: its display label and the exact
// field set of its payload.
type TypeSpec struct {
	Tag    string
	Label  string
	Fields []FieldSpec
}

// Registry maps type tags to their specs.
type Registry struct {
	types map[string]TypeSpec
	order []string
}

// NewRegistry returns a registry preloaded with the built-in types.
func NewRegistry() *Registry {
	r := &Registry{types: map[string]TypeSpec{}}

	for _, spec := range builtinTypes {
		r.Register(spec)
	}

	return r
}

// Register adds or replaces a type spec.
func (r *Registry) Register(spec TypeSpec) {
	if _, exists := r.types[spec.Tag]; !exists {
		r.order = append(r.order, spec.Tag)
	}

	r.types[spec.Tag] = spec
}

// Lookup returns the spec for a tag. ok is false for unknown tags, which
// callers render with the raw JSON fallback editor.
func (r *Registry) Lookup(tag string) (TypeSpec, bool) {
	spec, ok := r.types[tag]

	return spec, ok
}

// Tags returns the registered tags in registration order.
func (r *Registry) Tags() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// BuildPayload assembles the submit payload for a type from entered
// values. Only the active type's fields are included: values left over
// from a previously selected type are discarded. Empty optional fields
// are omitted.
func (r *Registry) BuildPayload(tag string, values map[string]string) map[string]any {
	spec, ok := r.Lookup(tag)
	if !ok {
		return nil
	}

	payload := make(map[string]any, len(spec.Fields))

	for _, field := range spec.Fields {
		value, present := values[field.Name]
		if !present || value == "" {
			continue
		}

		payload[field.Name] = value
	}

	return payload
}

// MissingRequired lists required fields absent from values, sorted for
// stable display.
func (r *Registry) MissingRequired(tag string, values map[string]string) []string {
	spec, ok := r.Lookup(tag)
	if !ok {
		return nil
	}

	var missing []string

	for _, field := range spec.Fields {
		if field.Required && values[field.Name] == "" {
			missing = append(missing, field.Name)
		}
	}

	sort.Strings(missing)

	return missing
}

var builtinTypes = []TypeSpec{
	{
		Tag:   "http_basic",
		Label: "HTTP Basic Auth",
		Fields: []FieldSpec{
			{Name: "username", Label: "Username", Kind: KindText, Required: true},
			{Name: "password", Label: "Password", Kind: KindSecret, Required: true},
		},
	},
	{
		Tag:   "http_bearer",
		Label: "HTTP Bearer Token",
		Fields: []FieldSpec{
			{Name: "token", Label: "Bearer Token", Kind: KindSecret, Required: true},
		},
	},
	{
		Tag:   "oauth2",
		Label: "OAuth2",
		Fields: []FieldSpec{
			{Name: "client_id", Label: "Client ID", Kind: KindText, Required: true},
			{Name: "client_secret", Label: "Client Secret", Kind: KindSecret, Required: true},
		},
	},
	{
		Tag:   "api_key",
		Label: "API Key",
		Fields: []FieldSpec{
			{Name: "api_key", Label: "API Key", Kind: KindSecret, Required: true},
		},
	},
	{
		Tag:   "database",
		Label: "Database",
		Fields: []FieldSpec{
			{Name: "host", Label: "Host", Kind: KindText, Required: true},
			{Name: "database", Label: "Database", Kind: KindText, Required: true},
			{Name: "username", Label: "Username", Kind: KindText, Required: true},
			{Name: "password", Label: "Password", Kind: KindSecret, Required: true},
		},
	},
	{
		Tag:   "smtp",
		Label: "SMTP",
		Fields: []FieldSpec{
			{Name: "host", Label: "Host", Kind: KindText, Required: true},
			{Name: "port", Label: "Port", Kind: KindNumber, Required: true},
			{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
			{Name: "password", Label: "Password", Kind: KindSecret, Required: true},
		},
	},
	{
		Tag:   "aws",
		Label: "AWS",
		Fields: []FieldSpec{
			{Name: "access_key_id", Label: "Access Key ID", Kind: KindText, Required: true},
			{Name: "secret_access_key", Label: "Secret Access Key", Kind: KindSecret, Required: true},
			{Name: "region", Label: "Region", Kind: KindText, Required: true},
		},
	},
}
