// Package jsonschema projects codecs into JSON Schema documents for export.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	MinProperties        *int               `json:"minProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Describer is implemented by codecs that can project themselves.
type Describer interface {
	JSONSchema() *Schema
}

// Of returns the projection of c, or an empty (accept-anything) schema when c
// does not implement Describer.
func Of(c any) *Schema {
	if d, ok := c.(Describer); ok {
		if s := d.JSONSchema(); s != nil {
			return s
		}
	}
	return &Schema{}
}

// Bound returns a pointer to f for Minimum/Maximum.
func Bound(f float64) *float64 { return &f }

// Count returns a pointer to n for MinProperties.
func Count(n int) *int { return &n }
