package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Summary joins the field errors into one line, e.g. "creditScore: Invalid type".
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// Schema is a compiled JSON schema.
type Schema struct {
	schema *gojsonschema.Schema
}

// NewSchema compiles a schema given as a Go map.
func NewSchema(definition map[string]interface{}) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(definition))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// MustSchema is NewSchema for package-level schemas that are known to be valid.
func MustSchema(definition map[string]interface{}) *Schema {
	s, err := NewSchema(definition)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks document (decoded JSON or a Go value) and reports every violation,
// sorted by field.
func (s *Schema) Validate(document interface{}) (*ValidationResult, error) {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldName(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	sort.SliceStable(out.Errors, func(i, j int) bool {
		return out.Errors[i].Field < out.Errors[j].Field
	})
	return out, nil
}

const rootField = "(root)"

// fieldName reports the offending property for "required" errors, which gojsonschema
// otherwise attributes to the parent object.
func fieldName(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if desc.Field() == rootField {
				return prop
			}
			return desc.Field() + "." + prop
		}
	}
	return desc.Field()
}
