package errors

import (
	"encoding/json"
	"fmt"
)

// DecodeError is returned when a wire payload can't be turned into a typed value.
// Type is the Go type being decoded, Field is the path to the offending JSON field.
// An empty Field means the payload as a whole was malformed.
type DecodeError struct {
	Type  string
	Field string
	Cause error
}

// MissingField creates a DecodeError for a required field that is absent or null
func MissingField(typeName, field string) DecodeError {
	return DecodeError{Type: typeName, Field: field}
}

// NewDecodeError creates a DecodeError for a field with the wrong shape.
// Type errors reported by encoding/json fill in the field name when field is empty.
func NewDecodeError(typeName, field string, cause error) DecodeError {
	if typeErr, ok := cause.(*json.UnmarshalTypeError); ok && field == "" {
		field = typeErr.Field
	}
	return DecodeError{Type: typeName, Field: field, Cause: cause}
}

// Nest re-homes e under a parent type, prefixing the field path with parentField
func (e DecodeError) Nest(typeName, parentField string) DecodeError {
	field := parentField
	if e.Field != "" {
		field += "." + e.Field
	}
	return DecodeError{Type: typeName, Field: field, Cause: e.Cause}
}

// Missing returns true if the field was absent rather than malformed
func (e DecodeError) Missing() bool {
	return e.Cause == nil && e.Field != ""
}

func (e DecodeError) Error() string {
	switch {
	case e.Missing():
		return fmt.Sprintf("Failed to decode %s: missing required field '%s'", e.Type, e.Field)
	case e.Field == "":
		return fmt.Sprintf("Failed to decode %s: %s", e.Type, e.Cause)
	default:
		return fmt.Sprintf("Failed to decode %s: malformed field '%s': %s", e.Type, e.Field, e.Cause)
	}
}

// Unwrap returns the underlying cause, if any
func (e DecodeError) Unwrap() error {
	return e.Cause
}
