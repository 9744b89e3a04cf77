package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedType is returned when a validator receives a value it
	// has no rules for.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidationFailed is matched by every [Errors] value, so callers can
	// test for a validation failure with errors.Is without inspecting fields.
	ErrValidationFailed = errors.New("the given data was invalid")
)

// Errors collects field-level validation messages keyed by the JSON name of
// the offending input field. Messages for a field keep the order in which the
// rules ran.
//
// A non-empty Errors is an error; use [Errors.Err] to turn an empty
// collection into nil.
type Errors map[string][]string

// FieldError returns an Errors holding a single message for field.
func FieldError(field, message string) Errors {
	return Errors{field: {message}}
}

// Add appends message to the messages of field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Has reports whether field has at least one message.
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Merge appends all messages of other to e.
func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		e[field] = append(e[field], messages...)
	}
}

// Err returns nil when e is empty and e otherwise.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Error renders the messages sorted by field name.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	for i, field := range fields {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(strings.Join(e[field], " "))
	}

	return b.String()
}

// Is makes every Errors match [ErrValidationFailed].
func (e Errors) Is(target error) bool {
	return target == ErrValidationFailed
}
