package form

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError names the first field that failed local validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects field checks and reports the first failure, matching how
// the forms surface a single message at a time.
type Errors struct {
	first *ValidationError
}

func (v *Errors) add(field, message string) {
	if v.first == nil {
		v.first = &ValidationError{Field: field, Message: message}
	}
}

// Required fails when value is empty after trimming.
func (v *Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "es obligatorio")
	}
}

// Selected fails when no option is chosen (zero id).
func (v *Errors) Selected(field string, id int64) {
	if id == 0 {
		v.add(field, "debe seleccionarse")
	}
}

// PositiveInt fails when n is not strictly positive.
func (v *Errors) PositiveInt(field string, n int) {
	if n <= 0 {
		v.add(field, "debe ser mayor que cero")
	}
}

// PositiveFloat fails when n is not strictly positive.
func (v *Errors) PositiveFloat(field string, n float64) {
	if n <= 0 {
		v.add(field, "debe ser mayor que cero")
	}
}

// Err returns the first recorded failure, or nil.
func (v *Errors) Err() error {
	if v.first == nil {
		return nil
	}
	return v.first
}

// Input coercion helpers. Text inputs hand back strings; numeric fields are
// coerced here so drafts carry typed values.

// ParseInt parses a count field; invalid input coerces to 0, which the
// validators then reject.
func ParseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// ParseFloat parses a price field; invalid input coerces to 0.
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
