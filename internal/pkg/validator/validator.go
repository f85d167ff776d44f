package validator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; exists {
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error; it exists so callers can build the slice inline.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil for an empty slice so it can be returned as a plain error.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

var halfStep = decimal.NewFromFloat(0.5)

// MaxPage is the highest page a list endpoint serves.
const MaxPage = 1_000_000

// IsWholeNumber reports whether d has no fractional part.
func IsWholeNumber(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// IsHalfStep reports whether d is a multiple of 0.5.
func IsHalfStep(d decimal.Decimal) bool {
	return IsWholeNumber(d.Div(halfStep))
}

// MaxScale reports whether d has at most places digits after the decimal point.
func MaxScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}
