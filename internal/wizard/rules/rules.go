// Package rules holds the field-level validation checks that gate wizard
// step navigation. Rules are pure functions over the accumulated form data;
// failures block forward navigation only and never surface as errors.
package rules

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for date fields across all wizards.
const DateLayout = "2006-01-02"

// Outcome is the result of evaluating a rule against the form.
type Outcome struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// Rule validates the accumulated form data for one step.
type Rule func(form map[string]string) Outcome

func ok() Outcome { return Outcome{Valid: true} }

func fail(field, message string) Outcome {
	return Outcome{Valid: false, Field: field, Message: message}
}

// Always passes regardless of form contents. Used by review-only steps.
func Always() Rule {
	return func(map[string]string) Outcome { return ok() }
}

// Required fails on the first listed field that is empty after trimming.
func Required(fields ...string) Rule {
	return func(form map[string]string) Outcome {
		for _, f := range fields {
			if strings.TrimSpace(form[f]) == "" {
				return fail(f, fmt.Sprintf("%s is required", f))
			}
		}
		return ok()
	}
}

// Email checks a minimal address shape: something before and after one @.
func Email(field string) Rule {
	return func(form map[string]string) Outcome {
		v := strings.TrimSpace(form[field])
		at := strings.Index(v, "@")
		if at <= 0 || at == len(v)-1 || strings.Count(v, "@") != 1 {
			return fail(field, "enter a valid email address")
		}
		return ok()
	}
}

// Phone requires exactly ten digits after stripping formatting characters.
func Phone(field string) Rule {
	return func(form map[string]string) Outcome {
		if len(NormalizePhone(form[field])) != 10 {
			return fail(field, "enter a 10-digit phone number")
		}
		return ok()
	}
}

// FutureDate requires a parseable date strictly after today.
func FutureDate(field string) Rule {
	return func(form map[string]string) Outcome {
		v := strings.TrimSpace(form[field])
		d, err := time.Parse(DateLayout, v)
		if err != nil {
			return fail(field, "enter a date as yyyy-mm-dd")
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if !d.After(today) {
			return fail(field, "date must be in the future")
		}
		return ok()
	}
}

// MinSelected requires at least n non-empty entries in a comma-separated
// selection field.
func MinSelected(field string, n int) Rule {
	return func(form map[string]string) Outcome {
		count := 0
		for _, part := range strings.Split(form[field], ",") {
			if strings.TrimSpace(part) != "" {
				count++
			}
		}
		if count < n {
			return fail(field, fmt.Sprintf("select at least %d", n))
		}
		return ok()
	}
}

// All evaluates rules in order and returns the first failure.
func All(checks ...Rule) Rule {
	return func(form map[string]string) Outcome {
		for _, check := range checks {
			if out := check(form); !out.Valid {
				return out
			}
		}
		return ok()
	}
}

// NormalizePhone strips every non-digit character. Persisted phone numbers
// are bare digit strings.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
