// Package filter narrows a record sequence with field-level equality
// predicates.
package filter

import (
	"fmt"

	"TrafficLens/internal/core/model"
)

// Criteria maps a field name to its required value. A field that is absent
// imposes no constraint. Criteria are built per request and never persisted.
type Criteria map[string]string

// UnknownFieldError reports a criteria field name outside the record schema.
// Surfacing it keeps a typo from silently matching nothing.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown filter field: %q", e.Field)
}

// Apply returns the records matching every criterion, in original order. A
// record matches iff, for each field named in c, its value equals the
// criterion exactly (case-sensitive; numeric fields compare against their
// decimal form). Empty criteria return the input unchanged, which also makes
// filtering idempotent: reapplying the same criteria to its own output is a
// no-op.
func Apply(records []model.TrafficRecord, c Criteria) ([]model.TrafficRecord, error) {
	if len(c) == 0 {
		return records, nil
	}

	var zero model.TrafficRecord
	for field := range c {
		if _, ok := zero.Field(field); !ok {
			return nil, &UnknownFieldError{Field: field}
		}
	}

	var matched []model.TrafficRecord
	for _, r := range records {
		if matches(r, c) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func matches(r model.TrafficRecord, c Criteria) bool {
	for field, want := range c {
		got, _ := r.Field(field)
		if got != want {
			return false
		}
	}
	return true
}
