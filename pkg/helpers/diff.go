package helpers

import (
	"github.com/alaines/alertas-api/pkg/models"
)

// ApplyChange records a field change in diff when next differs from current
// and returns the value the projection should hold afterwards.
func ApplyChange[T comparable](diff map[string]models.FieldChange, field string, current T, next *T) T {
	if next == nil || *next == current {
		return current
	}

	diff[field] = models.FieldChange{From: current, To: *next}
	return *next
}

// ApplyChangePtr is the optional-column variant. A nil next means "leave
// untouched", so clearing a column is not expressible through updates.
func ApplyChangePtr[T comparable](diff map[string]models.FieldChange, field string, current *T, next *T) *T {
	if next == nil {
		return current
	}

	if current != nil && *current == *next {
		return current
	}

	var from any
	if current != nil {
		from = *current
	}

	diff[field] = models.FieldChange{From: from, To: *next}
	return next
}
