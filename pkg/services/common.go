package services

import "github.com/alaines/alertas-api/pkg/resources"

const (
	// recentEventsLimit bounds the event slice joined into single-entity reads.
	recentEventsLimit = 10
	// defaultEventsLimit applies to event listings with no usable limit.
	defaultEventsLimit = 50
)

func clampEventsLimit(limit int) int {
	if limit > 0 && limit <= resources.MaxPageSize {
		return limit
	}
	return defaultEventsLimit
}
