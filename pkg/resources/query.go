package resources

type SortMode string

const (
	SortModeAsc  SortMode = "asc"
	SortModeDesc SortMode = "desc"
)

func ParseSortMode(t string) SortMode {
	switch t {
	case "asc":
		return SortModeAsc
	case "desc":
		return SortModeDesc
	}
	return SortModeAsc
}

type SortOptions struct {
	SortMode  SortMode
	SortField string
}

type FilterOption struct {
	Field           string
	FilterOperation FilterOperation
	Value           string
}

// QueryParameters is the conjunctive filter set applied to list queries.
// Limit is clamped by the services before it reaches storage.
type QueryParameters struct {
	Sort    SortOptions
	Limit   int
	Filters []FilterOption
}

type FilterFieldType int

const (
	StringFilterFieldType FilterFieldType = iota
	DateFilterFieldType
	NumberFilterFieldType
	EnumFilterFieldType
)

type FilterOperation int

const (
	UnspecifiedFilter FilterOperation = iota

	StringEqual
	StringEqualIgnoreCase
	StringContains
	StringContainsIgnoreCase

	DateEqual
	DateBefore
	DateBeforeOrEqual
	DateAfter
	DateAfterOrEqual

	NumberEqual
	NumberLessThan
	NumberLessOrEqualThan
	NumberGreaterThan
	NumberGreaterOrEqualThan

	EnumEqual
	EnumNotEqual
)

const (
	// DefaultPageSize bounds list results when the caller gives no usable limit.
	DefaultPageSize = 100
	// MaxPageSize is the hard ceiling for any list query.
	MaxPageSize = 500
)

// ClampLimit applies the list limit rule: out-of-range values fall back to
// the default rather than erroring.
func ClampLimit(limit int) int {
	if limit > 0 && limit <= MaxPageSize {
		return limit
	}
	return DefaultPageSize
}
