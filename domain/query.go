package domain

// StatusFilter selects items by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

// Valid reports whether the filter is one of the known values.
func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// SortKey names the field a listing is ordered by.
type SortKey string

const (
	SortByTitle     SortKey = "title"
	SortByOrder     SortKey = "order"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByTitle, SortByOrder, SortByCreatedAt, SortByUpdatedAt:
		return true
	}
	return false
}

// SortDirection reverses the comparator, never the final list, so ties keep
// a consistent relative order in both directions.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// ListQuery carries the listing selectors. Zero values mean "unspecified";
// Normalize fills in the documented defaults.
type ListQuery struct {
	Search    string
	Filter    StatusFilter
	SortBy    SortKey
	Direction SortDirection
}

// Normalize returns a copy with defaults applied: filter=all, sortBy=order,
// direction=asc.
func (q ListQuery) Normalize() ListQuery {
	if q.Filter == "" {
		q.Filter = FilterAll
	}
	if q.SortBy == "" {
		q.SortBy = SortByOrder
	}
	if q.Direction == "" {
		q.Direction = SortAsc
	}
	return q
}

// ReorderItem is one repositioning request within a bulk reorder.
type ReorderItem struct {
	TodoID string `json:"todoId"`
	Order  int    `json:"order"`
}
