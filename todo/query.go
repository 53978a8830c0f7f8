package todo

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"todo-api/domain"
)

// collationLocale matches the locale the web client sorts with.
var collationLocale = language.AmericanEnglish

// List returns the user's items after applying, in this order: search,
// status filter, sort. The result is a copy; mutating it does not affect the
// store.
func (s *Store) List(userID string, q domain.ListQuery) []domain.Todo {
	q = q.Normalize()
	search := strings.ToLower(q.Search)

	s.mu.RLock()
	matched := make([]domain.Todo, 0, len(s.items))
	for _, it := range s.items {
		if it.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Title), search) {
			continue
		}
		if !matchesFilter(it, q.Filter) {
			continue
		}
		matched = append(matched, *it)
	}
	s.mu.RUnlock()

	sortTodos(matched, q.SortBy, q.Direction)
	return matched
}

func matchesFilter(it *domain.Todo, filter domain.StatusFilter) bool {
	switch filter {
	case domain.FilterActive:
		return !it.Completed()
	case domain.FilterCompleted:
		return it.Completed()
	default:
		return true
	}
}

// sortTodos orders items by the requested key. Items are first brought into
// a canonical id order so that ties resolve identically on every call
// regardless of map iteration order, then stable-sorted by the key. The
// direction flips the comparator, not the final slice, so tie order is the
// same ascending and descending.
func sortTodos(items []domain.Todo, key domain.SortKey, dir domain.SortDirection) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	var cmp func(a, b domain.Todo) int
	switch key {
	case domain.SortByTitle:
		tc := newTitleComparator(collationLocale)
		cmp = func(a, b domain.Todo) int { return tc.Compare(a.Title, b.Title) }
	case domain.SortByCreatedAt:
		cmp = func(a, b domain.Todo) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case domain.SortByUpdatedAt:
		cmp = func(a, b domain.Todo) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	default:
		cmp = func(a, b domain.Todo) int { return a.Order - b.Order }
	}
	if dir == domain.SortDesc {
		asc := cmp
		cmp = func(a, b domain.Todo) int { return asc(b, a) }
	}

	sort.SliceStable(items, func(i, j int) bool { return cmp(items[i], items[j]) < 0 })
}
