package todo

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"todo-api/domain"
)

// Store is the authoritative in-memory todo collection. All compound
// operations run under a single lock so read-then-write sequences (order
// allocation, reorder conflict checks) cannot interleave.
type Store struct {
	mu    sync.RWMutex
	items map[string]*domain.Todo

	now func() time.Time
}

// NewStore creates an empty store. It is safe for concurrent use.
func NewStore() *Store {
	return &Store{
		items: make(map[string]*domain.Todo),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new active item at the next free position for the user
// and returns it.
func (s *Store) Create(userID, title string) domain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := &domain.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Order:     s.nextOrderLocked(userID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items[item.ID] = item
	return *item
}

// nextOrderLocked returns max(order)+1 over the user's items, or 0 when the
// user has none. Recomputed on every create; freed positions are not reused.
func (s *Store) nextOrderLocked(userID string) int {
	next := 0
	for _, it := range s.items {
		if it.UserID == userID && it.Order >= next {
			next = it.Order + 1
		}
	}
	return next
}

// Find returns the user's item by id. The second result is false when the id
// is unknown or belongs to a different user.
func (s *Store) Find(id, userID string) (domain.Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it := s.lookupLocked(id, userID)
	if it == nil {
		return domain.Todo{}, false
	}
	return *it, true
}

// Update replaces the item's title and, when order is non-nil, its position.
// A position held by another item of the same user is rejected with
// *OrderConflictError; a missing item yields ErrNotFound.
func (s *Store) Update(id, userID, title string, order *int) (domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.lookupLocked(id, userID)
	if it == nil {
		return domain.Todo{}, ErrNotFound
	}
	if order != nil {
		if holder := s.holderOfLocked(userID, *order); holder != nil && holder.ID != id {
			return domain.Todo{}, &OrderConflictError{Order: *order}
		}
		it.Order = *order
	}
	it.Title = title
	it.UpdatedAt = s.now()
	return *it, nil
}

// Toggle flips the completion state, stamping or clearing CompletedAt.
func (s *Store) Toggle(id, userID string) (domain.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.lookupLocked(id, userID)
	if it == nil {
		return domain.Todo{}, false
	}
	now := s.now()
	if it.CompletedAt == nil {
		it.CompletedAt = &now
	} else {
		it.CompletedAt = nil
	}
	it.UpdatedAt = now
	return *it, true
}

// Delete removes the user's item and returns it. Removal is immediate and
// final; there is no soft delete.
func (s *Store) Delete(id, userID string) (domain.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.lookupLocked(id, userID)
	if it == nil {
		return domain.Todo{}, false
	}
	delete(s.items, id)
	return *it, true
}

// DeleteWhere removes all of the user's items matching the status filter.
func (s *Store) DeleteWhere(userID string, filter domain.StatusFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, it := range s.items {
		if it.UserID != userID {
			continue
		}
		if matchesFilter(it, filter) {
			delete(s.items, id)
		}
	}
}

func (s *Store) lookupLocked(id, userID string) *domain.Todo {
	it, ok := s.items[id]
	if !ok || it.UserID != userID {
		return nil
	}
	return it
}

// holderOfLocked returns the user's item currently occupying the position,
// or nil when the position is free.
func (s *Store) holderOfLocked(userID string, order int) *domain.Todo {
	for _, it := range s.items {
		if it.UserID == userID && it.Order == order {
			return it
		}
	}
	return nil
}
