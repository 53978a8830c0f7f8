package todo

import "todo-api/domain"

// Reorder applies a batch of position changes for one user. Each pair is
// checked in input order against a simulated view of the user's positions:
// claiming a position held by a different item fails with
// *OrderConflictError, referencing an unknown or foreign-owned id fails with
// ErrNotFound. The batch commits only when every pair passes, so a failed
// request leaves the store untouched.
func (s *Store) Reorder(userID string, moves []domain.ReorderItem) error {
	if len(moves) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// position -> id and id -> position for the user's current items.
	holders := make(map[int]string)
	positions := make(map[string]int)
	for id, it := range s.items {
		if it.UserID != userID {
			continue
		}
		holders[it.Order] = id
		positions[id] = it.Order
	}

	for _, m := range moves {
		if holder, taken := holders[m.Order]; taken && holder != m.TodoID {
			return &OrderConflictError{Order: m.Order}
		}
		old, owned := positions[m.TodoID]
		if !owned {
			return ErrNotFound
		}
		if holders[old] == m.TodoID {
			delete(holders, old)
		}
		holders[m.Order] = m.TodoID
		positions[m.TodoID] = m.Order
	}

	now := s.now()
	for _, m := range moves {
		it := s.items[m.TodoID]
		it.Order = positions[m.TodoID]
		it.UpdatedAt = now
	}
	return nil
}
