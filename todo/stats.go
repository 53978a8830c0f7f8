package todo

import "todo-api/domain"

// Stats counts the user's items by completion state in a single pass over
// the live set, so the result always reflects the latest mutation.
func (s *Store) Stats(userID string) domain.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.Stats
	for _, it := range s.items {
		if it.UserID != userID {
			continue
		}
		st.Total++
		if it.Completed() {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}
