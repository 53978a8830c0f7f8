package domain

import "time"

// Todo represents a single list item owned by one user. CompletedAt is nil
// while the item is active; a non-nil value is the completion time.
type Todo struct {
	ID          string     `json:"todoId"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Order       int        `json:"order"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Completed reports whether the item carries a completion timestamp.
func (t Todo) Completed() bool {
	return t.CompletedAt != nil
}

// Stats holds derived per-user counters. Total is always Active+Completed.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
