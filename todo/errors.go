package todo

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by bulk operations when a referenced item does not
// exist for the requesting user. Foreign-owned items are indistinguishable
// from missing ones so ids never leak across users.
var ErrNotFound = errors.New("todo not found")

// OrderConflictError reports an attempt to assign a position already held by
// a different item of the same user.
type OrderConflictError struct {
	Order int
}

func (e *OrderConflictError) Error() string {
	return fmt.Sprintf("order %d is already taken", e.Order)
}
