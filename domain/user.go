package domain

import "time"

// User is an account record. PasswordHash is a bcrypt digest and never
// crosses the API boundary.
type User struct {
	ID           string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
