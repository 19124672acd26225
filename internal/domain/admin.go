package domain

import "time"

// Admin is the domain model for administrators. Admins live in a record
// space disjoint from end-users; only the token mechanism is shared.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	LastLogin    *time.Time
	CreatedAt    time.Time
}
