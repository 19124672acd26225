package domain

import "time"

// UserStatus represents lifecycle states for an end-user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusPending  UserStatus = "pending"
	UserStatusInactive UserStatus = "inactive"
)

// ValidUserStatus reports whether s is a known account status.
func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserStatusActive, UserStatusPending, UserStatusInactive:
		return true
	}
	return false
}

// User is the domain model for end-users who submit tickets and chat.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Status       UserStatus
	Initials     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}