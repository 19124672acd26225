package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SignupRequest payload for new users.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload, shared by user and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the public view of a user account.
type UserSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
}

// AdminSummary is the public view of an admin account.
type AdminSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthData carries a bearer token plus the authenticated account.
type AuthData struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserSummary  `json:"user,omitempty"`
	Admin     *AdminSummary `json:"admin,omitempty"`
}

// NewUserSummary maps a domain user.
func NewUserSummary(u *domain.User) *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Initials: u.Initials}
}

// NewAdminSummary maps a domain admin.
func NewAdminSummary(a *domain.Admin) *AdminSummary {
	return &AdminSummary{ID: a.ID, Email: a.Email, Name: a.Name}
}
