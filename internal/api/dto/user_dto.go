package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ProfileUpdateRequest payload. Pointer fields distinguish "absent"
// from "set to empty".
type ProfileUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ProfileResponse is the authenticated user's own profile with ticket
// counts.
type ProfileResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Initials  string            `json:"initials"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Tickets   TicketStats       `json:"tickets"`
}

// AdminUserResponse is one row of the admin users listing.
type AdminUserResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Initials  string            `json:"initials"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	Tickets   TicketStats       `json:"tickets"`
}

// UserStatusUpdateRequest payload for admin user moderation.
type UserStatusUpdateRequest struct {
	Status domain.UserStatus `json:"status"`
}
