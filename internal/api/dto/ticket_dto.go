package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject     string                `json:"subject"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Description string                `json:"description"`
	Phone       string                `json:"phone"`
}

// UpdateTicketRequest is the user-side update payload. Only the
// allow-listed fields are read; anything else in the body is ignored.
type UpdateTicketRequest struct {
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
}

// TicketStatusUpdateRequest is the admin-side status change payload.
type TicketStatusUpdateRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID          int64                 `json:"id"`
	UserID      int64                 `json:"user_id"`
	Subject     string                `json:"subject"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	Description string                `json:"description"`
	Email       string                `json:"email"`
	Phone       string                `json:"phone"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	UserName    string                `json:"user_name,omitempty"`
	UserEmail   string                `json:"user_email,omitempty"`
}

// TicketStats holds per-status ticket counts.
type TicketStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Subject:     t.Subject,
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      t.Status,
		Description: t.Description,
		Email:       t.Email,
		Phone:       t.Phone,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewAdminTicketResponse maps a ticket joined with its owner.
func NewAdminTicketResponse(t *repository.TicketWithUser) TicketResponse {
	resp := NewTicketResponse(&t.Ticket)
	resp.UserName = t.UserName
	resp.UserEmail = t.UserEmail
	return resp
}

// NewTicketStats maps domain counts.
func NewTicketStats(s domain.TicketStats) TicketStats {
	return TicketStats{
		Total:      s.Total,
		Open:       s.Open,
		InProgress: s.InProgress,
		Resolved:   s.Resolved,
		Closed:     s.Closed,
	}
}
