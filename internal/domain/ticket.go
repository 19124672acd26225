package domain

import "time"

// TicketCategory classifies the subject matter of a ticket.
type TicketCategory string

const (
	TicketCategoryTechnical TicketCategory = "technical"
	TicketCategoryBilling   TicketCategory = "billing"
	TicketCategoryFeature   TicketCategory = "feature"
	TicketCategoryBug       TicketCategory = "bug"
	TicketCategoryOther     TicketCategory = "other"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketStatus enumerates lifecycle states. Status transitions are an
// admin-only operation; users never set status directly.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidTicketCategory reports whether c is a known category.
func ValidTicketCategory(c TicketCategory) bool {
	switch c {
	case TicketCategoryTechnical, TicketCategoryBilling, TicketCategoryFeature, TicketCategoryBug, TicketCategoryOther:
		return true
	}
	return false
}

// ValidTicketPriority reports whether p is a known priority.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

// ValidTicketStatus reports whether s is a known status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is the aggregate for a support request. UserID is always
// stamped from the authenticated caller, never from client input.
type Ticket struct {
	ID          int64
	UserID      int64
	Subject     string
	Category    TicketCategory
	Priority    TicketPriority
	Status      TicketStatus
	Description string
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketStats holds per-status counts for one user's tickets.
type TicketStats struct {
	Total      int64
	Open       int64
	InProgress int64
	Resolved   int64
	Closed     int64
}
