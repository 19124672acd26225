package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows on both sides of the
// admin boundary. User-facing methods always operate under the
// ownership filter; a non-owner's single-ticket request surfaces as
// row absence and therefore NOT_FOUND.
type TicketService struct {
	tickets repository.TicketRepository
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

// TicketCreateInput describes the client-supplied part of a new
// ticket. Owner id and contact email come from the verified identity.
type TicketCreateInput struct {
	Subject     string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
	Description string
	Phone       string
}

// Create opens a ticket owned by the caller.
func (s *TicketService) Create(ctx context.Context, identity domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		UserID:      identity.ID,
		Subject:     input.Subject,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		Description: input.Description,
		Email:       identity.Email,
		Phone:       input.Phone,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListForOwner returns the caller's tickets, newest first.
func (s *TicketService) ListForOwner(ctx context.Context, userID int64, filter repository.OwnerTicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListByOwner(ctx, userID, filter)
}

// GetForOwner fetches one of the caller's tickets.
func (s *TicketService) GetForOwner(ctx context.Context, id, userID int64) (*domain.Ticket, error) {
	return s.tickets.GetByIDForOwner(ctx, id, userID)
}

// UpdateForOwner applies the owner-editable fields. Anything outside
// the allow-list never reaches this point; handlers drop unknown
// fields silently.
func (s *TicketService) UpdateForOwner(ctx context.Context, id, userID int64, update repository.OwnerUpdate) (*domain.Ticket, error) {
	if update.Description == nil && update.Phone == nil {
		return nil, apperrors.NewValidationError("No valid fields to update", nil)
	}
	return s.tickets.UpdateForOwner(ctx, id, userID, update)
}

// DeleteForOwner removes one of the caller's tickets.
func (s *TicketService) DeleteForOwner(ctx context.Context, id, userID int64) error {
	return s.tickets.DeleteForOwner(ctx, id, userID)
}

// StatsForOwner returns the caller's per-status ticket counts.
func (s *TicketService) StatsForOwner(ctx context.Context, userID int64) (domain.TicketStats, error) {
	return s.tickets.StatsByOwner(ctx, userID)
}

// ListAll returns tickets across all users with admin filters and the
// total matching count.
func (s *TicketService) ListAll(ctx context.Context, filter repository.AdminTicketFilter) ([]repository.TicketWithUser, int64, error) {
	return s.tickets.ListAll(ctx, filter)
}

// Get fetches any ticket with its owner's display fields.
func (s *TicketService) Get(ctx context.Context, id int64) (*repository.TicketWithUser, error) {
	return s.tickets.GetByID(ctx, id)
}

// UpdateStatus moves a ticket through its lifecycle. Setting the same
// status twice is a no-op with the same terminal state.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	return s.tickets.UpdateStatus(ctx, id, status)
}
