package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketsHandler manages end-user ticket endpoints. All operations run
// under the caller's ownership filter.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}

	subject := util.Sanitize(req.Subject)
	if subject == "" {
		return util.NewValidationError("Subject is required", nil)
	}
	if req.Category == "" {
		return util.NewValidationError("Category is required", nil)
	}
	if req.Priority == "" {
		return util.NewValidationError("Priority is required", nil)
	}
	if !domain.ValidTicketCategory(req.Category) {
		return util.NewValidationError(
			fmt.Sprintf("Category must be one of: %s, %s, %s, %s, %s",
				domain.TicketCategoryTechnical, domain.TicketCategoryBilling,
				domain.TicketCategoryFeature, domain.TicketCategoryBug, domain.TicketCategoryOther), nil)
	}
	if !domain.ValidTicketPriority(req.Priority) {
		return util.NewValidationError(
			fmt.Sprintf("Priority must be one of: %s, %s, %s, %s",
				domain.TicketPriorityLow, domain.TicketPriorityMedium,
				domain.TicketPriorityHigh, domain.TicketPriorityUrgent), nil)
	}
	phone := util.Sanitize(req.Phone)
	if !util.IsValidPhone(phone) {
		return util.NewValidationError("Invalid phone format", nil)
	}

	input := service.TicketCreateInput{
		Subject:     subject,
		Category:    req.Category,
		Priority:    req.Priority,
		Description: util.Sanitize(req.Description),
		Phone:       phone,
	}
	ticket, err := h.tickets.Create(c.UserContext(), identity, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.SuccessMessage(dto.NewTicketResponse(ticket), "Ticket created successfully"))
}

// List handles GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	filter := repository.OwnerTicketFilter{}
	if raw := c.Query("status"); raw != "" {
		status := domain.TicketStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.TicketCategory(raw)
		filter.Category = &category
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.TicketPriority(raw)
		filter.Priority = &priority
	}

	tickets, err := h.tickets.ListForOwner(c.UserContext(), identity.ID, filter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(dto.Success(fiber.Map{"tickets": items, "total": len(items)}))
}

// Get handles GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ticket, err := h.tickets.GetForOwner(c.UserContext(), id, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.NewTicketResponse(ticket)))
}

// Update handles PUT /api/tickets/:id. Only description and phone are
// read from the payload; other fields are silently ignored.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}

	update := repository.OwnerUpdate{}
	if req.Description != nil {
		description := util.Sanitize(*req.Description)
		update.Description = &description
	}
	if req.Phone != nil {
		phone := util.Sanitize(*req.Phone)
		if !util.IsValidPhone(phone) {
			return util.NewValidationError("Invalid phone format", nil)
		}
		update.Phone = &phone
	}

	ticket, err := h.tickets.UpdateForOwner(c.UserContext(), id, identity.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage(dto.NewTicketResponse(ticket), "Ticket updated successfully"))
}

// Delete handles DELETE /api/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tickets.DeleteForOwner(c.UserContext(), id, identity.ID); err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"id": id}, "Ticket deleted successfully"))
}

// Stats handles GET /api/tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.tickets.StatsForOwner(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.NewTicketStats(stats)))
}
