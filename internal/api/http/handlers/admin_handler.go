package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// AdminHandler exposes admin-scoped endpoints. The admin gate has
// already run; these operate over the full record set with no
// ownership filter.
type AdminHandler struct {
	admin   *service.AdminService
	tickets *service.TicketService
	chat    *service.ChatService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(adminService *service.AdminService, ticketService *service.TicketService, chatService *service.ChatService) *AdminHandler {
	return &AdminHandler{admin: adminService, tickets: ticketService, chat: chatService}
}

// DashboardStats handles GET /api/admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.admin.DashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage(dto.NewDashboardStatsResponse(stats), "Dashboard stats retrieved successfully"))
}

// ListTickets handles GET /api/admin/tickets.
func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	filter := repository.AdminTicketFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
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
	if raw := c.Query("search"); raw != "" {
		filter.SearchTerm = &raw
	}

	tickets, total, err := h.tickets.ListAll(c.UserContext(), filter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewAdminTicketResponse(&tickets[i]))
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"tickets": items, "total": total}, "Tickets retrieved successfully"))
}

// GetTicket handles GET /api/admin/tickets/:id.
func (h *AdminHandler) GetTicket(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ticket, err := h.tickets.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"ticket": dto.NewAdminTicketResponse(ticket)}, "Ticket retrieved successfully"))
}

// UpdateTicketStatus handles PUT /api/admin/tickets/:id/status. The
// status transition is the admin-only part of the ticket lifecycle and
// is idempotent.
func (h *AdminHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.TicketStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}
	if !domain.ValidTicketStatus(req.Status) {
		return util.NewValidationError(
			fmt.Sprintf("Status must be one of: %s, %s, %s, %s",
				domain.TicketStatusOpen, domain.TicketStatusInProgress,
				domain.TicketStatusResolved, domain.TicketStatusClosed), nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"ticket": dto.NewTicketResponse(ticket)}, "Ticket status updated successfully"))
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	users, total, err := h.admin.ListUsers(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		items = append(items, adminUserResponse(&users[i]))
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"users": items, "total": total}, "Users retrieved successfully"))
}

// UpdateUserStatus handles PUT /api/admin/users/:id/status.
func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UserStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}
	if !domain.ValidUserStatus(req.Status) {
		return util.NewValidationError(
			fmt.Sprintf("Status must be one of: %s, %s, %s",
				domain.UserStatusActive, domain.UserStatusPending, domain.UserStatusInactive), nil)
	}

	user, err := h.admin.UpdateUserStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return err
	}

	resp := dto.AdminUserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Initials:  user.Initials,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"user": resp}, "User status updated successfully"))
}

// ListChatThreads handles GET /api/admin/chats.
func (h *AdminHandler) ListChatThreads(c *fiber.Ctx) error {
	threads, err := h.chat.Threads(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.ChatThreadResponse, 0, len(threads))
	for i := range threads {
		items = append(items, dto.NewChatThreadResponse(&threads[i]))
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"threads": items}, "Chat threads retrieved successfully"))
}

// GetChatTranscript handles GET /api/admin/chats/:userId.
func (h *AdminHandler) GetChatTranscript(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	user, msgs, err := h.chat.Transcript(c.UserContext(), userID)
	if err != nil {
		return err
	}

	data := fiber.Map{
		"user":     dto.NewUserSummary(user),
		"messages": dto.NewChatMessageResponses(msgs),
	}
	return c.JSON(dto.SuccessMessage(data, "Chat history retrieved successfully"))
}

func adminUserResponse(item *repository.UserWithStats) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:        item.User.ID,
		Name:      item.User.Name,
		Email:     item.User.Email,
		Initials:  item.User.Initials,
		Status:    item.User.Status,
		CreatedAt: item.User.CreatedAt,
		Tickets:   dto.NewTicketStats(item.Stats),
	}
}
