package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// UsersHandler exposes the authenticated user's profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// GetProfile handles GET /api/user/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	user, stats, err := h.users.Profile(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(profileResponse(user, stats)))
}

// UpdateProfile handles PUT /api/user/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}

	update := service.ProfileUpdate{}
	if req.Name != nil {
		name := util.Sanitize(*req.Name)
		if name == "" {
			return util.NewValidationError("Name cannot be empty", nil)
		}
		update.Name = &name
	}
	if req.Email != nil {
		email := util.NormalizeEmail(*req.Email)
		if !util.IsValidEmail(email) {
			return util.NewValidationError("Invalid email format", nil)
		}
		update.Email = &email
	}
	if update.Name == nil && update.Email == nil {
		return util.NewValidationError("No valid fields to update", nil)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), identity.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(dto.SuccessMessage(dto.NewUserSummary(user), "Profile updated successfully"))
}

func profileResponse(user *domain.User, stats domain.TicketStats) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Initials:  user.Initials,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		Tickets:   dto.NewTicketStats(stats),
	}
}

// callerIdentity fetches the authenticated identity or fails the
// request; routes behind the gate always have one.
func callerIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, util.NewUnauthorized("Access token required")
	}
	return identity, nil
}

// pathID parses a numeric path parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, util.NewValidationError("Invalid id", nil)
	}
	return id, nil
}
