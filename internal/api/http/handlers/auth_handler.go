package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthHandler exposes signup, login and refresh endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}

	name := util.Sanitize(req.Name)
	if name == "" {
		return util.NewValidationError("Name is required", nil)
	}
	if util.Sanitize(req.Email) == "" {
		return util.NewValidationError("Email is required", nil)
	}
	if req.Password == "" {
		return util.NewValidationError("Password is required", nil)
	}
	email := util.NormalizeEmail(req.Email)
	if !util.IsValidEmail(email) {
		return util.NewValidationError("Invalid email format", nil)
	}
	if !util.IsValidPassword(req.Password) {
		return util.NewValidationError(
			fmt.Sprintf("Password must be between %d and %d characters", util.MinPasswordLength, util.MaxPasswordLength), nil)
	}

	user, token, exp, err := h.auth.Signup(c.UserContext(), name, email, req.Password)
	if err != nil {
		return err
	}

	data := dto.AuthData{Token: token, ExpiresAt: exp, User: dto.NewUserSummary(user)}
	return c.Status(http.StatusCreated).JSON(dto.SuccessMessage(data, "Account created successfully"))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email, password, err := parseLogin(c)
	if err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), email, password)
	if err != nil {
		return err
	}

	data := dto.AuthData{Token: token, ExpiresAt: exp, User: dto.NewUserSummary(user)}
	return c.JSON(dto.SuccessMessage(data, "Login successful"))
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	email, password, err := parseLogin(c)
	if err != nil {
		return err
	}

	admin, token, exp, err := h.auth.AdminLogin(c.UserContext(), email, password)
	if err != nil {
		return err
	}

	data := dto.AuthData{Token: token, ExpiresAt: exp, Admin: dto.NewAdminSummary(admin)}
	return c.JSON(dto.SuccessMessage(data, "Login successful"))
}

// Refresh handles POST /api/auth/refresh. Works for either role; the
// new token carries the same claims with a fresh expiry.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return util.NewUnauthorized("Access token required")
	}

	token, exp, err := h.auth.Refresh(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(dto.Success(dto.AuthData{Token: token, ExpiresAt: exp}))
}

func parseLogin(c *fiber.Ctx) (string, string, error) {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return "", "", util.NewValidationError("Invalid payload", nil)
	}
	if util.Sanitize(req.Email) == "" {
		return "", "", util.NewValidationError("Email is required", nil)
	}
	if req.Password == "" {
		return "", "", util.NewValidationError("Password is required", nil)
	}
	email := util.NormalizeEmail(req.Email)
	if !util.IsValidEmail(email) {
		return "", "", util.NewValidationError("Invalid email format", nil)
	}
	return email, req.Password, nil
}
