package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/pkg/util"
)

// ChatHandler manages the end-user chat endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs the handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

// List handles GET /api/chat/messages.
func (h *ChatHandler) List(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	msgs, err := h.chat.List(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	items := dto.NewChatMessageResponses(msgs)
	return c.JSON(dto.Success(fiber.Map{"messages": items, "total": len(items)}))
}

// Send handles POST /api/chat/messages. Stores the user message and
// the synthesized bot reply as a pair.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("Invalid payload", nil)
	}
	message := util.Sanitize(req.Message)
	if message == "" {
		return util.NewValidationError("Message is required", nil)
	}

	userMsg, botMsg, err := h.chat.Send(c.UserContext(), identity.ID, message)
	if err != nil {
		return err
	}

	data := fiber.Map{
		"user_message": dto.NewChatMessageResponse(userMsg),
		"bot_response": dto.NewChatMessageResponse(botMsg),
	}
	return c.Status(http.StatusCreated).JSON(dto.SuccessMessage(data, "Message sent successfully"))
}

// Poll handles GET /api/chat/poll?since=<ts>. The timestamp is RFC3339
// (with or without sub-second precision).
func (h *ChatHandler) Poll(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	raw := c.Query("since")
	if raw == "" {
		return util.NewValidationError("Since timestamp is required", nil)
	}
	since, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return util.NewValidationError("Invalid since timestamp", nil)
	}

	msgs, err := h.chat.Poll(c.UserContext(), identity.ID, since)
	if err != nil {
		return err
	}
	items := dto.NewChatMessageResponses(msgs)
	return c.JSON(dto.Success(fiber.Map{"new_messages": items, "has_more": len(items) > 0}))
}

// Clear handles DELETE /api/chat/messages.
func (h *ChatHandler) Clear(c *fiber.Ctx) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	deleted, err := h.chat.Clear(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}

	message := "No messages to delete"
	if deleted > 0 {
		message = "Chat history deleted successfully"
	}
	return c.JSON(dto.SuccessMessage(fiber.Map{"deleted": deleted}, message))
}
