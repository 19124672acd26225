package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SendMessageRequest payload.
type SendMessageRequest struct {
	Message string `json:"message"`
}

// ChatMessageResponse is one line of a conversation.
type ChatMessageResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Message       string    `json:"message"`
	IsUserMessage bool      `json:"is_user_message"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChatThreadResponse summarizes one user's conversation for admins.
type ChatThreadResponse struct {
	UserID        int64     `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	MessageCount  int64     `json:"message_count"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// NewChatMessageResponse maps a domain message.
func NewChatMessageResponse(m *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		Message:       m.Message,
		IsUserMessage: m.IsUserMessage,
		CreatedAt:     m.CreatedAt,
	}
}

// NewChatMessageResponses maps a slice of messages.
func NewChatMessageResponses(msgs []domain.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, NewChatMessageResponse(&msgs[i]))
	}
	return out
}

// NewChatThreadResponse maps a domain thread summary.
func NewChatThreadResponse(t *domain.ChatThread) ChatThreadResponse {
	return ChatThreadResponse{
		UserID:        t.UserID,
		UserName:      t.UserName,
		UserEmail:     t.UserEmail,
		MessageCount:  t.MessageCount,
		LastMessage:   t.LastMessage,
		LastMessageAt: t.LastMessageAt,
	}
}
