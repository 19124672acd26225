package service

import (
	"context"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// ChatService handles the per-user bot conversation.
type ChatService struct {
	messages repository.ChatRepository
	users    repository.UserRepository
}

// NewChatService constructs the service.
func NewChatService(messages repository.ChatRepository, users repository.UserRepository) *ChatService {
	return &ChatService{messages: messages, users: users}
}

// Send stores the user's message, then synthesizes and stores the bot
// reply. The two writes are sequential, not atomic: a crash between
// them leaves an unpaired user message, which nothing downstream
// depends on.
func (s *ChatService) Send(ctx context.Context, userID int64, text string) (*domain.ChatMessage, *domain.ChatMessage, error) {
	userMsg := &domain.ChatMessage{
		UserID:        userID,
		Message:       text,
		IsUserMessage: true,
	}
	if err := s.messages.Insert(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	botMsg := &domain.ChatMessage{
		UserID:        userID,
		Message:       GenerateBotReply(text),
		IsUserMessage: false,
	}
	if err := s.messages.Insert(ctx, botMsg); err != nil {
		return nil, nil, err
	}
	return userMsg, botMsg, nil
}

// List returns the caller's full conversation, oldest first.
func (s *ChatService) List(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	return s.messages.ListByOwner(ctx, userID)
}

// Poll returns the caller's messages created after the given time.
func (s *ChatService) Poll(ctx context.Context, userID int64, since time.Time) ([]domain.ChatMessage, error) {
	return s.messages.ListByOwnerSince(ctx, userID, since)
}

// Clear deletes the caller's entire conversation and reports how many
// rows went away.
func (s *ChatService) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.messages.DeleteByOwner(ctx, userID)
}

// Threads lists every user conversation for admin browsing.
func (s *ChatService) Threads(ctx context.Context) ([]domain.ChatThread, error) {
	return s.messages.ListThreads(ctx)
}

// Transcript returns a user's conversation together with the user
// record, for the admin transcript view.
func (s *ChatService) Transcript(ctx context.Context, userID int64) (*domain.User, []domain.ChatMessage, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, msgs, nil
}
