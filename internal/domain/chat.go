package domain

import "time"

// ChatMessage is a single line in a user's conversation with the
// scripted bot. Messages are append-only: never updated, only bulk
// deleted by their owner.
type ChatMessage struct {
	ID            int64
	UserID        int64
	Message       string
	IsUserMessage bool
	CreatedAt     time.Time
}

// ChatThread summarizes one user's conversation for admin browsing.
type ChatThread struct {
	UserID        int64
	UserName      string
	UserEmail     string
	MessageCount  int64
	LastMessage   string
	LastMessageAt time.Time
}
