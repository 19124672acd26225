package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ChatRepository encapsulates chat message persistence. Owner-scoped
// methods always filter by the caller's user id.
type ChatRepository interface {
	Insert(ctx context.Context, msg *domain.ChatMessage) error
	ListByOwner(ctx context.Context, userID int64) ([]domain.ChatMessage, error)
	ListByOwnerSince(ctx context.Context, userID int64, since time.Time) ([]domain.ChatMessage, error)
	DeleteByOwner(ctx context.Context, userID int64) (int64, error)

	ListThreads(ctx context.Context) ([]domain.ChatThread, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository instantiates the repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

func (r *chatRepository) Insert(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (user_id, message, is_user_message)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		msg.UserID,
		msg.Message,
		msg.IsUserMessage,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *chatRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, user_id, message, is_user_message, created_at
        FROM chat_messages
        WHERE user_id=$1
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *chatRepository) ListByOwnerSince(ctx context.Context, userID int64, since time.Time) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, user_id, message, is_user_message, created_at
        FROM chat_messages
        WHERE user_id=$1 AND created_at > $2
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *chatRepository) DeleteByOwner(ctx context.Context, userID int64) (int64, error) {
	const query = `DELETE FROM chat_messages WHERE user_id=$1`
	cmd, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *chatRepository) ListThreads(ctx context.Context) ([]domain.ChatThread, error) {
	const query = `
        SELECT u.id, u.name, u.email,
               COUNT(cm.id) AS message_count,
               MAX(cm.created_at) AS last_message_at,
               (SELECT message FROM chat_messages
                WHERE user_id = u.id
                ORDER BY created_at DESC LIMIT 1) AS last_message
        FROM users u
        JOIN chat_messages cm ON u.id = cm.user_id
        GROUP BY u.id, u.name, u.email
        ORDER BY last_message_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatThread
	for rows.Next() {
		var thread domain.ChatThread
		if err := rows.Scan(
			&thread.UserID,
			&thread.UserName,
			&thread.UserEmail,
			&thread.MessageCount,
			&thread.LastMessageAt,
			&thread.LastMessage,
		); err != nil {
			return nil, err
		}
		result = append(result, thread)
	}
	return result, rows.Err()
}

func (r *chatRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	return r.ListByOwner(ctx, userID)
}

func scanMessages(rows pgx.Rows) ([]domain.ChatMessage, error) {
	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.UserID,
			&msg.Message,
			&msg.IsUserMessage,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
