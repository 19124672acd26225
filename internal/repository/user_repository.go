package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// UserWithStats pairs a user row with its ticket counts for admin
// listings.
type UserWithStats struct {
	User  domain.User
	Stats domain.TicketStats
}

// UserRepository defines persistence access for end-users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error)
	ListWithTicketStats(ctx context.Context, limit, offset int) ([]UserWithStats, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, status, initials)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Status,
		user.Initials,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, status, initials, created_at, updated_at
        FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, status, initials, created_at, updated_at
        FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.Initials,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, initials=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Initials,
		user.ID,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	const query = `
        UPDATE users SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, name, email, password_hash, status, initials, created_at, updated_at`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.Initials,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListWithTicketStats(ctx context.Context, limit, offset int) ([]UserWithStats, error) {
	const query = `
        SELECT u.id, u.name, u.email, u.status, u.initials, u.created_at,
               COUNT(t.id) AS total_tickets,
               COUNT(*) FILTER (WHERE t.status = 'open') AS open_tickets,
               COUNT(*) FILTER (WHERE t.status = 'in-progress') AS in_progress_tickets,
               COUNT(*) FILTER (WHERE t.status = 'resolved') AS resolved_tickets,
               COUNT(*) FILTER (WHERE t.status = 'closed') AS closed_tickets
        FROM users u
        LEFT JOIN tickets t ON u.id = t.user_id
        GROUP BY u.id, u.name, u.email, u.status, u.initials, u.created_at
        ORDER BY u.created_at DESC
        LIMIT $1 OFFSET $2`

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []UserWithStats
	for rows.Next() {
		var item UserWithStats
		if err := rows.Scan(
			&item.User.ID,
			&item.User.Name,
			&item.User.Email,
			&item.User.Status,
			&item.User.Initials,
			&item.User.CreatedAt,
			&item.Stats.Total,
			&item.Stats.Open,
			&item.Stats.InProgress,
			&item.Stats.Resolved,
			&item.Stats.Closed,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
