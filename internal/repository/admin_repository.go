package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AdminRepository defines persistence access for administrators.
type AdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	const query = `
        SELECT id, email, password_hash, name, last_login, created_at
        FROM admin_users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
        SELECT id, email, password_hash, name, last_login, created_at
        FROM admin_users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *adminRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.LastLogin,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) TouchLastLogin(ctx context.Context, id int64) error {
	const query = `UPDATE admin_users SET last_login=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
