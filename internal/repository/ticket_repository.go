package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// OwnerTicketFilter captures an end-user's listing filters. The owner
// constraint itself is not part of the filter; it is always applied.
type OwnerTicketFilter struct {
	Status   *domain.TicketStatus
	Category *domain.TicketCategory
	Priority *domain.TicketPriority
}

// AdminTicketFilter captures admin search parameters over the full
// record set.
type AdminTicketFilter struct {
	Status     *domain.TicketStatus
	Category   *domain.TicketCategory
	Priority   *domain.TicketPriority
	SearchTerm *string
	Limit      int
	Offset     int
}

// TicketWithUser joins a ticket to its owner's display fields for
// admin views.
type TicketWithUser struct {
	Ticket    domain.Ticket
	UserName  string
	UserEmail string
}

// OwnerUpdate is the allow-list of fields an owner may change on their
// ticket. Nil means leave unchanged.
type OwnerUpdate struct {
	Description *string
	Phone       *string
}

// TicketRepository encapsulates ticket persistence. Owner-scoped
// methods carry the caller's user id in every WHERE clause so a
// non-owner's access is indistinguishable from row absence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	ListByOwner(ctx context.Context, userID int64, filter OwnerTicketFilter) ([]domain.Ticket, error)
	GetByIDForOwner(ctx context.Context, id, userID int64) (*domain.Ticket, error)
	UpdateForOwner(ctx context.Context, id, userID int64, update OwnerUpdate) (*domain.Ticket, error)
	DeleteForOwner(ctx context.Context, id, userID int64) error
	StatsByOwner(ctx context.Context, userID int64) (domain.TicketStats, error)

	ListAll(ctx context.Context, filter AdminTicketFilter) ([]TicketWithUser, int64, error)
	GetByID(ctx context.Context, id int64) (*TicketWithUser, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error)
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, user_id, subject, category, priority, status, description, email, phone, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (user_id, subject, category, priority, status, description, email, phone)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ticket.UserID,
		ticket.Subject,
		ticket.Category,
		ticket.Priority,
		ticket.Status,
		ticket.Description,
		ticket.Email,
		ticket.Phone,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) ListByOwner(ctx context.Context, userID int64, filter OwnerTicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"user_id=$1"}
	args := []any{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC`,
		ticketColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) GetByIDForOwner(ctx context.Context, id, userID int64) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1 AND user_id=$2`, ticketColumns)

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateForOwner(ctx context.Context, id, userID int64, update OwnerUpdate) (*domain.Ticket, error) {
	sets := []string{"updated_at=NOW()"}
	args := []any{}

	if update.Description != nil {
		args = append(args, *update.Description)
		sets = append(sets, fmt.Sprintf("description=$%d", len(args)))
	}
	if update.Phone != nil {
		args = append(args, *update.Phone)
		sets = append(sets, fmt.Sprintf("phone=$%d", len(args)))
	}

	args = append(args, id)
	idPos := len(args)
	args = append(args, userID)
	userPos := len(args)

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE id=$%d AND user_id=$%d RETURNING %s`,
		strings.Join(sets, ", "), idPos, userPos, ticketColumns)

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, args...).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) DeleteForOwner(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM tickets WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) StatsByOwner(ctx context.Context, userID int64) (domain.TicketStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'open'),
               COUNT(*) FILTER (WHERE status = 'in-progress'),
               COUNT(*) FILTER (WHERE status = 'resolved'),
               COUNT(*) FILTER (WHERE status = 'closed')
        FROM tickets WHERE user_id=$1`

	var stats domain.TicketStats
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&stats.Total,
		&stats.Open,
		&stats.InProgress,
		&stats.Resolved,
		&stats.Closed,
	)
	return stats, err
}

func (r *ticketRepository) ListAll(ctx context.Context, filter AdminTicketFilter) ([]TicketWithUser, int64, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("t.status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("t.category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("t.priority=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.TrimSpace(*filter.SearchTerm) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(t.subject ILIKE %s OR t.description ILIKE %s OR u.name ILIKE %s OR u.email ILIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	countQuery := fmt.Sprintf(
		`SELECT COUNT(*) FROM tickets t LEFT JOIN users u ON t.user_id = u.id WHERE %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT t.id, t.user_id, t.subject, t.category, t.priority, t.status,
               t.description, t.email, t.phone, t.created_at, t.updated_at,
               COALESCE(u.name, ''), COALESCE(u.email, '')
        FROM tickets t
        LEFT JOIN users u ON t.user_id = u.id
        WHERE %s
        ORDER BY t.created_at DESC
        LIMIT %d OFFSET %d`, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []TicketWithUser
	for rows.Next() {
		var item TicketWithUser
		fields := append(ticketFields(&item.Ticket), &item.UserName, &item.UserEmail)
		if err := rows.Scan(fields...); err != nil {
			return nil, 0, err
		}
		result = append(result, item)
	}
	return result, total, rows.Err()
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*TicketWithUser, error) {
	const query = `
        SELECT t.id, t.user_id, t.subject, t.category, t.priority, t.status,
               t.description, t.email, t.phone, t.created_at, t.updated_at,
               COALESCE(u.name, ''), COALESCE(u.email, '')
        FROM tickets t
        LEFT JOIN users u ON t.user_id = u.id
        WHERE t.id=$1`

	var item TicketWithUser
	fields := append(ticketFields(&item.Ticket), &item.UserName, &item.UserEmail)
	if err := r.pool.QueryRow(ctx, query, id).Scan(fields...); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	query := fmt.Sprintf(`
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING %s`, ticketColumns)

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'open'),
               COUNT(*) FILTER (WHERE status = 'in-progress'),
               COUNT(*) FILTER (WHERE status = 'resolved'),
               COUNT(*) FILTER (WHERE status = 'closed'),
               COUNT(*) FILTER (WHERE priority = 'low'),
               COUNT(*) FILTER (WHERE priority = 'medium'),
               COUNT(*) FILTER (WHERE priority = 'high'),
               COUNT(*) FILTER (WHERE priority = 'urgent'),
               COUNT(*) FILTER (WHERE category = 'technical'),
               COUNT(*) FILTER (WHERE category = 'billing'),
               COUNT(*) FILTER (WHERE category = 'feature'),
               COUNT(*) FILTER (WHERE category = 'bug'),
               COUNT(*) FILTER (WHERE category = 'other'),
               COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
        FROM tickets`

	var stats domain.DashboardStats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Tickets.Total,
		&stats.Tickets.Open,
		&stats.Tickets.InProgress,
		&stats.Tickets.Resolved,
		&stats.Tickets.Closed,
		&stats.Priority.Low,
		&stats.Priority.Medium,
		&stats.Priority.High,
		&stats.Priority.Urgent,
		&stats.Category.Technical,
		&stats.Category.Billing,
		&stats.Category.Feature,
		&stats.Category.Bug,
		&stats.Category.Other,
		&stats.RecentTickets,
	); err != nil {
		return domain.DashboardStats{}, err
	}

	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.Users); err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}

func ticketFields(t *domain.Ticket) []any {
	return []any{
		&t.ID,
		&t.UserID,
		&t.Subject,
		&t.Category,
		&t.Priority,
		&t.Status,
		&t.Description,
		&t.Email,
		&t.Phone,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(ticketFields(&ticket)...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
