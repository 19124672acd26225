package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// In-memory repository fakes. They mirror the Postgres behavior the
// services depend on: pgx.ErrNoRows for absent rows and a unique
// violation PgError on duplicate emails.

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.Initials = user.Initials
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	cp := *stored
	return &cp, nil
}

func (r *fakeUserRepo) ListWithTicketStats(_ context.Context, _, _ int) ([]repository.UserWithStats, error) {
	var result []repository.UserWithStats
	for _, u := range r.users {
		result = append(result, repository.UserWithStats{User: *u})
	}
	return result, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeAdminRepo struct {
	admins      map[int64]*domain.Admin
	lastLoginID int64
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[int64]*domain.Admin{}}
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id int64) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAdminRepo) TouchLastLogin(_ context.Context, id int64) error {
	a, ok := r.admins[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	a.LastLogin = &now
	r.lastLoginID = id
	return nil
}

type fakeTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[int64]*domain.Ticket{}, nextID: 1}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = r.nextID
	r.nextID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) ListByOwner(_ context.Context, userID int64, filter repository.OwnerTicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, t := range r.tickets {
		if t.UserID != userID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

func (r *fakeTicketRepo) GetByIDForOwner(_ context.Context, id, userID int64) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok || t.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTicketRepo) UpdateForOwner(_ context.Context, id, userID int64, update repository.OwnerUpdate) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok || t.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Phone != nil {
		t.Phone = *update.Phone
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *fakeTicketRepo) DeleteForOwner(_ context.Context, id, userID int64) error {
	t, ok := r.tickets[id]
	if !ok || t.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) StatsByOwner(_ context.Context, userID int64) (domain.TicketStats, error) {
	var stats domain.TicketStats
	for _, t := range r.tickets {
		if t.UserID != userID {
			continue
		}
		stats.Total++
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Open++
		case domain.TicketStatusInProgress:
			stats.InProgress++
		case domain.TicketStatusResolved:
			stats.Resolved++
		case domain.TicketStatusClosed:
			stats.Closed++
		}
	}
	return stats, nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context, filter repository.AdminTicketFilter) ([]repository.TicketWithUser, int64, error) {
	var result []repository.TicketWithUser
	for _, t := range r.tickets {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		result = append(result, repository.TicketWithUser{Ticket: *t})
	}
	return result, int64(len(result)), nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id int64) (*repository.TicketWithUser, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &repository.TicketWithUser{Ticket: *t}, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (r *fakeTicketRepo) DashboardStats(_ context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	for _, t := range r.tickets {
		stats.Tickets.Total++
		switch t.Status {
		case domain.TicketStatusOpen:
			stats.Tickets.Open++
		case domain.TicketStatusInProgress:
			stats.Tickets.InProgress++
		case domain.TicketStatusResolved:
			stats.Tickets.Resolved++
		case domain.TicketStatusClosed:
			stats.Tickets.Closed++
		}
	}
	return stats, nil
}

type fakeChatRepo struct {
	messages []domain.ChatMessage
	nextID   int64
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1}
}

func (r *fakeChatRepo) Insert(_ context.Context, msg *domain.ChatMessage) error {
	msg.ID = r.nextID
	r.nextID++
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeChatRepo) ListByOwner(_ context.Context, userID int64) ([]domain.ChatMessage, error) {
	var result []domain.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) ListByOwnerSince(_ context.Context, userID int64, since time.Time) ([]domain.ChatMessage, error) {
	var result []domain.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID && m.CreatedAt.After(since) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) DeleteByOwner(_ context.Context, userID int64) (int64, error) {
	var kept []domain.ChatMessage
	var deleted int64
	for _, m := range r.messages {
		if m.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}

func (r *fakeChatRepo) ListThreads(_ context.Context) ([]domain.ChatThread, error) {
	byUser := map[int64]*domain.ChatThread{}
	for _, m := range r.messages {
		th, ok := byUser[m.UserID]
		if !ok {
			th = &domain.ChatThread{UserID: m.UserID}
			byUser[m.UserID] = th
		}
		th.MessageCount++
		if !m.CreatedAt.Before(th.LastMessageAt) {
			th.LastMessage = m.Message
			th.LastMessageAt = m.CreatedAt
		}
	}
	var result []domain.ChatThread
	for _, th := range byUser {
		result = append(result, *th)
	}
	return result, nil
}

func (r *fakeChatRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	return r.ListByOwner(ctx, userID)
}
