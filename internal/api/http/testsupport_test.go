package http

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

const testSecret = "test-secret"

// In-memory repositories backing the HTTP tests. Absence is reported
// as pgx.ErrNoRows, matching the Postgres implementations.

type memUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name, stored.Email, stored.Initials = user.Name, user.Email, user.Initials
	return nil
}

func (r *memUserRepo) UpdateStatus(_ context.Context, id int64, status domain.UserStatus) (*domain.User, error) {
	stored, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	stored.Status = status
	cp := *stored
	return &cp, nil
}

func (r *memUserRepo) ListWithTicketStats(_ context.Context, _, _ int) ([]repository.UserWithStats, error) {
	var result []repository.UserWithStats
	for _, u := range r.users {
		result = append(result, repository.UserWithStats{User: *u})
	}
	return result, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memAdminRepo struct {
	admins map[int64]*domain.Admin
}

func (r *memAdminRepo) GetByID(_ context.Context, id int64) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memAdminRepo) TouchLastLogin(_ context.Context, id int64) error {
	if _, ok := r.admins[id]; !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	r.admins[id].LastLogin = &now
	return nil
}

type memTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = r.nextID
	r.nextID++
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *memTicketRepo) ListByOwner(_ context.Context, userID int64, _ repository.OwnerTicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, t := range r.tickets {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (r *memTicketRepo) GetByIDForOwner(_ context.Context, id, userID int64) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok || t.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (r *memTicketRepo) UpdateForOwner(_ context.Context, id, userID int64, update repository.OwnerUpdate) (*domain.Ticket, error) {
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
	cp := *t
	return &cp, nil
}

func (r *memTicketRepo) DeleteForOwner(_ context.Context, id, userID int64) error {
	t, ok := r.tickets[id]
	if !ok || t.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *memTicketRepo) StatsByOwner(_ context.Context, userID int64) (domain.TicketStats, error) {
	var stats domain.TicketStats
	for _, t := range r.tickets {
		if t.UserID == userID {
			stats.Total++
		}
	}
	return stats, nil
}

func (r *memTicketRepo) ListAll(_ context.Context, _ repository.AdminTicketFilter) ([]repository.TicketWithUser, int64, error) {
	var result []repository.TicketWithUser
	for _, t := range r.tickets {
		result = append(result, repository.TicketWithUser{Ticket: *t})
	}
	return result, int64(len(result)), nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id int64) (*repository.TicketWithUser, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &repository.TicketWithUser{Ticket: *t}, nil
}

func (r *memTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	t.Status = status
	cp := *t
	return &cp, nil
}

func (r *memTicketRepo) DashboardStats(_ context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	stats.Tickets.Total = int64(len(r.tickets))
	return stats, nil
}

type memChatRepo struct {
	messages []domain.ChatMessage
	nextID   int64
}

func (r *memChatRepo) Insert(_ context.Context, msg *domain.ChatMessage) error {
	r.nextID++
	msg.ID = r.nextID
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *memChatRepo) ListByOwner(_ context.Context, userID int64) ([]domain.ChatMessage, error) {
	var result []domain.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *memChatRepo) ListByOwnerSince(_ context.Context, userID int64, since time.Time) ([]domain.ChatMessage, error) {
	var result []domain.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID && m.CreatedAt.After(since) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *memChatRepo) DeleteByOwner(_ context.Context, userID int64) (int64, error) {
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

func (r *memChatRepo) ListThreads(_ context.Context) ([]domain.ChatThread, error) {
	return nil, nil
}

func (r *memChatRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	return r.ListByOwner(ctx, userID)
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

// testEnv wires a full application over in-memory repositories.
type testEnv struct {
	app     *fiber.App
	auth    *service.AuthService
	users   *memUserRepo
	tickets *memTicketRepo
	chats   *memChatRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     testSecret,
			TokenTTLHours: 1,
			BcryptCost:    bcrypt.MinCost,
		},
	}

	users := &memUserRepo{users: map[int64]*domain.User{}, nextID: 1}
	admins := &memAdminRepo{admins: map[int64]*domain.Admin{}}
	tickets := &memTicketRepo{tickets: map[int64]*domain.Ticket{}, nextID: 1}
	chats := &memChatRepo{}

	hash, err := auth.HashPassword("admin-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admins.admins[1] = &domain.Admin{ID: 1, Email: "admin@example.com", PasswordHash: hash, Name: "Admin"}

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, AdminRepo: admins})
	userService := service.NewUserService(users, tickets)
	ticketService := service.NewTicketService(tickets)
	chatService := service.NewChatService(chats, users)
	adminService := service.NewAdminService(users, tickets, nil, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:  zap.NewNop(),
		Metrics: observability.NewMetrics(),
	})

	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(stubPinger{}),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Chat:           handlers.NewChatHandler(chatService),
		Admin:          handlers.NewAdminHandler(adminService, ticketService, chatService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
		RateLimiter:    NewRateLimiter(nil, time.Minute, zap.NewNop()),
		RateLimit:      config.RateLimitConfig{MaxRequests: 100, AuthMaxRequests: 10},
	})

	return &testEnv{app: app, auth: authService, users: users, tickets: tickets, chats: chats}
}

// signupUser registers a user through the service and returns the
// record with a valid token.
func (e *testEnv) signupUser(t *testing.T, name, email string) (*domain.User, string) {
	t.Helper()
	user, token, _, err := e.auth.Signup(context.Background(), name, email, "password123")
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return user, token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	_, token, _, err := e.auth.AdminLogin(context.Background(), "admin@example.com", "admin-pass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	return token
}
