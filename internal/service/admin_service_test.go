package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestDashboardStatsWithoutCache(t *testing.T) {
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo()
	svc := NewAdminService(users, tickets, nil, zap.NewNop())
	ctx := context.Background()

	ticketSvc := NewTicketService(tickets)
	identity := domain.Identity{ID: 1, Email: "u@example.com", Role: domain.RoleUser}
	for i := 0; i < 2; i++ {
		if _, err := ticketSvc.Create(ctx, identity, TicketCreateInput{Subject: "t", Category: domain.TicketCategoryBug, Priority: domain.TicketPriorityHigh}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	stats, err := svc.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.Tickets.Total != 2 || stats.Tickets.Open != 2 {
		t.Fatalf("stats = %+v, want 2 open tickets", stats.Tickets)
	}
}

func TestUpdateUserStatus(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAdminService(users, newFakeTicketRepo(), nil, zap.NewNop())
	user := seedUser(t, users, "Jane Doe", "jane@example.com")

	updated, err := svc.UpdateUserStatus(context.Background(), user.ID, domain.UserStatusInactive)
	if err != nil {
		t.Fatalf("UpdateUserStatus: %v", err)
	}
	if updated.Status != domain.UserStatusInactive {
		t.Errorf("status = %q, want inactive", updated.Status)
	}

	if _, err := svc.UpdateUserStatus(context.Background(), 999, domain.UserStatusActive); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("missing user: err = %v, want ErrNoRows", err)
	}
}

func TestListUsersReturnsTotal(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAdminService(users, newFakeTicketRepo(), nil, zap.NewNop())
	seedUser(t, users, "Jane Doe", "jane@example.com")
	seedUser(t, users, "Bob Roe", "bob@example.com")

	list, total, err := svc.ListUsers(context.Background(), 20, 0)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("total = %d, len = %d, want 2 and 2", total, len(list))
	}
}
