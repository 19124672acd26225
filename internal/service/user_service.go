package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// UserService handles end-user profile operations.
type UserService struct {
	users   repository.UserRepository
	tickets repository.TicketRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, tickets repository.TicketRepository) *UserService {
	return &UserService{users: users, tickets: tickets}
}

// ProfileUpdate carries the optional profile fields. Nil means leave
// unchanged.
type ProfileUpdate struct {
	Name  *string
	Email *string
}

// Profile returns the caller's user record together with their ticket
// counts.
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, domain.TicketStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.TicketStats{}, err
	}
	stats, err := s.tickets.StatsByOwner(ctx, userID)
	if err != nil {
		return nil, domain.TicketStats{}, err
	}
	return user, stats, nil
}

// UpdateProfile applies name and/or email changes. A changed name
// recomputes initials; a changed email must not belong to another user.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
		user.Initials = initialsFor(user.Name)
	}
	if update.Email != nil {
		existing, err := s.users.GetByEmail(ctx, *update.Email)
		if err == nil && existing.ID != userID {
			return nil, apperrors.NewDuplicateEntry("")
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		user.Email = *update.Email
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateEntry("")
		}
		return nil, err
	}
	return user, nil
}
