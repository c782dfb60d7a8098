package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/events"
	"github.com/spec-kit/invenpulse/internal/repository"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

// UserService exposes account administration. Role assignment lives here and
// only here: registration always grants USER and no self-service flow touches
// the role field.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetByID fetches one account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// SetRole assigns a role to a user on behalf of an admin actor. Outstanding
// tokens keep their issued role until expiry; that staleness window is part of
// the stateless token contract.
func (s *UserService) SetRole(ctx context.Context, userID string, role domain.Role, actorID string) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	oldRole := user.Role
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRoleChanged,
			Subject:   user.Email,
			Timestamp: time.Now(),
			Payload: events.RoleChangedPayload{
				OldRole: string(oldRole),
				NewRole: string(role),
				ActorID: actorID,
			},
		})
	}
	return user, nil
}
