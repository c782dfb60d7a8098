package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/config"
	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/events"
	"github.com/spec-kit/invenpulse/internal/repository"
)

// AuthService coordinates registration, credential verification and token
// issuance. Verification and minting are composed only in Login so each half
// stays independently testable.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	throttle   *auth.LoginThrottle
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Throttle   *auth.LoginThrottle
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		throttle:   deps.Throttle,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account. The login key must be unused; the secret is
// hashed before persistence and the role is always USER. No token is issued
// here, login is the sole minting path.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, auth.ErrDuplicateIdentity
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeFailure(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the lookup; the loser
		// trips the unique constraint on email and is still a duplicate, not
		// a store outage.
		if isUniqueViolation(err) {
			return nil, auth.ErrDuplicateIdentity
		}
		return nil, storeFailure(err)
	}

	s.publish(ctx, events.EventUserRegistered, email, nil)
	return user, nil
}

// Authenticate verifies credentials and returns the identity. Unknown login
// keys and wrong secrets produce the identical error so the result reveals
// nothing about which accounts exist. No token is minted here.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*auth.VerifiedIdentity, error) {
	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &auth.VerifiedIdentity{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) verifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, storeFailure(err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, auth.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, auth.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a token reflecting the identity at this
// moment. Each call mints a fresh token; nothing server-side tracks it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if !s.throttle.Allow(ctx, email) {
		return nil, "", time.Time{}, auth.ErrTooManyAttempts
	}

	user, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.throttle.RecordFailure(ctx, email)
			s.publish(ctx, events.EventLoginFailed, email, events.LoginFailedPayload{Reason: "invalid_credentials"})
		}
		return nil, "", time.Time{}, err
	}

	identity := auth.VerifiedIdentity{UserID: user.ID, Email: user.Email, Role: user.Role}
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.throttle.Reset(ctx, email)
	s.publish(ctx, events.EventLoginSucceeded, email, nil)
	return user, token, expiresAt, nil
}

// ChangePassword verifies the current secret before storing the new hash. The
// role field is never touched by this flow.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.ErrInvalidCredentials
		}
		return storeFailure(err)
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return auth.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return storeFailure(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for the request gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func storeFailure(err error) error {
	return fmt.Errorf("%w: %v", auth.ErrStoreUnavailable, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
