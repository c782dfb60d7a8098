package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/invenpulse/internal/auth"
	"github.com/spec-kit/invenpulse/internal/config"
	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/events"
	"github.com/spec-kit/invenpulse/internal/repository"
)

type fakeUserRepo struct {
	byEmail        map[string]*domain.User
	failWith       error
	createFailWith error
	nextID         int
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.createFailWith != nil {
		return f.createFailWith
	}
	f.nextID++
	user.ID = fmt.Sprintf("u-%d", f.nextID)
	copied := *user
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, stored := range f.byEmail {
		if stored.ID == user.ID {
			*stored = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, stored := range f.byEmail {
		if stored.ID == id {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	stored, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var users []domain.User
	for _, stored := range f.byEmail {
		users = append(users, *stored)
	}
	return users, nil
}

func newTestAuthService(t *testing.T, repo repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	t.Helper()
	tokens, err := auth.NewTokenManager("service-test-secret", 60)
	require.NoError(t, err)
	return NewAuthService(config.AuthConfig{BcryptCost: 4}, AuthDependencies{
		UserRepo:   repo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
}

func TestRegister_HashesSecret(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEqual(t, "Passw0rd!", user.PasswordHash)
	require.True(t, auth.CheckPassword(user.PasswordHash, "Passw0rd!"))
}

func TestRegister_DuplicateLoginKey(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Imposter", "a@x.com", "Other1!")
	require.ErrorIs(t, err, auth.ErrDuplicateIdentity)
}

func TestRegister_UniqueViolationIsDuplicate(t *testing.T) {
	t.Parallel()

	// A concurrent registration can slip past the lookup; the constraint
	// violation on insert must still read as a duplicate, not a store outage.
	repo := newFakeUserRepo()
	repo.createFailWith = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.ErrorIs(t, err, auth.ErrDuplicateIdentity)
	require.NotErrorIs(t, err, auth.ErrStoreUnavailable)
}

func TestAuthenticate_UniformInvalidCredentials(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	_, unknownErr := svc.Authenticate(context.Background(), "nobody@x.com", "Passw0rd!")
	_, wrongErr := svc.Authenticate(context.Background(), "a@x.com", "wrong")

	require.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)
	// Same error value either way, so callers cannot enumerate accounts.
	require.Equal(t, unknownErr, wrongErr)
}

func TestAuthenticate_SuspendedAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	user.Status = domain.UserStatusSuspended
	require.NoError(t, repo.Update(context.Background(), user))

	_, err = svc.Authenticate(context.Background(), "a@x.com", "Passw0rd!")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.failWith = errors.New("connection refused")
	svc := newTestAuthService(t, repo, nil)

	_, err := svc.Authenticate(context.Background(), "a@x.com", "Passw0rd!")
	require.ErrorIs(t, err, auth.ErrStoreUnavailable)
	require.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_IssuesDecodableToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var succeeded int
	dispatcher.Subscribe(events.EventLoginSucceeded, func(context.Context, events.Event) error {
		succeeded++
		return nil
	})
	svc := newTestAuthService(t, repo, dispatcher)

	_, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	user, token, expiresAt, err := svc.Login(context.Background(), "a@x.com", "Passw0rd!")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.False(t, expiresAt.IsZero())
	require.Equal(t, 1, succeeded)

	identity, err := svc.TokenManager().Parse(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, identity.UserID)
	require.Equal(t, "a@x.com", identity.Email)
	require.Equal(t, domain.RoleUser, identity.Role)
}

// overLimitStore reports every login key as already at the attempt limit.
type overLimitStore struct{}

func (overLimitStore) Get(context.Context, string) *redis.StringCmd {
	return redis.NewStringResult("100", nil)
}

func (overLimitStore) Incr(context.Context, string) *redis.IntCmd {
	return redis.NewIntResult(101, nil)
}

func (overLimitStore) Expire(context.Context, string, time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (overLimitStore) Del(context.Context, ...string) *redis.IntCmd {
	return redis.NewIntResult(1, nil)
}

func TestLogin_ThrottledBeforeCredentialCheck(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	tokens, err := auth.NewTokenManager("service-test-secret", 60)
	require.NoError(t, err)
	svc := NewAuthService(config.AuthConfig{BcryptCost: 4}, AuthDependencies{
		UserRepo: repo,
		Tokens:   tokens,
		Throttle: auth.NewLoginThrottle(overLimitStore{}, zap.NewNop(), 10, time.Minute),
	})

	_, err = svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), "a@x.com", "Passw0rd!")
	require.ErrorIs(t, err, auth.ErrTooManyAttempts)
}

func TestLogin_FailurePublishesAuditEvent(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var failed int
	dispatcher.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
		failed++
		return nil
	})
	svc := newTestAuthService(t, repo, dispatcher)

	_, _, _, err := svc.Login(context.Background(), "nobody@x.com", "whatever")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	require.Equal(t, 1, failed)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(t, repo, nil)

	user, err := svc.Register(context.Background(), "Ada", "a@x.com", "Passw0rd!")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "NewPass1!")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "Passw0rd!", "NewPass1!"))

	_, err = svc.Authenticate(context.Background(), "a@x.com", "Passw0rd!")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	identity, err := svc.Authenticate(context.Background(), "a@x.com", "NewPass1!")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, identity.Role, "password change must not touch role")
}
