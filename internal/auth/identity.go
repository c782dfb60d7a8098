package auth

import (
	"errors"

	"github.com/spec-kit/invenpulse/internal/domain"
)

// Sentinel errors returned by the auth core. The HTTP boundary maps them to
// response codes; services branch on them with errors.Is.
var (
	// ErrInvalidCredentials covers both unknown login keys and wrong secrets,
	// so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateIdentity  = errors.New("login key already registered")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrStoreUnavailable   = errors.New("credential store unavailable")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// VerifiedIdentity is the outcome of a successful credential check or token
// decode. It is never persisted.
type VerifiedIdentity struct {
	UserID string
	Email  string
	Role   domain.Role
}

// DecisionReason explains an access decision.
type DecisionReason string

const (
	ReasonOK               DecisionReason = "ok"
	ReasonNoToken          DecisionReason = "no_token"
	ReasonTokenMalformed   DecisionReason = "token_malformed"
	ReasonTokenExpired     DecisionReason = "token_expired"
	ReasonInsufficientRole DecisionReason = "insufficient_role"
)

// AccessDecision is the result of evaluating a request against an endpoint's
// role requirements.
type AccessDecision struct {
	Allow  bool
	Reason DecisionReason
}
