package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/invenpulse/internal/domain"
	"github.com/spec-kit/invenpulse/internal/events"
	"github.com/spec-kit/invenpulse/internal/observability"
	apperrors "github.com/spec-kit/invenpulse/pkg/util"
)

const identityKey = "auth_identity"

// Gate is the single enforcement point for protected routes. It validates the
// bearer token, checks roles, and attaches the identity to the request scope.
// Validation is stateless: the claims are authoritative and no store lookup
// happens on the request path.
type Gate struct {
	tokens     *TokenManager
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// NewGate constructs the request gate.
func NewGate(tokens *TokenManager, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) *Gate {
	return &Gate{tokens: tokens, logger: logger, metrics: metrics, dispatcher: dispatcher}
}

// Require returns a handler enforcing that the caller is authenticated and
// holds one of the given roles. With no roles, any authenticated identity
// passes. On deny the protected handler is never invoked.
func (g *Gate) Require(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			g.metrics.RecordAuthOutcome(string(ReasonNoToken))
			return apperrors.NewNoToken()
		}

		identity, err := g.tokens.Parse(token)
		if err != nil {
			switch err {
			case ErrTokenExpired:
				g.metrics.RecordAuthOutcome(string(ReasonTokenExpired))
				g.logger.Debug("expired token rejected", zap.String("path", c.Path()))
				g.publishRejected(c, ReasonTokenExpired)
				return apperrors.NewTokenExpired()
			default:
				// Signature or structure failure: tampering or corrupted
				// transport, not a routine condition.
				g.metrics.RecordAuthOutcome(string(ReasonTokenMalformed))
				g.logger.Warn("malformed token rejected",
					zap.String("path", c.Path()),
					zap.String("ip", c.IP()))
				g.publishRejected(c, ReasonTokenMalformed)
				return apperrors.NewTokenMalformed()
			}
		}

		decision := Authorize(*identity, roles...)
		if !decision.Allow {
			g.metrics.RecordAuthOutcome(string(decision.Reason))
			return apperrors.NewInsufficientRole()
		}

		g.metrics.RecordAuthOutcome(string(ReasonOK))
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func (g *Gate) publishRejected(c *fiber.Ctx, reason DecisionReason) {
	if g.dispatcher == nil {
		return
	}
	_ = g.dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTokenRejected,
		Timestamp: time.Now(),
		Payload: events.TokenRejectedPayload{
			Reason: string(reason),
			Path:   c.Path(),
		},
	})
}

// IdentityFromContext retrieves the authenticated identity set by the gate.
func IdentityFromContext(c *fiber.Ctx) (*VerifiedIdentity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*VerifiedIdentity)
	return identity, ok
}

// bearerToken extracts the token from an Authorization header value. The
// scheme match is case-insensitive; a missing or non-Bearer header counts as
// no token at all, so no decode is attempted.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	if strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return parts[1], true
}
