package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/invenpulse/internal/domain"
)

// TokenManager issues and validates signed JWT tokens. The signing key is set
// once at construction and never rotated at runtime.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. An empty secret is a misconfiguration
// and returns an error rather than a manager that signs with a zero key.
func NewTokenManager(secret string, ttlMinutes int) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}, nil
}

// Claims describes the JWT payload. Timestamps are absolute so issuance and
// verification can happen on different processes.
type Claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token asserting the verified identity. Claims are
// frozen at issuance; later role changes do not affect outstanding tokens.
func (tm *TokenManager) Issue(identity VerifiedIdentity) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates a token string and reconstructs the identity purely from its
// claims; no store lookup happens here. Expired and malformed tokens are
// reported as distinct errors: expiry is routine, malformation means tampering
// or corruption.
func (tm *TokenManager) Parse(tokenStr string) (*VerifiedIdentity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if !claims.Role.Valid() {
		return nil, ErrTokenMalformed
	}

	return &VerifiedIdentity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// TTL exposes the configured token lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
