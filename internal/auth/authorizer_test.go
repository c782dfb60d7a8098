package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/invenpulse/internal/domain"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	user := VerifiedIdentity{UserID: "u-1", Email: "u@x.com", Role: domain.RoleUser}
	admin := VerifiedIdentity{UserID: "a-1", Email: "a@x.com", Role: domain.RoleAdmin}

	tests := []struct {
		name     string
		identity VerifiedIdentity
		required []domain.Role
		allow    bool
		reason   DecisionReason
	}{
		{"user denied admin-only", user, []domain.Role{domain.RoleAdmin}, false, ReasonInsufficientRole},
		{"admin allowed admin-only", admin, []domain.Role{domain.RoleAdmin}, true, ReasonOK},
		{"empty requirement allows any authenticated", admin, nil, true, ReasonOK},
		{"user allowed when listed", user, []domain.Role{domain.RoleUser, domain.RoleAdmin}, true, ReasonOK},
		{"no hierarchy: admin denied user-only", admin, []domain.Role{domain.RoleUser}, false, ReasonInsufficientRole},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			decision := Authorize(tt.identity, tt.required...)
			require.Equal(t, tt.allow, decision.Allow)
			require.Equal(t, tt.reason, decision.Reason)
		})
	}
}
