package auth

import "github.com/spec-kit/invenpulse/internal/domain"

// Authorize decides whether an identity may access an endpoint requiring one
// of the given roles. An empty requirement means any authenticated identity.
// There is no role hierarchy: ADMIN satisfies a USER-only requirement only if
// the endpoint lists both roles.
func Authorize(identity VerifiedIdentity, required ...domain.Role) AccessDecision {
	if len(required) == 0 {
		return AccessDecision{Allow: true, Reason: ReasonOK}
	}
	for _, role := range required {
		if identity.Role == role {
			return AccessDecision{Allow: true, Reason: ReasonOK}
		}
	}
	return AccessDecision{Allow: false, Reason: ReasonInsufficientRole}
}
