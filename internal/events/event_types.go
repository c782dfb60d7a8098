package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventTokenRejected  EventType = "token_rejected"
	EventRoleChanged    EventType = "role_changed"
	EventSaleRecorded   EventType = "sale_recorded"
)

// Event represents a domain event emitted by services. Subject carries the
// login key involved; plaintext secrets never appear in payloads.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// TokenRejectedPayload payload. Reason distinguishes routine expiry from
// malformation, which indicates tampering or corrupted transport.
type TokenRejectedPayload struct {
	Reason string `json:"reason"`
	Path   string `json:"path"`
}

// RoleChangedPayload payload.
type RoleChangedPayload struct {
	OldRole string `json:"old_role"`
	NewRole string `json:"new_role"`
	ActorID string `json:"actor_id"`
}

// SaleRecordedPayload payload.
type SaleRecordedPayload struct {
	SaleID    string  `json:"sale_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}
