package domain

import "time"

// Audit actions recorded by the service.
const (
	AuditSignIn       = "sign_in"
	AuditSignInFailed = "sign_in_failed"
	AuditUserCreated  = "user_created"
	AuditUserUpdated  = "user_updated"
	AuditUserDeleted  = "user_deleted"
)

// AuditEvent is an append-only record of a security-relevant action.
// UserID is the subject account; ActorID the authenticated principal that
// performed the action (zero when unauthenticated, e.g. a failed sign-in).
type AuditEvent struct {
	UserID     int       `json:"user_id"`
	ActorID    int       `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
