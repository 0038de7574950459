package ports

import (
	"context"

	"github.com/jobboard/users-api/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence.
// Record must not block request handling beyond queue capacity.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
