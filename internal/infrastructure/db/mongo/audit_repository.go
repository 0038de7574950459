package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobboard/users-api/internal/core/domain"
)

const auditCollection = "audit_events"

// MongoAuditRepository persists audit events append-only.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	UserID     int    `bson:"user_id"`
	ActorID    int    `bson:"actor_id,omitempty"`
	Action     string `bson:"action"`
	Email      string `bson:"email,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := mongoAuditEvent{
		UserID:     event.UserID,
		ActorID:    event.ActorID,
		Action:     event.Action,
		Email:      event.Email,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
