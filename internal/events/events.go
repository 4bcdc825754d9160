// Package events announces ledger changes to other systems. Events are
// notifications only: balances are always recomputed from storage.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Type names a ledger change. It doubles as the AMQP routing key.
type Type string

const (
	GroupCreated      Type = "group.created"
	GroupDeleted      Type = "group.deleted"
	GroupMemberJoined Type = "group.member_joined"
	ExpenseCreated    Type = "expense.created"
	ExpenseDeleted    Type = "expense.deleted"
	PaymentCreated    Type = "payment.created"
	PaymentDeleted    Type = "payment.deleted"
)

// Event is the JSON body of a published message.
type Event struct {
	Type       Type   `json:"type"`
	GroupID    string `json:"group_id"`
	EntityID   string `json:"entity_id,omitempty"`
	ActorID    string `json:"actor_id"`
	OccurredAt int64  `json:"occurred_at"`
}

// New stamps an event with the current time.
func New(t Type, groupID, entityID, actorID string) Event {
	return Event{
		Type:       t,
		GroupID:    groupID,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().Unix(),
	}
}

func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}

// Emit publishes event and logs a failure instead of returning it, so a
// broker outage never fails the write that caused the event.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish event",
			"type", event.Type,
			"group_id", event.GroupID,
			"entity_id", event.EntityID,
			"error", err,
		)
	}
}
