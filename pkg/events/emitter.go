// Package events emits entity lifecycle changes produced by an import run.
// Emission is best effort: a publish failure is logged and swallowed so an
// unreachable broker never aborts an import.
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/kafka"
)

// Entity types carried on change events.
const (
	EntityOrganization = "organization"
	EntityLocation     = "location"
	EntityService      = "service"
)

// Actions carried on change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Emitter publishes change events through a Kafka producer. A nil Emitter is
// valid and emits nothing, so callers never need to branch on whether event
// emission is configured.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EntityChanged publishes one change event.
func (e *Emitter) EntityChanged(ctx context.Context, entityType, entityID, action string) {
	if e == nil || e.producer == nil {
		return
	}

	event := &kafka.ChangeEvent{
		Action:     action,
		EntityID:   entityID,
		EntityType: entityType,
	}
	if err := e.producer.PublishChangeEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"entity_id":   entityID,
			"entity_type": entityType,
			"action":      action,
		}).Warn("Failed to emit change event")
	}
}
