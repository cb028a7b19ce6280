package impl_transfer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	domain_transfer "github.com/PedroCamargo-dev/cross-border-transfers-service/internal/domain/transfer"
	"github.com/sirupsen/logrus"
)

const eventSchemaVersion = 1

type eventMeta struct {
	SchemaVersion int       `json:"schema_version"`
	MessageID     string    `json:"message_id"`
	EventType     string    `json:"event_type"`
	Producer      string    `json:"producer"`
	AggregateID   string    `json:"aggregate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type eventEnvelope struct {
	Meta eventMeta                   `json:"meta"`
	Data domain_transfer.DomainEvent `json:"data"`
}

// publish sends a domain event. Failures are logged and never change the
// outcome of the run.
func (u *InitiateTransferUsecaseImpl) publish(ctx context.Context, log logrus.FieldLogger, ev domain_transfer.DomainEvent) {
	env := eventEnvelope{
		Meta: eventMeta{
			SchemaVersion: eventSchemaVersion,
			MessageID:     u.ids.NewUUID().String(),
			EventType:     ev.EventName(),
			Producer:      u.cfg.Producer,
			AggregateID:   ev.AggregateID().String(),
			OccurredAt:    ev.OccurredAt(),
		},
		Data: ev,
	}

	payload, err := json.Marshal(env)
	if err != nil {
		log.WithError(err).WithField("event_type", ev.EventName()).Error("failed to encode event")
		return
	}

	headers := map[string]string{
		"event_type":     env.Meta.EventType,
		"message_id":     env.Meta.MessageID,
		"schema_version": strconv.Itoa(eventSchemaVersion),
	}

	if err := u.publisher.Publish(ctx, u.cfg.EventsTopic, env.Meta.AggregateID, payload, headers); err != nil {
		log.WithError(err).WithField("event_type", ev.EventName()).Warn("failed to publish event")
	}
}
