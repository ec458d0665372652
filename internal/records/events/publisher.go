// Package events publishes best-effort record change notifications.
// Publishing failures are logged and swallowed; the save that triggered them
// has already committed and must not fail because the broker is down.
package events

import (
	"context"

	"github.com/riskintel/riskintel-backend/pkg/logger"
	"github.com/riskintel/riskintel-backend/pkg/messaging"
)

// Exchange and routing keys for record change notifications
const (
	ExchangeRecordEvents = "riskintel.records"

	EventRecordCreated = "record.created"
	EventRecordUpdated = "record.updated"
	EventRecordDeleted = "record.deleted"
)

// RecordEvent is the payload for every record change notification
type RecordEvent struct {
	RecordType string `json:"record_type"` // company, sector, risk, assessment
	RecordID   string `json:"record_id"`
	OwnerID    string `json:"owner_id"`
}

// Backend is the transport record notifications go out over. Production
// uses the RabbitMQ publisher; tests substitute an in-memory recorder.
type Backend interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// RecordEventPublisher publishes record change notifications. A nil
// publisher is valid and publishes nothing, so the broker stays optional.
type RecordEventPublisher struct {
	publisher Backend
	logger    *logger.Logger
}

// NewRecordEventPublisher creates a publisher bound to the record exchange
func NewRecordEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*RecordEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, ExchangeRecordEvents, "riskintel-server", log)
	if err != nil {
		return nil, err
	}

	return &RecordEventPublisher{
		publisher: publisher,
		logger:    log,
	}, nil
}

// NewRecordEventPublisherWith wires the publisher to an existing backend
func NewRecordEventPublisherWith(backend Backend, log *logger.Logger) *RecordEventPublisher {
	return &RecordEventPublisher{
		publisher: backend,
		logger:    log,
	}
}

// PublishCreated publishes a record created notification
func (p *RecordEventPublisher) PublishCreated(ctx context.Context, recordType, recordID, ownerID string) {
	p.publish(ctx, EventRecordCreated, recordType, recordID, ownerID)
}

// PublishUpdated publishes a record updated notification
func (p *RecordEventPublisher) PublishUpdated(ctx context.Context, recordType, recordID, ownerID string) {
	p.publish(ctx, EventRecordUpdated, recordType, recordID, ownerID)
}

// PublishDeleted publishes a record deleted notification
func (p *RecordEventPublisher) PublishDeleted(ctx context.Context, recordType, recordID, ownerID string) {
	p.publish(ctx, EventRecordDeleted, recordType, recordID, ownerID)
}

func (p *RecordEventPublisher) publish(ctx context.Context, eventType, recordType, recordID, ownerID string) {
	if p == nil || p.publisher == nil {
		return
	}

	data := RecordEvent{
		RecordType: recordType,
		RecordID:   recordID,
		OwnerID:    ownerID,
	}

	if err := p.publisher.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).
			Str("record_type", recordType).
			Str("record_id", recordID).
			Msg("failed to publish record event")
	}
}
