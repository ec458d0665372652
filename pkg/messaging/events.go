package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope published for every record change notification
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Source     string          `json:"source"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent creates an event envelope around the given payload
func NewEvent(eventType, source string, data interface{}) (*Event, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Source:     source,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}, nil
}
