package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Event is the payload published on resource lifecycle transitions
// (blood_request.accepted, ambulance_call.completed, ...).
type Event struct {
	Type       string      `json:"type"`
	ResourceID string      `json:"resource_id"`
	ActorID    string      `json:"actor_id,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
}

// NopBroker discards everything. Used when Redis is not configured and
// in tests.
type NopBroker struct{}

func (NopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NopBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	ch := make(chan []byte)
	close(ch)
	return ch, nil
}

func (NopBroker) Close() error { return nil }
