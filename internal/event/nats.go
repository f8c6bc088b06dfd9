package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/osse101/ProvablyFair_Go/internal/logger"
)

// Publisher is the part of *nats.Conn the forwarder needs
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NatsForwarder republishes bus events on NATS so external collaborators
// (ledgers, affiliate bookkeeping) can follow settlements without polling.
type NatsForwarder struct {
	pub    Publisher
	prefix string
}

// NewNatsForwarder creates a forwarder that publishes on <prefix>.<event type>
func NewNatsForwarder(pub Publisher, prefix string) *NatsForwarder {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NatsForwarder{pub: pub, prefix: prefix}
}

// ConnectNats dials the NATS server at url
func ConnectNats(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url, nats.Name(DefaultSubjectPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return conn, nil
}

// Subject returns the subject an event type is published on
func (f *NatsForwarder) Subject(t Type) string {
	return f.prefix + "." + string(t)
}

// Subscribe forwards every listed event type from bus
func (f *NatsForwarder) Subscribe(bus Bus, types ...Type) {
	for _, t := range types {
		bus.Subscribe(t, f.Forward)
	}
}

// Forward encodes evt as JSON and publishes it
func (f *NatsForwarder) Forward(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if err := f.pub.Publish(f.Subject(evt.Type), data); err != nil {
		logger.FromContext(ctx).Warn(LogMsgForwardFailed, "event_type", evt.Type, "error", err)
		return err
	}
	return nil
}
