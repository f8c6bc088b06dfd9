package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestNatsForwarder_ForwardsSubscribedEvents(t *testing.T) {
	pub := &fakePublisher{}
	bus := NewMemoryBus()
	fwd := NewNatsForwarder(pub, "")
	fwd.Subscribe(bus, WagerSettled, GroupRoundCompleted)

	require.NoError(t, bus.Publish(context.Background(), Event{Type: WagerSettled, Payload: map[string]string{"id": "w1"}}))
	require.NoError(t, bus.Publish(context.Background(), Event{Type: ChainLow}))

	require.Len(t, pub.subjects, 1)
	assert.Equal(t, "provablyfair.wager.settled", pub.subjects[0])

	var evt Event
	require.NoError(t, json.Unmarshal(pub.payloads[0], &evt))
	assert.Equal(t, WagerSettled, evt.Type)
}

func TestNatsForwarder_PublishError(t *testing.T) {
	fwd := NewNatsForwarder(&fakePublisher{err: errors.New("nats down")}, "custom")

	err := fwd.Forward(context.Background(), Event{Type: WagerSettled})

	assert.ErrorContains(t, err, "nats down")
	assert.Equal(t, "custom.wager.settled", fwd.Subject(WagerSettled))
}

func TestConnectNats_Unreachable(t *testing.T) {
	_, err := ConnectNats("nats://127.0.0.1:1")
	assert.ErrorContains(t, err, "failed to connect to NATS")
}
