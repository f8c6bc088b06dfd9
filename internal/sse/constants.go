package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for the unregister channel
	ClientChannelBuffer = 10

	// HistorySize is how many recent events a reconnecting client can resume from
	HistorySize = 200
)

// Resume sources
const (
	HeaderLastEventID   = "Last-Event-ID"
	QueryParamLastEvent = "last_event_id"
	QueryParamTypes     = "types"
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second

	// WriteTimeout is the timeout for writing to client connections
	WriteTimeout = 10 * time.Second
)

// Event types for SSE
const (
	// EventTypeRoundOpened is sent when a group round starts accepting wagers
	EventTypeRoundOpened = "group_round.opened"

	// EventTypeRoundCompleted is sent when a group round is settled and its seeds revealed
	EventTypeRoundCompleted = "group_round.completed"

	// EventTypeWagerSettled is sent for every wager that reaches won or lost
	EventTypeWagerSettled = "wager.settled"

	// EventTypeChainExtended is sent when a new hash chain commitment is published
	EventTypeChainExtended = "hashchain.extended"

	// EventTypeConnected is the first event a client receives
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE broadcast buffer full, event dropped"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgInvalidPayload     = "Invalid event payload for SSE"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
	LogMsgClientResumed      = "SSE client resuming after event"
)
