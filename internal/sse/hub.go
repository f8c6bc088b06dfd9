package sse

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream. IDs are increasing decimal sequence
// numbers so a reconnecting client can resume with Last-Event-ID.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`

	seq uint64
}

// Client is a connected stream consumer
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means every type

	resumeAfter uint64
	resume      bool
}

func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// Hub fans round and settlement events out to stream clients and keeps a
// short history for resumption
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Event
	unregister chan string
	mu         sync.RWMutex
	stopped    bool // set under mu by Stop; Register refuses clients after

	history []Event // ring of the last HistorySize events, oldest first
	seq     atomic.Uint64

	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a hub. Call Start before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start runs the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		h.stopped = true
		for _, client := range h.clients {
			close(client.EventChannel)
		}
		h.clients = make(map[string]*Client)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case clientID := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[clientID]; ok {
				close(client.EventChannel)
				delete(h.clients, clientID)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			h.remember(event)
			for _, client := range h.clients {
				if client.wants(event.Type) {
					deliver(client, event)
				}
			}
			h.mu.Unlock()

		case <-h.shutdown:
			return
		}
	}
}

// deliver never blocks; a client with a full buffer misses the event
func deliver(client *Client, event Event) {
	select {
	case client.EventChannel <- event:
	default:
	}
}

// remember appends to the history ring. Caller holds mu.
func (h *Hub) remember(event Event) {
	if len(h.history) == HistorySize {
		copy(h.history, h.history[1:])
		h.history = h.history[:HistorySize-1]
	}
	h.history = append(h.history, event)
}

// replay queues remembered events newer than the client's resume point.
// Caller holds mu.
func (h *Hub) replay(client *Client) {
	for _, event := range h.history {
		if event.seq > client.resumeAfter && client.wants(event.Type) {
			deliver(client, event)
		}
	}
}

// Register adds a client. A non-empty lastEventID replays remembered events
// after that ID. It returns nil once the hub is stopped.
func (h *Hub) Register(eventTypes []string, lastEventID string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(lastEventID), 10, 64); err == nil {
		client.resumeAfter = id
		client.resume = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return nil
	}
	h.clients[client.ID] = client
	if client.resume {
		h.replay(client)
	}
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. It reports false
// when the broadcast buffer is full and the event was dropped.
func (h *Hub) Broadcast(eventType string, payload interface{}) bool {
	seq := h.seq.Add(1)
	event := Event{
		ID:        strconv.FormatUint(seq, 10),
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
		seq:       seq,
	}

	select {
	case h.broadcast <- event:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders event in text/event-stream framing. Events
// without an ID, such as keepalives, omit the id line so they do not move
// the client's resume point.
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if event.ID != "" {
		b.WriteString("id: " + event.ID + "\n")
	}
	b.WriteString("event: " + event.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
