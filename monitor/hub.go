package monitor

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/positional-audio/constant"
	"github.com/lixenwraith/positional-audio/event"
	"github.com/lixenwraith/positional-audio/mixer"
)

// Snapshot is one status frame pushed to monitor clients
type Snapshot struct {
	Tick     int64               `json:"tick"`
	Location string              `json:"location,omitempty"`
	Metrics  map[string]any      `json:"metrics"`
	Entries  []mixer.EntryStatus `json:"entries"`
}

// Notifier receives trigger actions sent by clients; mixer.Mixer satisfies it
type Notifier interface {
	Notify(ev event.Event)
}

// Config tunes the hub
type Config struct {
	Logger    *log.Logger
	Notifier  Notifier      // nil: client actions are ignored
	Interval  time.Duration // Broadcast period; 0 uses the default
	WriteWait time.Duration // Per-write deadline; 0 uses the default
}

// clientMessage is a trigger action sent by a client, e.g. {"action":"Refresh"}
type clientMessage struct {
	Action string `json:"action"`
}

// Actions clients may trigger; location changes stay with the world
var clientActions = map[event.EventType]bool{
	event.EventRefresh:            true,
	event.EventSourcesInvalidated: true,
	event.EventCuesReplaced:       true,
	event.EventStop:               true,
}

// subscriber is one websocket client
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Hub fans mixer snapshots out to websocket clients
// Publish is called from the tick goroutine; broadcasting runs on its own goroutine
type Hub struct {
	logger    *log.Logger
	notifier  Notifier
	upgrader  websocket.Upgrader
	interval  time.Duration
	writeWait time.Duration

	latest atomic.Pointer[Snapshot]
	sent   atomic.Pointer[Snapshot]

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewHub creates a hub; call Start to begin broadcasting
func NewHub(cfg Config) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = constant.MonitorBroadcastInterval
	}
	writeWait := cfg.WriteWait
	if writeWait <= 0 {
		writeWait = constant.MonitorWriteWait
	}

	return &Hub{
		logger:   logger,
		notifier: cfg.Notifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		interval:    interval,
		writeWait:   writeWait,
		subscribers: make(map[*subscriber]struct{}),
		stopCh:      make(chan struct{}),
	}
}

// Publish stores the latest snapshot; it is sent on the next broadcast
func (h *Hub) Publish(s *Snapshot) {
	h.latest.Store(s)
}

// Start launches the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.loop()
}

// Stop ends the broadcast loop and closes every client
func (h *Hub) Stop() {
	h.once.Do(func() {
		close(h.stopCh)
		h.wg.Wait()

		h.mu.Lock()
		for sub := range h.subscribers {
			sub.conn.Close()
		}
		h.subscribers = make(map[*subscriber]struct{})
		h.mu.Unlock()
	})
}

// Subscribers returns the connected client count
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// ServeHTTP upgrades the request and streams snapshots until the client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("Monitor upgrade failed: %v", err)
		return
	}

	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()

	// Current state first so clients never wait a full interval
	if s := h.latest.Load(); s != nil {
		if data, err := json.Marshal(s); err == nil {
			if err := h.write(sub, data); err != nil {
				h.disconnect(sub)
				return
			}
		}
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.disconnect(sub)
			return
		}
		h.handleMessage(payload)
	}
}

// handleMessage forwards a permitted trigger action to the notifier
func (h *Hub) handleMessage(payload []byte) {
	var msg clientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.logger.Printf("Discarding malformed monitor message: %v", err)
		return
	}
	et, ok := event.GetEventType(msg.Action)
	if !ok || !clientActions[et] {
		h.logger.Printf("Monitor ignoring action '%s'", msg.Action)
		return
	}
	if h.notifier != nil {
		h.notifier.Notify(event.Event{Type: et})
	}
}

func (h *Hub) loop() {
	defer h.wg.Done()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stopCh:
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

// broadcast sends the latest snapshot if it changed since the last send
func (h *Hub) broadcast() {
	s := h.latest.Load()
	if s == nil || s == h.sent.Load() {
		return
	}
	h.sent.Store(s)

	data, err := json.Marshal(s)
	if err != nil {
		h.logger.Printf("Failed to marshal monitor snapshot: %v", err)
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := h.write(sub, data); err != nil {
			h.disconnect(sub)
		}
	}
}

func (h *Hub) write(sub *subscriber, data []byte) error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	sub.conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	return sub.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) disconnect(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subscribers[sub]
	delete(h.subscribers, sub)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}
