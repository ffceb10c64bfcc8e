package realtime

//go:generate go run go.uber.org/mock/mockgen -source=./realtime.go -destination=./mocks/realtime_mock.go -package=mocks

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"innkeep/config"
	"innkeep/infras/session"
)

// EventType mirrors the backend's change-notification kinds.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// Event is one row change pushed by the backend.
type Event struct {
	Type  EventType
	Table string
	New   json.RawMessage
	Old   json.RawMessage
}

// Handler consumes change events for one subscribed table.
type Handler func(Event)

// Realtime is the change-notification boundary. Handlers registered via
// Subscribe survive reconnects; Reconnect tears the socket down and joins
// again with the current session credential.
type Realtime interface {
	Subscribe(table string, handler Handler)
	Connect() error
	Reconnect()
	Close()
}

const socketPath = "/realtime/v1/websocket"

type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type changePayload struct {
	Data struct {
		Type      string          `json:"type"`
		Table     string          `json:"table"`
		Record    json.RawMessage `json:"record"`
		OldRecord json.RawMessage `json:"old_record"`
	} `json:"data"`
}

type clientImpl struct {
	socketURL string
	apiKey    string
	sessions  *session.Store
	heartbeat time.Duration

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string][]Handler
	refSeq   int
	closed   bool
}

func New(cfg *config.Config, sessions *session.Store) Realtime {
	socketURL := strings.TrimRight(cfg.Backend.URL, "/") + socketPath
	socketURL = strings.Replace(socketURL, "https://", "wss://", 1)
	socketURL = strings.Replace(socketURL, "http://", "ws://", 1)

	heartbeat := time.Duration(cfg.Backend.Realtime.HeartbeatSeconds) * time.Second
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}

	return &clientImpl{
		socketURL: socketURL + "?apikey=" + cfg.Backend.APIKey + "&vsn=1.0.0",
		apiKey:    cfg.Backend.APIKey,
		sessions:  sessions,
		heartbeat: heartbeat,
		handlers:  map[string][]Handler{},
	}
}

// Subscribe registers a handler for one table's change stream. The join
// message is sent immediately when a socket is up, otherwise on the next
// Connect.
func (c *clientImpl) Subscribe(table string, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handlers[table] = append(c.handlers[table], handler)

	if c.conn != nil {
		if err := c.join(table); err != nil {
			log.Error().Err(err).Str("table", table).Msg("failed to join realtime channel")
		}
	}
}

func (c *clientImpl) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil || c.closed {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.socketURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial realtime socket: %w", err)
	}

	c.conn = conn

	for table := range c.handlers {
		if err := c.join(table); err != nil {
			log.Error().Err(err).Str("table", table).Msg("failed to join realtime channel")
		}
	}

	go c.readLoop(conn)
	go c.heartbeatLoop(conn)

	log.Info().Str("url", c.socketURL).Msg("realtime socket connected")

	return nil
}

// Reconnect drops the socket and dials again, re-joining every channel
// with the current session token. Called on every auth transition so the
// subscription carries the fresh credential.
func (c *clientImpl) Reconnect() {
	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	if err := c.Connect(); err != nil {
		log.Error().Err(err).Msg("realtime reconnect failed")
	}
}

func (c *clientImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// join must be called with c.mu held and c.conn non-nil.
func (c *clientImpl) join(table string) error {
	c.refSeq++

	payload := map[string]any{
		"config": map[string]any{
			"postgres_changes": []map[string]any{
				{"event": "*", "schema": "public", "table": table},
			},
		},
		"access_token": c.sessions.Token(),
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode join payload: %w", err)
	}

	msg := phoenixMessage{
		Topic:   "realtime:public:" + table,
		Event:   "phx_join",
		Payload: encoded,
		Ref:     strconv.Itoa(c.refSeq),
	}

	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send join message: %w", err)
	}

	return nil
}

func (c *clientImpl) heartbeatLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()

		if c.conn != conn {
			c.mu.Unlock()

			return
		}

		c.refSeq++
		msg := phoenixMessage{
			Topic:   "phoenix",
			Event:   "heartbeat",
			Payload: json.RawMessage(`{}`),
			Ref:     strconv.Itoa(c.refSeq),
		}

		err := conn.WriteJSON(msg)
		c.mu.Unlock()

		if err != nil {
			log.Warn().Err(err).Msg("realtime heartbeat failed")

			return
		}
	}
}

func (c *clientImpl) readLoop(conn *websocket.Conn) {
	for {
		var msg phoenixMessage
		if err := conn.ReadJSON(&msg); err != nil {
			c.handleDisconnect(conn, err)

			return
		}

		if msg.Event != "postgres_changes" {
			continue
		}

		var change changePayload
		if err := json.Unmarshal(msg.Payload, &change); err != nil {
			log.Warn().Err(err).Msg("failed to decode realtime change payload")

			continue
		}

		event := Event{
			Type:  EventType(change.Data.Type),
			Table: change.Data.Table,
			New:   change.Data.Record,
			Old:   change.Data.OldRecord,
		}

		c.dispatch(event)
	}
}

func (c *clientImpl) dispatch(event Event) {
	c.mu.Lock()
	handlers := make([]Handler, len(c.handlers[event.Table]))
	copy(handlers, c.handlers[event.Table])
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (c *clientImpl) handleDisconnect(conn *websocket.Conn, err error) {
	c.mu.Lock()
	stale := c.conn != conn
	closed := c.closed

	if !stale {
		c.conn = nil
	}
	c.mu.Unlock()

	if stale || closed {
		return
	}

	log.Warn().Err(err).Msg("realtime socket dropped, redialing")

	time.Sleep(5 * time.Second)

	if err := c.Connect(); err != nil {
		log.Error().Err(err).Msg("realtime redial failed")
	}
}
