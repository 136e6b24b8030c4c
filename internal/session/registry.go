package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"ai-interview-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	// Redis channel for cross-instance delivery. Payloads carry the target
	// interview id plus the serialized frame.
	clusterChannel = "interview_session_events"
)

// Conn is the subset of *websocket.Conn the registry and orchestrator use.
// Tests substitute an in-memory implementation.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// Connection is one registered candidate socket. All writes go through the
// buffered send channel and the single writer goroutine. Queueing and
// eviction are serialized on mu so a delivery racing a disconnect drops the
// frame instead of sending on a closed channel.
type Connection struct {
	InterviewID uuid.UUID

	conn Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// evict closes the send channel, which makes the writer goroutine emit a
// close frame and shut the socket down. Idempotent.
func (c *Connection) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// enqueue hands one frame to the writer goroutine. It reports false when the
// connection is already evicted or the writer cannot keep up.
func (c *Connection) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// ReadMessage blocks on the next client frame. Only the orchestrator loop
// calls this.
func (c *Connection) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Registry maps interview ids to their single live connection. A second
// connection for the same id replaces the first and evicts it. With Redis
// configured, frames for ids held by another instance are relayed over a
// pub/sub channel; without it, delivery is instance-local.
type Registry struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*Connection

	rdb    *redis.Client
	logger logger.ILogger
}

func NewRegistry(rdb *redis.Client, log logger.ILogger) *Registry {
	return &Registry{
		connections: make(map[uuid.UUID]*Connection),
		rdb:         rdb,
		logger:      log,
	}
}

// Run starts the cross-instance subscriber when Redis is configured. It is
// safe to skip entirely in single-instance deployments.
func (r *Registry) Run(ctx context.Context) {
	if r.rdb != nil {
		go r.subscribeToRedis(ctx)
	}
}

// Register binds the socket to the interview id and starts its writer.
// Any prior connection for the same id is evicted first.
func (r *Registry) Register(interviewID uuid.UUID, ws Conn) *Connection {
	conn := &Connection{
		InterviewID: interviewID,
		conn:        ws,
		send:        make(chan []byte, 32),
	}

	r.mu.Lock()
	prior := r.connections[interviewID]
	r.connections[interviewID] = conn
	r.mu.Unlock()

	if prior != nil {
		prior.evict()
		r.logger.Info("SessionRegistry", "Replaced existing connection", map[string]interface{}{
			"interview_id": interviewID,
		})
	}

	ws.SetReadLimit(maxMessageSize)
	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go conn.writePump()

	r.logger.Info("SessionRegistry", "Client registered", map[string]interface{}{
		"interview_id": interviewID,
	})
	return conn
}

// Unregister removes the binding and closes the socket, but only while the
// given connection is still the current one. An evicted connection must not
// tear down its replacement.
func (r *Registry) Unregister(conn *Connection) {
	r.mu.Lock()
	if r.connections[conn.InterviewID] == conn {
		delete(r.connections, conn.InterviewID)
	}
	r.mu.Unlock()

	conn.evict()
	r.logger.Info("SessionRegistry", "Client unregistered", map[string]interface{}{
		"interview_id": conn.InterviewID,
	})
}

// Deliver sends one frame to whatever connection is currently bound to the
// id. When the id is not held locally the frame is relayed over Redis; with
// no Redis and no local connection it is dropped.
func (r *Registry) Deliver(interviewID uuid.UUID, event Outbound) {
	data, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("SessionRegistry", "Failed to serialize frame", map[string]interface{}{
			"interview_id": interviewID,
			"error":        err.Error(),
		})
		return
	}

	if r.deliverLocal(interviewID, data) {
		return
	}

	if r.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"interview_id": interviewID.String(),
			"message":      json.RawMessage(data),
		})
		r.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (r *Registry) deliverLocal(interviewID uuid.UUID, data []byte) bool {
	r.mu.RLock()
	conn, ok := r.connections[interviewID]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	if !conn.enqueue(data) {
		// Writer too slow, or the connection was evicted between the lookup
		// and the send. Unregister is safe either way: it only unbinds the
		// map entry when this connection is still the current one.
		r.logger.Warn("SessionRegistry", "Failed to queue frame, evicting client", map[string]interface{}{
			"interview_id": interviewID,
		})
		r.Unregister(conn)
	}
	return true
}

func (r *Registry) subscribeToRedis(ctx context.Context) {
	pubsub := r.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			InterviewID string          `json:"interview_id"`
			Message     json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			r.logger.Warn("SessionRegistry", "Malformed cluster payload", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}

		id, err := uuid.Parse(payload.InterviewID)
		if err != nil {
			continue
		}
		r.deliverLocal(id, payload.Message)
	}
}
