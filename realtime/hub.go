package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v5"

	"ticket-marketplace/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// Per-client outbound buffer. A client that falls this far behind
	// starts losing messages rather than slowing the pool down.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Permissive origin policy: the feed is an unauthenticated observer
	// surface served to whatever frontend origin is in use.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// frame is the wire shape for hub messages: the update envelope plus the
// topic it was published on.
type frame struct {
	Topic string `json:"topic"`
	models.Update
}

// subscription is a client control message.
type subscription struct {
	Action string `json:"action"` // subscribe | unsubscribe
	Topic  string `json:"topic"`
}

type client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	mu     sync.Mutex
	topics map[string]bool
}

func (c *client) subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topics[topic]
}

func (c *client) setSubscribed(topic string, on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		c.topics[topic] = true
	} else {
		delete(c.topics, topic)
	}
}

// Hub fans updates out to websocket subscribers on /ws-ticket-system.
// Clients start subscribed to both topics and can narrow their view with
// subscribe/unsubscribe messages. There is no replay: a client sees only
// what is published while it is connected.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Publish implements Broadcaster. It never blocks: messages to slow
// clients are dropped.
func (h *Hub) Publish(topic string, update models.Update) {
	payload, err := json.Marshal(frame{Topic: topic, Update: update})
	if err != nil {
		slog.Error("hub: marshal update", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.subscribed(topic) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			slog.Warn("hub: dropping update for slow subscriber", "client", c.id, "topic", topic)
		}
	}
}

// ServeWS upgrades the request and runs the client until it disconnects.
func (h *Hub) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("hub: websocket upgrade failed", "error", err)
		return err
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		topics: map[string]bool{
			TopicSystem:  true,
			TopicTickets: true,
		},
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return nil
	}
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	slog.Info("hub: subscriber connected", "client", cl.id)

	go h.writePump(cl)
	h.readPump(cl)
	return nil
}

func (h *Hub) readPump(cl *client) {
	defer h.remove(cl)

	cl.conn.SetReadLimit(maxMessageSize)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		var sub subscription
		if err := json.Unmarshal(data, &sub); err != nil {
			continue
		}
		switch sub.Action {
		case "subscribe":
			cl.setSubscribed(sub.Topic, true)
		case "unsubscribe":
			cl.setSubscribed(sub.Topic, false)
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	cl.conn.Close()
	slog.Info("hub: subscriber disconnected", "client", cl.id)
}

// Close disconnects every subscriber and rejects new connections.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		c.conn.Close()
	}
}

// SubscriberCount reports the number of connected clients.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
