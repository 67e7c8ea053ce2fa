// Package wshub fans committed order events out to websocket subscribers.
//
// The Hub implements ports.OrderEventPublisher. Publishing never blocks the
// caller: when the broadcast queue is full the message is dropped, and a
// subscriber whose send buffer is full is disconnected.
package wshub

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"otcdesk/internal/core/domain/model/order"
	"otcdesk/internal/core/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
	broadcastQueue = 256
)

const MessageTypeOrderEvent = "order_event"

var _ ports.OrderEventPublisher = &Hub{}

// Message is the frame written to subscribers.
type Message struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	ID        string    `json:"id"`
	OrderID   int64     `json:"order_id"`
	EventType string    `json:"event_type"`
	TxHash    *string   `json:"tx_hash"`
	TradeID   *int64    `json:"trade_id"`
	ActorID   int64     `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}

	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	dropped    atomic.Int64
}

// NewHub accepts connections from allowedOrigins only. An empty list or "*"
// allows every origin; requests without an Origin header are always allowed.
func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	h := &Hub{
		logger:     logger.With(zap.String("component", "ws_hub")),
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
	check := originChecker(allowedOrigins)
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return check(r.Header.Get("Origin"))
		},
	}
	return h
}

// Run dispatches until ctx is cancelled, then closes every subscriber. It
// must be called once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("subscriber connected", zap.String("remote", c.remote), zap.Int("total", total))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Debug("subscriber disconnected", zap.String("remote", c.remote), zap.Int("total", total))

		case msg := <-h.broadcast:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) fanOut(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("dropping slow subscriber", zap.String("remote", c.remote))
		}
	}
}

// Publish implements ports.OrderEventPublisher.
func (h *Hub) Publish(_ context.Context, events ...*order.Event) {
	for _, e := range events {
		msg, err := json.Marshal(NewMessage(e))
		if err != nil {
			h.logger.Error("encode order event", zap.Error(err))
			continue
		}
		select {
		case h.broadcast <- msg:
		default:
			h.dropped.Add(1)
			h.logger.Warn("broadcast queue full, order event dropped",
				zap.Int64("order_id", e.OrderID()), zap.String("event_type", string(e.Type())))
		}
	}
}

func NewMessage(e *order.Event) Message {
	data := EventData{
		ID:        e.ID().String(),
		OrderID:   e.OrderID(),
		EventType: string(e.Type()),
		TradeID:   e.TradeID(),
		ActorID:   e.ActorID(),
		CreatedAt: e.CreatedAt(),
	}
	if h := e.TxHash(); h != nil {
		s := h.String()
		data.TxHash = &s
	}
	return Message{Type: MessageTypeOrderEvent, Data: data}
}

// ServeHTTP upgrades the request and registers the connection. Run must be
// running.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		remote: conn.RemoteAddr().String(),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// DroppedMessages counts events lost to a full broadcast queue.
func (h *Hub) DroppedMessages() int64 {
	return h.dropped.Load()
}

func originChecker(allowed []string) func(origin string) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(string) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(origin string) bool {
		if origin == "" || len(set) == 0 {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
