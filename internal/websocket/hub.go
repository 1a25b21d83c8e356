package websocket

import (
	"sync"

	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/domain/service"
)

// Hub tracks connected clients per user and fans security events out to
// them. Every connection is authenticated, so a client always belongs to
// exactly one user.
type Hub struct {
	clients     map[*Client]bool
	userClients map[uint]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	mu  sync.RWMutex
	log *zap.Logger

	metrics HubMetrics
}

// HubMetrics holds connection and delivery counters.
type HubMetrics struct {
	TotalConnections  int64
	ActiveConnections int64
	DeliveredEvents   int64
	DroppedEvents     int64
	mu                sync.RWMutex
}

var _ service.SecurityNotifier = (*Hub)(nil)

// NewHub creates a hub. Call Run on its own goroutine before use.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[uint]map[*Client]bool),
		broadcast:   make(chan *Message, 256),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		log:         log,
	}
}

// Run processes registration and broadcast events until the process
// exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.deliver(message)
		}
	}
}

// Publish sends a security event to every connection the user has open.
// Never blocks: when the hub or a client cannot keep up the event is
// dropped, since security events are advisory and the activity log is
// the durable record.
func (h *Hub) Publish(userID uint, eventType, text string) {
	select {
	case h.broadcast <- NewSecurityEvent(userID, eventType, text):
	default:
		h.metrics.mu.Lock()
		h.metrics.DroppedEvents++
		h.metrics.mu.Unlock()
		h.log.Warn("hub broadcast buffer full, event dropped",
			zap.Uint("user_id", userID),
			zap.String("event", eventType),
		)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[*Client]bool)
	}
	h.userClients[client.UserID][client] = true

	h.metrics.mu.Lock()
	h.metrics.TotalConnections++
	h.metrics.ActiveConnections++
	h.metrics.mu.Unlock()

	h.log.Debug("client registered",
		zap.String("client_id", client.ID),
		zap.Uint("user_id", client.UserID),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)

	if clients, ok := h.userClients[client.UserID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userClients, client.UserID)
		}
	}

	h.metrics.mu.Lock()
	h.metrics.ActiveConnections--
	h.metrics.mu.Unlock()

	h.log.Debug("client unregistered", zap.String("client_id", client.ID))
}

func (h *Hub) deliver(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.userClients[message.UserID] {
		select {
		case client.send <- message:
			h.metrics.mu.Lock()
			h.metrics.DeliveredEvents++
			h.metrics.mu.Unlock()
		default:
			h.metrics.mu.Lock()
			h.metrics.DroppedEvents++
			h.metrics.mu.Unlock()
			h.log.Warn("client send buffer full, event dropped",
				zap.String("client_id", client.ID),
			)
		}
	}
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsUserOnline reports whether the user has at least one connection.
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID]) > 0
}

// Metrics returns a snapshot of the hub counters.
func (h *Hub) Metrics() HubMetrics {
	h.metrics.mu.RLock()
	defer h.metrics.mu.RUnlock()
	return HubMetrics{
		TotalConnections:  h.metrics.TotalConnections,
		ActiveConnections: h.metrics.ActiveConnections,
		DeliveredEvents:   h.metrics.DeliveredEvents,
		DroppedEvents:     h.metrics.DroppedEvents,
	}
}
