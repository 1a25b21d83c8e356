package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client is one authenticated WebSocket connection.
type Client struct {
	ID     string
	UserID uint

	hub  *Hub
	conn *websocket.Conn
	send chan *Message
	log  *zap.Logger
}

// NewClient wraps an upgraded connection for a user.
func NewClient(hub *Hub, conn *websocket.Conn, userID uint, log *zap.Logger) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan *Message, sendBufferSize),
		log:    log,
	}
}

// ReadPump consumes frames from the connection until it closes. Clients
// only ever send pings; everything else is ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read error",
					zap.String("client_id", c.ID),
					zap.Error(err),
				)
			}
			return
		}

		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			c.log.Warn("unparseable client frame",
				zap.String("client_id", c.ID),
				zap.Error(err),
			)
			continue
		}

		if message.Type == MessageTypePing {
			c.Send(&Message{Type: MessageTypePong, Timestamp: time.Now()})
		}
	}
}

// WritePump writes queued messages and protocol pings to the
// connection.
func (c *Client) WritePump() {
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
			if err := c.conn.WriteJSON(message); err != nil {
				c.log.Warn("websocket write error",
					zap.String("client_id", c.ID),
					zap.Error(err),
				)
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

// Send queues a message without blocking; a slow client loses frames
// rather than stalling the hub.
func (c *Client) Send(message *Message) {
	select {
	case c.send <- message:
	default:
		c.log.Warn("client send buffer full",
			zap.String("client_id", c.ID),
		)
	}
}
