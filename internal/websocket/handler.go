package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/savora/savora-cloud-go/internal/security"
)

// Config holds the WebSocket endpoint settings.
type Config struct {
	Path            string
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		Path:            "/ws",
		AllowedOrigins:  []string{"*"},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Handler upgrades authenticated requests onto the hub.
type Handler struct {
	config   Config
	hub      *Hub
	upgrader websocket.Upgrader
	jwt      *security.JWTProvider
	log      *zap.Logger
}

// NewHandler creates the WebSocket handler.
func NewHandler(config Config, hub *Hub, jwt *security.JWTProvider, log *zap.Logger) *Handler {
	h := &Handler{
		config: config,
		hub:    hub,
		jwt:    jwt,
		log:    log,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// RegisterRoutes mounts the upgrade and status endpoints.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET(h.config.Path, h.handleUpgrade)
	router.GET(h.config.Path+"/status", h.handleStatus)
}

// handleUpgrade authenticates and upgrades one connection. Security
// events are private, so a valid access token is required; browsers
// cannot set headers on WebSocket dials, which is why the token is also
// accepted as a query parameter.
func (h *Handler) handleUpgrade(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = parts[1]
		}
	}

	claims, err := h.jwt.ValidateAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, claims.UserID, h.log)
	h.hub.register <- client

	client.Send(&Message{
		Type:  MessageTypeEvent,
		Event: "connected",
		Data: map[string]any{
			"clientId": client.ID,
		},
		Timestamp: time.Now(),
	})

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) handleStatus(c *gin.Context) {
	metrics := h.hub.Metrics()
	c.JSON(http.StatusOK, gin.H{
		"activeConnections": metrics.ActiveConnections,
		"totalConnections":  metrics.TotalConnections,
		"deliveredEvents":   metrics.DeliveredEvents,
		"droppedEvents":     metrics.DroppedEvents,
	})
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
