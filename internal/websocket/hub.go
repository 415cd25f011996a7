package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"taxengine/internal/logger"
	"taxengine/internal/middleware"
)

// Profile change events.
const (
	EventProfileCreated       = "tax_profile.created"
	EventProfileDeactivated   = "tax_profile.deactivated"
	EventGlobalDefaultChanged = "tax_profile.global_default_changed"
	EventTaxRateAdded         = "tax_rate.added"
	EventTaxRateUpdated       = "tax_rate.updated"
	EventTaxRateRemoved       = "tax_rate.removed"
	EventTaxExemptionAdded    = "tax_exemption.added"
	EventTaxExemptionUpdated  = "tax_exemption.updated"
	EventTaxExemptionRemoved  = "tax_exemption.removed"
)

const (
	broadcastBuffer  = 256
	clientSendBuffer = 256
)

// ProfileChange is pushed to subscribers after a profile is persisted.
type ProfileChange struct {
	Event     string    `json:"event"`
	ProfileID uuid.UUID `json:"profile_id"`
	Code      string    `json:"code,omitempty"`
	Version   int64     `json:"version"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer in front of the API
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client represents a single connected WebSocket client
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex
	log        *logger.Logger
}

// NewHub initializes a new WS Hub instance
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run starts the core dispatch loop for WebSocket events. It returns when ctx
// is cancelled, closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debugw("websocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.log.Debugw("websocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// PublishProfileChange queues a change for every client. It never blocks: when
// the queue is full the event is dropped and logged.
func (h *Hub) PublishProfileChange(change ProfileChange) {
	message, err := json.Marshal(change)
	if err != nil {
		h.log.Errorw("failed to encode profile change", "error", err, "event", change.Event)
		return
	}

	select {
	case h.broadcast <- message:
	default:
		h.log.Warnw("dropping profile change, broadcast queue full",
			"event", change.Event,
			"profile_id", change.ProfileID)
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		w, err := c.Conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		_, _ = w.Write(message)

		// Queued messages share one frame, newline separated
		n := len(c.Send)
		for i := 0; i < n; i++ {
			_, _ = w.Write([]byte{'\n'})
			_, _ = w.Write(<-c.Send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump only watches for the peer going away.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		_ = c.Conn.Close()
	}()
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warnw("websocket read failed", "error", err)
			}
			break
		}
	}
}

// ServeWs authenticates the token query parameter and subscribes the peer to
// profile change events.
func ServeWs(hub *Hub, c *gin.Context, secret []byte, allowedRoles ...string) {
	tokenString := c.Query("token")
	if tokenString == "" {
		hub.log.Infow("websocket connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := middleware.ParseToken(tokenString, secret)
	if err != nil {
		hub.log.Infow("websocket connection rejected: invalid token", "error", err)
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	role, _ := claims["role"].(string)
	if !lo.Contains(allowedRoles, role) {
		hub.log.Infow("websocket connection rejected: inadequate permissions", "role", role)
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.Errorw("websocket upgrade failed", "error", err)
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, clientSendBuffer)}
	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
