package realtime

import (
	"sync"

	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/gorilla/websocket"
)

// Hub tracks which users are currently connected. It exists alongside the
// HTTP API: nothing in the notice read path depends on it.
type Hub struct {
	mu      sync.Mutex
	clients map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string][]*websocket.Conn),
	}
}

// Register adds a connection for the given user.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = append(h.clients[userID], conn)
	logger.Log.WithField("userID", userID).Info("User connected")
}

// Unregister removes a connection; the user leaves the online set once their
// last connection is gone.
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.clients[userID]
	for i, c := range conns {
		if c == conn {
			h.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	logger.Log.WithField("userID", userID).Info("User disconnected")
}

// OnlineUserIDs returns the ids of all currently connected users.
func (h *Hub) OnlineUserIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// IsOnline reports whether the user has at least one open connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID]) > 0
}

// Broadcast sends a JSON payload to every connected client. Write errors
// are logged and skipped; the connection's reader will clean up.
func (h *Hub) Broadcast(payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conns := range h.clients {
		for _, conn := range conns {
			if err := conn.WriteJSON(payload); err != nil {
				logger.Log.WithError(err).WithField("userID", userID).Warn("Failed to push message to client")
			}
		}
	}
}

// SendToUser sends a JSON payload to one user's connections, if any.
func (h *Hub) SendToUser(userID string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.clients[userID] {
		if err := conn.WriteJSON(payload); err != nil {
			logger.Log.WithError(err).WithField("userID", userID).Warn("Failed to push message to client")
		}
	}
}
