package handlers

import (
	"net/http"

	"github.com/Temirlan472/Office_Board/internal/realtime"
	"github.com/Temirlan472/Office_Board/pkg/middleware"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// PresenceHandler upgrades authenticated clients to websocket connections
// and keeps the hub's online set current.
type PresenceHandler struct {
	Hub *realtime.Hub
}

func NewPresenceHandler(hub *realtime.Hub) *PresenceHandler {
	return &PresenceHandler{Hub: hub}
}

// ServeWSHandler handles GET /ws.
func (h *PresenceHandler) ServeWSHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("Failed to upgrade websocket connection")
		return
	}

	h.Hub.Register(claims.UserID, conn)

	go func() {
		defer func() {
			h.Hub.Unregister(claims.UserID, conn)
			conn.Close()
		}()
		// Drain client messages; the server only pushes.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// GetOnlineUsersHandler handles GET /ws/online (admin only).
func (h *PresenceHandler) GetOnlineUsersHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, "Online users fetched successfully", h.Hub.OnlineUserIDs())
}
