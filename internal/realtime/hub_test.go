package realtime

import (
	"os"
	"testing"

	"github.com/Temirlan472/Office_Board/pkg/logger"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.InitLogger()
	os.Exit(m.Run())
}

func TestHubTracksOnlineUsers(t *testing.T) {
	hub := NewHub()
	assert.Empty(t, hub.OnlineUserIDs())
	assert.False(t, hub.IsOnline("u1"))

	c1 := &websocket.Conn{}
	c2 := &websocket.Conn{}
	hub.Register("u1", c1)
	hub.Register("u1", c2)
	hub.Register("u2", &websocket.Conn{})

	assert.True(t, hub.IsOnline("u1"))
	assert.ElementsMatch(t, []string{"u1", "u2"}, hub.OnlineUserIDs())

	// Still online while one of two connections remains.
	hub.Unregister("u1", c1)
	assert.True(t, hub.IsOnline("u1"))

	hub.Unregister("u1", c2)
	assert.False(t, hub.IsOnline("u1"))
	assert.ElementsMatch(t, []string{"u2"}, hub.OnlineUserIDs())
}

func TestHubUnregisterUnknownConn(t *testing.T) {
	hub := NewHub()
	hub.Register("u1", &websocket.Conn{})

	// Removing a connection that was never registered is a no-op.
	hub.Unregister("u1", &websocket.Conn{})
	assert.True(t, hub.IsOnline("u1"))

	hub.Unregister("u3", &websocket.Conn{})
	assert.False(t, hub.IsOnline("u3"))
}
