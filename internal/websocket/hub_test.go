package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop())
	go hub.Run()
	return hub
}

func addClient(t *testing.T, hub *Hub, userID uint) *Client {
	t.Helper()
	client := NewClient(hub, nil, userID, zap.NewNop())
	hub.register <- client

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.IsUserOnline(userID) {
			return client
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("client was not registered in time")
	return nil
}

func receive(t *testing.T, client *Client) *Message {
	t.Helper()
	select {
	case msg := <-client.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered in time")
		return nil
	}
}

func TestHub_PublishReachesEveryUserConnection(t *testing.T) {
	hub := newRunningHub(t)
	first := addClient(t, hub, 1)
	second := addClient(t, hub, 1)
	other := addClient(t, hub, 2)

	hub.Publish(1, "login", "New login on your account")

	for _, client := range []*Client{first, second} {
		msg := receive(t, client)
		assert.Equal(t, MessageTypeEvent, msg.Type)
		assert.Equal(t, "login", msg.Event)
		assert.Equal(t, uint(1), msg.UserID)
		data, ok := msg.Data.(map[string]string)
		require.True(t, ok)
		assert.Equal(t, "New login on your account", data["message"])
	}

	select {
	case msg := <-other.send:
		t.Fatalf("event leaked to another user: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_PublishToOfflineUserIsDropped(t *testing.T) {
	hub := newRunningHub(t)

	// Must not block or panic with nobody connected.
	hub.Publish(99, "password_change", "Password changed")

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.Metrics().TotalConnections == 0 && len(hub.broadcast) == 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, int64(0), hub.Metrics().DeliveredEvents)
}

func TestHub_UnregisterRemovesUser(t *testing.T) {
	hub := newRunningHub(t)
	client := addClient(t, hub, 1)

	hub.unregister <- client

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if !hub.IsUserOnline(1) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	assert.False(t, hub.IsUserOnline(1))
	assert.Equal(t, 0, hub.ClientCount())

	// The send channel is closed on unregister.
	_, open := <-client.send
	assert.False(t, open)
}

func TestHub_SlowClientLosesEventsNotTheHub(t *testing.T) {
	hub := newRunningHub(t)
	client := addClient(t, hub, 1)

	// Fill the client buffer without draining it.
	for i := 0; i < sendBufferSize+10; i++ {
		hub.Publish(1, "login", "event")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		m := hub.Metrics()
		if m.DeliveredEvents+m.DroppedEvents >= sendBufferSize+10 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	m := hub.Metrics()
	assert.Equal(t, int64(sendBufferSize), m.DeliveredEvents)
	assert.True(t, m.DroppedEvents > 0)
	assert.Len(t, client.send, sendBufferSize)
}

func TestHub_MetricsCountConnections(t *testing.T) {
	hub := newRunningHub(t)
	addClient(t, hub, 1)
	addClient(t, hub, 2)

	m := hub.Metrics()
	assert.Equal(t, int64(2), m.TotalConnections)
	assert.Equal(t, int64(2), m.ActiveConnections)
	assert.Equal(t, 2, hub.ClientCount())
}
