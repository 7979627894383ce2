package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHubServer(t *testing.T) (*EventHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewEventHub()
	go hub.Run()
	r := gin.New()
	r.GET("/ws/events", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialEvents(t *testing.T, srv *httptest.Server, tables string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?tables=" + tables
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	// give the hub a moment to process the registration
	time.Sleep(100 * time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHubDeliversToSubscribedTablesOnly(t *testing.T) {
	hub, srv := newHubServer(t)
	conn := dialEvents(t, srv, "orders,menu_items")

	// an event for an unsubscribed table goes to no one; the next one
	// for a subscribed table must be the first thing the client sees
	hub.Notify("reservations")
	hub.Notify("orders")

	ev := readEvent(t, conn)
	assert.Equal(t, "orders", ev.Table)
	assert.False(t, ev.At.IsZero())

	hub.Notify("menu_items")
	ev = readEvent(t, conn)
	assert.Equal(t, "menu_items", ev.Table)

	// nothing else is queued for this client
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	var extra Event
	require.Error(t, conn.ReadJSON(&extra))
}

func TestHubFansOutToAllSubscribers(t *testing.T) {
	hub, srv := newHubServer(t)
	a := dialEvents(t, srv, "orders")
	b := dialEvents(t, srv, "orders,reservations")

	hub.Notify("orders")

	assert.Equal(t, "orders", readEvent(t, a).Table)
	assert.Equal(t, "orders", readEvent(t, b).Table)
}

func TestNotifyDropsWhenQueueFull(t *testing.T) {
	// no Run goroutine, so nothing drains the broadcast queue
	hub := NewEventHub()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			hub.Notify("orders")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}
}

func TestSubscribeRequiresTables(t *testing.T) {
	_, srv := newHubServer(t)

	res, err := http.Get(srv.URL + "/ws/events")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
