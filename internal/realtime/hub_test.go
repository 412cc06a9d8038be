package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func joinRoom(t *testing.T, hub *Hub, conn *websocket.Conn, formID uint, want int) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "join-form", "form_id": formID}))
	waitRoomSize(t, hub, formID, want)
}

func waitRoomSize(t *testing.T, hub *Hub, formID uint, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomSize(formID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %d never reached size %d (got %d)", formID, want, hub.RoomSize(formID))
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestHubBroadcastToRoomMembersOnly(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	member := dialHub(t, srv)
	bystander := dialHub(t, srv)
	joinRoom(t, hub, member, 7, 1)
	joinRoom(t, hub, bystander, 8, 1)

	hub.ResponseReceived(7, 42)

	ev := readEvent(t, member)
	assert.Equal(t, EventResponseNew, ev.Type)
	payload, ok := ev.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, payload["form_id"])
	assert.EqualValues(t, 42, payload["response_id"])

	bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := bystander.ReadMessage()
	assert.Error(t, err)
}

func TestHubFanOut(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	first := dialHub(t, srv)
	second := dialHub(t, srv)
	joinRoom(t, hub, first, 3, 1)
	joinRoom(t, hub, second, 3, 2)

	hub.Broadcast(3, Event{Type: EventQuestionAdded, Payload: "q"})

	for _, conn := range []*websocket.Conn{first, second} {
		ev := readEvent(t, conn)
		assert.Equal(t, EventQuestionAdded, ev.Type)
	}
}

func TestHubClientMayWatchSeveralForms(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	conn := dialHub(t, srv)
	joinRoom(t, hub, conn, 1, 1)
	joinRoom(t, hub, conn, 2, 1)

	hub.ResponseReceived(2, 9)
	ev := readEvent(t, conn)
	assert.Equal(t, EventResponseNew, ev.Type)
}

func TestHubDisconnectLeavesRooms(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	conn := dialHub(t, srv)
	joinRoom(t, hub, conn, 5, 1)

	conn.Close()
	waitRoomSize(t, hub, 5, 0)

	// broadcasting into an emptied room must not panic
	hub.ResponseReceived(5, 1)
}

func TestHubIgnoresMalformedFrames(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	conn := dialHub(t, srv)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "join-form"}))
	joinRoom(t, hub, conn, 6, 1)
}
