package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Per-client outbound buffer. A client that cannot drain it loses
	// events; delivery is fire-and-forget.
	sendBuffer = 64

	maxMessageSize = 1024
)

const (
	EventQuestionAdded = "question:added"
	EventResponseNew   = "response:new"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type responsePayload struct {
	FormID     uint `json:"form_id"`
	ResponseID uint `json:"response_id"`
}

// joinMessage is the only inbound message shape the hub understands.
type joinMessage struct {
	Type   string `json:"type"`
	FormID uint   `json:"form_id"`
}

type Client struct {
	id    string
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[uint]struct{}
}

// Hub is the process-local room registry: form id to the set of
// connected clients watching that form. It is never authoritative
// state; membership is lost on restart.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: map[uint]map[*Client]struct{}{}}
}

func (h *Hub) join(c *Client, formID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[formID]
	if !ok {
		room = map[*Client]struct{}{}
		h.rooms[formID] = room
	}
	room[c] = struct{}{}
	c.rooms[formID] = struct{}{}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for formID := range c.rooms {
		if room, ok := h.rooms[formID]; ok {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, formID)
			}
		}
	}
}

// RoomSize reports current membership of a form's room.
func (h *Hub) RoomSize(formID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[formID])
}

// Broadcast sends an event to every member of the form's room. Clients
// with a full send buffer are skipped.
func (h *Hub) Broadcast(formID uint, event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Println("realtime: marshal event:", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[formID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// QuestionAdded implements the store notifier for question creation.
func (h *Hub) QuestionAdded(formID uint, q *form.Question) {
	h.Broadcast(formID, Event{Type: EventQuestionAdded, Payload: q})
}

// ResponseReceived implements the store notifier for new submissions.
func (h *Hub) ResponseReceived(formID, responseID uint) {
	h.Broadcast(formID, Event{Type: EventResponseNew, Payload: responsePayload{FormID: formID, ResponseID: responseID}})
}

// Register attaches an upgraded connection to the hub and starts its
// pumps. It returns once the read pump exits.
func (h *Hub) Register(conn *websocket.Conn) {
	client := &Client{
		id:    uuid.NewString(),
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBuffer),
		rooms: map[uint]struct{}{},
	}
	go client.writePump()
	client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		close(c.send)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var join joinMessage
		if err := json.Unmarshal(msg, &join); err != nil {
			continue
		}
		if join.Type == "join-form" && join.FormID != 0 {
			c.hub.join(c, join.FormID)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
