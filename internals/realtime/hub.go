package realtime

import (
	"log"
	"sync"
)

// Conn is the subscriber surface the hub needs from a websocket
// connection. Tests substitute their own implementation.
type Conn interface {
	WriteJSON(v interface{}) error
}

// lockedConn serializes WriteJSON calls. Broadcasts run on whichever
// subscriber's read loop produced the event, so two rooms sharing a
// member can write to the same socket at the same time, and the
// underlying websocket connection permits only one writer.
type lockedConn struct {
	mu sync.Mutex
	c  Conn
}

func (l *lockedConn) WriteJSON(v interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.c.WriteJSON(v)
}

// NewLockedConn wraps a connection so concurrent broadcasts take turns
// writing to it. Every socket is wrapped once, at registration.
func NewLockedConn(c Conn) Conn {
	return &lockedConn{c: c}
}

// Hub tracks room membership and fans events out to subscribers.
// Delivery is at most once: a failed write drops the connection from
// every room instead of retrying.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[Conn]struct{})}
}

func (h *Hub) Join(room string, c Conn) {
	if room == "" || c == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[Conn]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

func (h *Hub) Leave(room string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Remove drops a connection from every room it joined. Called when the
// socket closes or a write fails.
func (h *Hub) Remove(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast sends the envelope to every member of the room, the sender
// included if it joined. Payloads are relayed as received.
func (h *Hub) Broadcast(room string, env Envelope) {
	h.mu.RLock()
	members := make([]Conn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if err := c.WriteJSON(env); err != nil {
			log.Printf("[REALTIME] dropping subscriber in %s: %v", room, err)
			h.Remove(c)
		}
	}
}

// RoomSize reports current membership, mostly for tests and logging.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
