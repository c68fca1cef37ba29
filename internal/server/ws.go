// Package server streams newly-latched decoder frames to connected
// clients over a websocket, and advertises the endpoint over mDNS.
// Grounded on the teacher's network bridges (src/kissnet.go's TCP KISS
// server, src/agwpe.go's AGW TCP server) which both exist to push
// decoded-packet data to a remote consumer — here the transport is a
// JSON websocket broadcast instead of a binary TCP protocol, matching
// the rest of the retrieval pack's madpsy-ka9q_ubersdr dashboard
// clients (websocket.go's upgrader + per-connection write mutex,
// session.go's uuid.New() client IDs).
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wk2k/irmp-go/internal/irmp"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FrameMessage is the JSON shape pushed to every connected client for
// each newly-latched frame, mirroring spec.md §6's (protocol, address,
// command, flags) output tuple.
type FrameMessage struct {
	ID         string `json:"id"`
	Protocol   string `json:"protocol"`
	Address    uint16 `json:"address"`
	Command    uint16 `json:"command"`
	Repetition bool   `json:"repetition"`
	CRCError   bool   `json:"crc_error"`
}

// client wraps one websocket connection with the write mutex the
// teacher's network bridges and the pack's websocket.go both use:
// gorilla's *websocket.Conn is not safe for concurrent writers, and a
// broadcast hub is inherently a concurrent writer.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub broadcasts decoded frames to every currently connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

// NewHub builds an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// ServeHTTP upgrades the request to a websocket and registers the new
// connection with the hub until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{id: uuid.New().String(), conn: conn}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c.id)
		h.mu.Unlock()
		conn.Close()
	}()

	// The hub only pushes; it doesn't expect client messages, but it
	// must still read the connection to notice disconnects and to
	// answer control-frame pings, exactly as gorilla's docs require.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast pushes one decoded frame to every connected client, one
// after another and without a write deadline, so a slow client delays
// the rest. A client whose write fails is dropped.
func (h *Hub) Broadcast(frame irmp.Frame) {
	msg := FrameMessage{
		ID:         uuid.New().String(),
		Protocol:   frame.Protocol.Name(),
		Address:    frame.Address,
		Command:    frame.Command,
		Repetition: frame.Flags&irmp.FlagRepetition != 0,
		CRCError:   frame.Flags&irmp.FlagCRCError != 0,
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.writeJSON(msg); err != nil {
			h.mu.Lock()
			delete(h.clients, c.id)
			h.mu.Unlock()
		}
	}
}

// MarshalFrame is a convenience for callers (the daemon's logging hook,
// tests) that want the same JSON shape Broadcast sends without going
// through a Hub.
func MarshalFrame(frame irmp.Frame) ([]byte, error) {
	return json.Marshal(FrameMessage{
		Protocol:   frame.Protocol.Name(),
		Address:    frame.Address,
		Command:    frame.Command,
		Repetition: frame.Flags&irmp.FlagRepetition != 0,
		CRCError:   frame.Flags&irmp.FlagCRCError != 0,
	})
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
