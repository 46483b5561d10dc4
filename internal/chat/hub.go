// Package chat implements the realtime relay: a hub owning the set of live
// websocket connections and fanning every chat event out to all of them.
package chat

import (
	"log/slog"
	"sync/atomic"

	"github.com/gorilla/websocket"

	jwtpkg "github.com/Glen2003/IPTspotifyFinal/pkg/jwt"
)

// TokenVerifier validates session tokens presented on authenticate events.
type TokenVerifier interface {
	VerifyToken(token string) (*jwtpkg.Claims, error)
}

// Hub maintains the set of active clients and broadcasts messages to them.
// The client set is mutated only inside the run loop, so no lock is needed.
type Hub struct {
	verifier   TokenVerifier
	logger     *slog.Logger
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	count      atomic.Int64
}

// NewHub creates a Hub and starts its run loop.
func NewHub(verifier TokenVerifier, logger *slog.Logger) *Hub {
	h := &Hub{
		verifier:   verifier,
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.count.Store(int64(len(h.clients)))
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop it rather than stall the fan-out.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.count.Store(int64(len(h.clients)))
		}
	}
}

// ServeConn wraps an upgraded connection in a Client and starts its pumps.
func (h *Hub) ServeConn(conn *websocket.Conn) {
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		log:  h.logger,
	}
	h.register <- client
	go client.writePump()
	go client.readPump()
}

// ConnectionCount reports the current size of the live-connection set.
func (h *Hub) ConnectionCount() int64 {
	return h.count.Load()
}

// BroadcastEvent delivers an enveloped event to every connected client,
// including the originator.
func (h *Hub) BroadcastEvent(eventType EventType, payload any) {
	message, err := encodeEvent(eventType, payload)
	if err != nil {
		h.logger.Error("encode broadcast event failed", "type", eventType, "error", err)
		return
	}
	h.broadcast <- message
}
