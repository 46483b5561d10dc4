package chat

import (
	"encoding/json"
	"fmt"
	"html"
	"time"

	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/Glen2003/IPTspotifyFinal/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 16

	anonymousSender = "anonymous"
)

// Client is a middleman between one websocket connection and the hub. The
// identity field is written only by this client's readPump goroutine: a
// connection is anonymous until a valid authenticate event arrives.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	log      *slog.Logger
	identity string
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if err := c.handleEvent(raw); err != nil {
			// Failed authentication forcibly closes the connection with no
			// error payload beyond the disconnect itself.
			c.log.Warn("closing connection", "error", err)
			return
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
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleEvent dispatches one inbound event. A non-nil error terminates the
// connection.
func (c *Client) handleEvent(raw []byte) error {
	var evt Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		c.log.Warn("invalid event payload", "error", err)
		return nil
	}
	switch evt.Type {
	case EventAuthenticate:
		var token string
		if err := json.Unmarshal(evt.Payload, &token); err != nil {
			return fmt.Errorf("malformed authenticate payload: %w", err)
		}
		claims, err := c.hub.verifier.VerifyToken(token)
		if err != nil {
			return fmt.Errorf("authenticate failed: %w", err)
		}
		c.identity = claims.Username
		c.log.Info("connection authenticated", "username", c.identity)
	case EventChatMessage:
		var msg struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(evt.Payload, &msg); err != nil {
			c.log.Warn("invalid chat message payload", "error", err)
			return nil
		}
		sender := c.identity
		if sender == "" {
			sender = anonymousSender
		}
		c.hub.BroadcastEvent(EventChatMessage, domain.ChatMessage{Text: msg.Text, Sender: sender})
	case EventShareMusic:
		if c.identity == "" {
			c.sendError("authentication required to share music")
			return nil
		}
		var track domain.Track
		if err := json.Unmarshal(evt.Payload, &track); err != nil {
			c.log.Warn("invalid track payload", "error", err)
			return nil
		}
		c.hub.BroadcastEvent(EventChatMessage, domain.ChatMessage{
			Text:   renderTrackEmbed(track),
			Sender: c.identity,
		})
	default:
		c.log.Warn("unknown event type", "type", evt.Type)
	}
	return nil
}

// sendError delivers an error event to this client only.
func (c *Client) sendError(message string) {
	payload, err := encodeEvent(EventError, map[string]string{"message": message})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// renderTrackEmbed produces the small HTML snippet broadcast when a track is
// shared, referencing the public embed player for the track.
func renderTrackEmbed(track domain.Track) string {
	artist := ""
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}
	return fmt.Sprintf(
		`<div class="bg-gray-800 rounded-lg overflow-hidden shadow-lg p-3">`+
			`<iframe src="https://open.spotify.com/embed/track/%s" width="10%%" height="5" frameborder="0" allowfullscreen="true" allow="clipboard-write; encrypted-media; fullscreen; picture-in-picture"></iframe>`+
			`<div class="font-bold text-lg">%s</div>`+
			`<p class="text-gray-400">%s</p>`+
			`</div>`,
		html.EscapeString(track.ID), html.EscapeString(track.Name), html.EscapeString(artist),
	)
}
