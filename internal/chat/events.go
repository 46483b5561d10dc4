package chat

import "encoding/json"

// EventType names a relay event.
type EventType string

// Event types exchanged with clients. Inbound: authenticate, chat message,
// share music. Outbound: chat message, error.
const (
	EventAuthenticate EventType = "authenticate"
	EventChatMessage  EventType = "chat message"
	EventShareMusic   EventType = "share music"
	EventError        EventType = "error"
)

// Event is the JSON envelope for websocket messages.
type Event struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// encodeEvent marshals a payload into an enveloped wire message.
func encodeEvent(eventType EventType, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{Type: eventType, Payload: raw})
}
