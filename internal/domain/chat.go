package domain

// ChatMessage is a transient relay event. It exists only for the duration of
// the broadcast fan-out and is never persisted.
type ChatMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// Track describes a shared catalog track as sent by clients.
type Track struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Artists []Artist `json:"artists"`
}

// Artist is the track artist descriptor.
type Artist struct {
	Name string `json:"name"`
}
