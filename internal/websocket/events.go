package websocket

import (
	"encoding/json"
	"time"
)

// EventType discriminates the real-time events exchanged with clients.
type EventType string

const (
	// Client -> server
	TypeRequestRooms EventType = "request-rooms"
	TypeJoinRoom     EventType = "join-room"
	TypeSendMessage  EventType = "send-message"
	TypeLeaveRoom    EventType = "leave-room"

	// Server -> client
	TypeRoomsUpdated  EventType = "rooms-updated"
	TypeJoinedOK      EventType = "joined-ok"
	TypeJoinError     EventType = "join-error"
	TypeChatMessage   EventType = "chat-message"
	TypeSystemMessage EventType = "system-message"
	TypeHistory       EventType = "history"
	TypeError         EventType = "error"
)

// Event is the wire envelope for all real-time traffic.
type Event struct {
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"ts"`
}

// Marshal builds a wire-ready event with the given payload.
func Marshal(t EventType, payload interface{}) ([]byte, error) {
	ev := Event{Type: t, Timestamp: time.Now()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		ev.Data = data
	}
	return json.Marshal(ev)
}
