package dto

import (
	"github.com/thereayou/roomhub/internal/models"
)

// JoinRoomPayload is the data of a join-room event.
type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// SendMessagePayload is the data of a send-message event.
type SendMessagePayload struct {
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

// JoinedOK acknowledges a successful join.
type JoinedOK struct {
	RoomID string `json:"roomId"`
}

// JoinError reports a rejected join to the requesting client only.
type JoinError struct {
	Error string `json:"error"`
}

// HistoryPayload carries a room's recent messages to a joining client.
type HistoryPayload struct {
	RoomID   string               `json:"roomId"`
	Messages []models.ChatMessage `json:"messages"`
}
