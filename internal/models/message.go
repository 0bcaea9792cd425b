package models

import (
	"time"
)

// ChatMessage is a single room-scoped chat message, already sanitized.
type ChatMessage struct {
	Username string    `json:"username"`
	Text     string    `json:"text"`
	Ts       time.Time `json:"ts"`
}

// SystemNotice is a room-scoped server announcement such as a join or
// departure.
type SystemNotice struct {
	Text string    `json:"text"`
	Ts   time.Time `json:"ts"`
}
