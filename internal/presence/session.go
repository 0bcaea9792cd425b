package presence

import (
	"sync"
)

// Session binds one live connection to a display name and at most one room.
// It holds the room by id only; the room may be evicted at any time.
type Session struct {
	mu         sync.Mutex
	name       string
	roomID     string
	disconnect sync.Once
}

// NewSession creates an unassociated session.
func NewSession() *Session {
	return &Session{name: "Anonymous"}
}

// Name returns the sanitized display name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// RoomID returns the joined room id, or "" when unassociated.
func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}
