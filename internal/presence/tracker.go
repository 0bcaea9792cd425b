// Package presence tracks which connection sits in which room and keeps the
// directory's occupancy in step with connection lifecycles.
package presence

import (
	"log"

	"github.com/thereayou/roomhub/internal/directory"
)

// Notifier fans out the side effects of presence changes. Implementations
// must not block; mutations always commit before a notification goes out.
type Notifier interface {
	DirectoryChanged()
	RoomNotice(roomID, text string)
}

// Tracker is the source of truth for "who is in which room".
type Tracker struct {
	dir      *directory.Directory
	notifier Notifier
}

// NewTracker creates a tracker over dir, fanning out through notifier.
func NewTracker(dir *directory.Directory, notifier Notifier) *Tracker {
	return &Tracker{dir: dir, notifier: notifier}
}

// Join associates the session with a room. A session already in a different
// room is rejected with ErrAlreadyJoined; re-joining the same room succeeds
// without claiming a second slot. The slot claim is the directory's atomic
// increment, so Join may return directory.ErrRoomFull even after a passing
// pre-flight check.
func (t *Tracker) Join(s *Session, roomID, displayName string) error {
	if displayName == "" {
		displayName = "Anonymous"
	}

	s.mu.Lock()
	switch s.roomID {
	case roomID:
		// Re-entry into the held room: refresh the name, keep the slot.
		s.name = displayName
		s.mu.Unlock()
		t.dir.Touch(roomID)
		return nil
	case "":
	default:
		s.mu.Unlock()
		return ErrAlreadyJoined
	}

	count, err := t.dir.IncrementOccupancy(roomID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.name = displayName
	s.roomID = roomID
	s.mu.Unlock()

	t.dir.Touch(roomID)
	log.Printf("%s joined room %s (%d occupants)", displayName, roomID, count)

	t.notifier.RoomNotice(roomID, displayName+" joined")
	t.notifier.DirectoryChanged()
	return nil
}

// Leave clears the session's room association and releases its slot. No-op
// when unassociated. An explicit leave emits no departure notice; only
// disconnect does.
func (t *Tracker) Leave(s *Session) {
	s.mu.Lock()
	roomID := s.roomID
	s.roomID = ""
	s.mu.Unlock()

	if roomID == "" {
		return
	}

	t.dir.DecrementOccupancy(roomID)
	t.dir.Touch(roomID)
	t.notifier.DirectoryChanged()
}

// Disconnect is the implicit leave on connection termination, plus a
// room-scoped departure notice. It runs exactly once per session no matter
// how many termination signals the transport fires.
func (t *Tracker) Disconnect(s *Session) {
	s.disconnect.Do(func() {
		s.mu.Lock()
		roomID := s.roomID
		name := s.name
		s.roomID = ""
		s.mu.Unlock()

		if roomID == "" {
			return
		}

		t.dir.DecrementOccupancy(roomID)
		t.dir.Touch(roomID)
		t.notifier.RoomNotice(roomID, name+" left")
		t.notifier.DirectoryChanged()
	})
}
