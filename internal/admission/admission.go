// Package admission validates join attempts without consuming a capacity
// slot. The pre-flight check and the real join are deliberately two phases:
// the check mutates nothing, so an abandoned check never leaks a slot. The
// slot itself is claimed atomically by the directory at real join time, which
// means a join can still be rejected Full after a passing check.
package admission

import (
	"github.com/thereayou/roomhub/internal/directory"
)

// Gate answers whether a join attempt would currently be admitted.
type Gate struct {
	dir *directory.Directory
}

// NewGate creates a gate over dir.
func NewGate(dir *directory.Directory) *Gate {
	return &Gate{dir: dir}
}

// Check validates room existence, password, and capacity. It performs no
// mutation. Returns nil, directory.ErrRoomNotFound, ErrWrongPassword, or
// directory.ErrRoomFull.
func (g *Gate) Check(roomID, password string) error {
	room, err := g.dir.Get(roomID)
	if err != nil {
		return err
	}
	if room.HasPassword && !passwordMatches(room.Password, password) {
		return ErrWrongPassword
	}
	if room.Occupancy >= room.Capacity {
		return directory.ErrRoomFull
	}
	return nil
}

// passwordMatches compares the stored plaintext secret with the supplied one.
// Known weakness: the secret is neither hashed nor compared in constant time.
// Any replacement scheme goes here; Check's control flow stays untouched.
func passwordMatches(stored, supplied string) bool {
	return stored == supplied
}
