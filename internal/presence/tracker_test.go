package presence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/roomhub/internal/admission"
	"github.com/thereayou/roomhub/internal/directory"
)

type spyNotifier struct {
	mu      sync.Mutex
	changes int
	notices []string
}

func (s *spyNotifier) DirectoryChanged() {
	s.mu.Lock()
	s.changes++
	s.mu.Unlock()
}

func (s *spyNotifier) RoomNotice(roomID, text string) {
	s.mu.Lock()
	s.notices = append(s.notices, text)
	s.mu.Unlock()
}

func (s *spyNotifier) noticeTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notices...)
}

func occupancy(t *testing.T, dir *directory.Directory, roomID string) int {
	t.Helper()
	room, err := dir.Get(roomID)
	require.NoError(t, err)
	return room.Occupancy
}

func TestJoinAssociatesAndCounts(t *testing.T) {
	dir := directory.New()
	spy := &spyNotifier{}
	tracker := NewTracker(dir, spy)

	room, err := dir.Create(directory.CreateParams{Name: "Lounge"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, room.ID, "alice"))

	assert.Equal(t, "alice", sess.Name())
	assert.Equal(t, room.ID, sess.RoomID())
	assert.Equal(t, 1, occupancy(t, dir, room.ID))
	assert.Contains(t, spy.noticeTexts(), "alice joined")
}

func TestJoinDefaultsDisplayName(t *testing.T) {
	dir := directory.New()
	tracker := NewTracker(dir, &spyNotifier{})

	room, err := dir.Create(directory.CreateParams{Name: "Lounge"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, room.ID, ""))
	assert.Equal(t, "Anonymous", sess.Name())
}

func TestJoinUnknownRoom(t *testing.T) {
	dir := directory.New()
	tracker := NewTracker(dir, &spyNotifier{})

	sess := NewSession()
	err := tracker.Join(sess, "nope", "alice")
	assert.ErrorIs(t, err, directory.ErrRoomNotFound)
	assert.Empty(t, sess.RoomID())
}

func TestJoinSecondRoomRejected(t *testing.T) {
	dir := directory.New()
	tracker := NewTracker(dir, &spyNotifier{})

	first, err := dir.Create(directory.CreateParams{Name: "first"})
	require.NoError(t, err)
	second, err := dir.Create(directory.CreateParams{Name: "second"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, first.ID, "alice"))

	err = tracker.Join(sess, second.ID, "alice")
	assert.ErrorIs(t, err, ErrAlreadyJoined)
	assert.Equal(t, first.ID, sess.RoomID())
	assert.Equal(t, 0, occupancy(t, dir, second.ID))
}

func TestRejoinSameRoomKeepsOneSlot(t *testing.T) {
	dir := directory.New()
	tracker := NewTracker(dir, &spyNotifier{})

	room, err := dir.Create(directory.CreateParams{Name: "Lounge"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, room.ID, "alice"))
	require.NoError(t, tracker.Join(sess, room.ID, "alice2"))

	assert.Equal(t, "alice2", sess.Name())
	assert.Equal(t, 1, occupancy(t, dir, room.ID), "re-entry must not claim a second slot")
}

func TestJoinFullRoom(t *testing.T) {
	dir := directory.New()
	tracker := NewTracker(dir, &spyNotifier{})

	room, err := dir.Create(directory.CreateParams{Name: "Lounge", Capacity: 1})
	require.NoError(t, err)

	require.NoError(t, tracker.Join(NewSession(), room.ID, "alice"))

	sess := NewSession()
	err = tracker.Join(sess, room.ID, "bob")
	assert.ErrorIs(t, err, directory.ErrRoomFull)
	assert.Empty(t, sess.RoomID())
	assert.Equal(t, 1, occupancy(t, dir, room.ID))
}

func TestLeaveReleasesSlotWithoutNotice(t *testing.T) {
	dir := directory.New()
	spy := &spyNotifier{}
	tracker := NewTracker(dir, spy)

	room, err := dir.Create(directory.CreateParams{Name: "Lounge"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, room.ID, "alice"))
	tracker.Leave(sess)

	assert.Empty(t, sess.RoomID())
	assert.Equal(t, 0, occupancy(t, dir, room.ID))
	// Explicit leave stays silent; only disconnect announces a departure
	assert.NotContains(t, spy.noticeTexts(), "alice left")
}

func TestLeaveUnassociatedNoop(t *testing.T) {
	dir := directory.New()
	spy := &spyNotifier{}
	tracker := NewTracker(dir, spy)

	tracker.Leave(NewSession())
	assert.Equal(t, 0, spy.changes)
}

func TestDisconnectAnnouncesAndRunsOnce(t *testing.T) {
	dir := directory.New()
	spy := &spyNotifier{}
	tracker := NewTracker(dir, spy)

	room, err := dir.Create(directory.CreateParams{Name: "Lounge"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, room.ID, "alice"))

	tracker.Disconnect(sess)
	tracker.Disconnect(sess)
	tracker.Disconnect(sess)

	assert.Equal(t, 0, occupancy(t, dir, room.ID), "join then disconnect is net zero")

	left := 0
	for _, n := range spy.noticeTexts() {
		if n == "alice left" {
			left++
		}
	}
	assert.Equal(t, 1, left, "departure notice goes out exactly once")
}

func TestLeaveThenDisconnectDoesNotUnderflow(t *testing.T) {
	dir := directory.New()
	tracker := NewTracker(dir, &spyNotifier{})

	room, err := dir.Create(directory.CreateParams{Name: "Lounge"})
	require.NoError(t, err)

	sess := NewSession()
	require.NoError(t, tracker.Join(sess, room.ID, "alice"))
	require.NoError(t, tracker.Join(NewSession(), room.ID, "bob"))

	tracker.Leave(sess)
	tracker.Disconnect(sess)

	assert.Equal(t, 1, occupancy(t, dir, room.ID))
}

// The full admission walk-through: capacity 2, two joins, a pre-flight check
// and a bypassing join both see Full, then a disconnect frees the slot.
func TestLoungeScenario(t *testing.T) {
	dir := directory.New()
	spy := &spyNotifier{}
	tracker := NewTracker(dir, spy)
	gate := admission.NewGate(dir)

	room, err := dir.Create(directory.CreateParams{Name: "Lounge", Capacity: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, occupancy(t, dir, room.ID))

	a := NewSession()
	require.NoError(t, tracker.Join(a, room.ID, "A"))
	assert.Equal(t, 1, occupancy(t, dir, room.ID))

	b := NewSession()
	require.NoError(t, tracker.Join(b, room.ID, "B"))
	assert.Equal(t, 2, occupancy(t, dir, room.ID))

	assert.ErrorIs(t, gate.Check(room.ID, ""), directory.ErrRoomFull)

	c := NewSession()
	err = tracker.Join(c, room.ID, "C")
	assert.ErrorIs(t, err, directory.ErrRoomFull)
	assert.Equal(t, 2, occupancy(t, dir, room.ID))

	tracker.Disconnect(a)
	assert.Equal(t, 1, occupancy(t, dir, room.ID))
	assert.Contains(t, spy.noticeTexts(), "A left")
}
