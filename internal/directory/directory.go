// Package directory owns the in-memory registry of live rooms. All occupancy
// and activity mutation goes through it so the occupancy invariant
// (0 <= occupancy <= capacity) is enforced in one place.
package directory

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/roomhub/internal/models"
)

const (
	// DefaultCapacity is used when a create request does not name one.
	DefaultCapacity = 10

	// historyLimit bounds the per-room recent message buffer.
	historyLimit = 200
)

// Notifier receives a signal whenever the set of rooms or their public
// attributes changed. The mutation always commits before the notifier runs,
// and implementations must never block.
type Notifier interface {
	DirectoryChanged()
}

// Directory is the authoritative room registry. A single coarse lock guards
// all mutation; readers get consistent snapshots.
type Directory struct {
	mu       sync.RWMutex
	rooms    map[string]*models.Room
	history  map[string][]models.ChatMessage
	notifier Notifier
}

// New creates an empty directory.
func New() *Directory {
	return &Directory{
		rooms:   make(map[string]*models.Room),
		history: make(map[string][]models.ChatMessage),
	}
}

// SetNotifier attaches the fan-out sink. Call once at startup, before the
// directory is shared.
func (d *Directory) SetNotifier(n Notifier) {
	d.notifier = n
}

// CreateParams carries already-sanitized input for room creation.
type CreateParams struct {
	Name     string
	Creator  string
	Tags     []string
	Capacity int
	Password string
}

// Create registers a new room and notifies all clients. The name must be
// non-empty after trimming; capacity defaults to DefaultCapacity and is
// clamped to at least 1.
func (d *Directory) Create(p CreateParams) (models.Room, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Room{}, ErrNameRequired
	}

	creator := p.Creator
	if creator == "" {
		creator = "Anonymous"
	}

	capacity := p.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	} else if capacity < 1 {
		capacity = 1
	}

	now := time.Now()
	room := &models.Room{
		ID:           uuid.NewString(),
		Name:         name,
		Creator:      creator,
		Tags:         p.Tags,
		HasPassword:  p.Password != "",
		Password:     p.Password,
		Capacity:     capacity,
		CreatedAt:    now,
		LastActivity: now,
	}
	if room.Tags == nil {
		room.Tags = []string{}
	}

	d.mu.Lock()
	d.rooms[room.ID] = room
	snapshot := *room
	d.mu.Unlock()

	log.Printf("Room created: %s %q by %s", room.ID, room.Name, room.Creator)

	if d.notifier != nil {
		d.notifier.DirectoryChanged()
	}
	return snapshot, nil
}

// List returns the public views of all rooms, oldest first.
func (d *Directory) List() []models.RoomView {
	d.mu.RLock()
	views := make([]models.RoomView, 0, len(d.rooms))
	for _, room := range d.rooms {
		views = append(views, room.View())
	}
	d.mu.RUnlock()

	sort.Slice(views, func(i, j int) bool {
		if views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].ID < views[j].ID
		}
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views
}

// Get returns a snapshot of the room, or ErrRoomNotFound.
func (d *Directory) Get(roomID string) (models.Room, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	room, ok := d.rooms[roomID]
	if !ok {
		return models.Room{}, ErrRoomNotFound
	}
	snapshot := *room
	snapshot.Tags = append([]string(nil), room.Tags...)
	return snapshot, nil
}

// IncrementOccupancy atomically checks capacity and claims a slot. It returns
// the new occupancy, ErrRoomNotFound, or ErrRoomFull with the count unchanged.
// The check and the increment happen under one lock: this is the only place a
// join can consume a slot, so a passed pre-flight check can still lose here.
func (d *Directory) IncrementOccupancy(roomID string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[roomID]
	if !ok {
		return 0, ErrRoomNotFound
	}
	if room.Occupancy >= room.Capacity {
		return room.Occupancy, ErrRoomFull
	}
	room.Occupancy++
	return room.Occupancy, nil
}

// DecrementOccupancy releases a slot, flooring at zero. A redundant decrement
// is a no-op, not an error: disconnect cleanup may race with an explicit
// leave.
func (d *Directory) DecrementOccupancy(roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if room, ok := d.rooms[roomID]; ok && room.Occupancy > 0 {
		room.Occupancy--
	}
}

// Touch refreshes the room's last-activity timestamp.
func (d *Directory) Touch(roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if room, ok := d.rooms[roomID]; ok {
		room.LastActivity = time.Now()
	}
}

// Evict removes the room and its history unconditionally.
func (d *Directory) Evict(roomID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.rooms, roomID)
	delete(d.history, roomID)
}

// EvictIdle removes every room idle longer than ttl as of now and returns how
// many were removed. Active rooms are safe: every join/leave/message refreshes
// last-activity, pulling the room out of range.
func (d *Directory) EvictIdle(ttl time.Duration, now time.Time) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	evicted := 0
	for id, room := range d.rooms {
		if now.Sub(room.LastActivity) > ttl {
			delete(d.rooms, id)
			delete(d.history, id)
			evicted++
			log.Printf("Room %s expired and was removed (TTL)", id)
		}
	}
	return evicted
}

// AppendMessage stores a chat message in the room's bounded recent buffer and
// refreshes activity.
func (d *Directory) AppendMessage(roomID string, msg models.ChatMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	room.LastActivity = time.Now()

	buf := append(d.history[roomID], msg)
	if len(buf) > historyLimit {
		buf = buf[len(buf)-historyLimit:]
	}
	d.history[roomID] = buf
	return nil
}

// History returns a copy of the room's recent messages, oldest first.
func (d *Directory) History(roomID string) []models.ChatMessage {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]models.ChatMessage(nil), d.history[roomID]...)
}
