package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/roomhub/internal/directory"
	"github.com/thereayou/roomhub/internal/models"
)

// Hub owns all live connections and the room membership index, and fans
// events out to them. Every send is non-blocking: a client whose buffer is
// full misses the event instead of stalling the sender.
type Hub struct {
	dir *directory.Directory

	clients map[uuid.UUID]*Client

	// Connections currently associated with each room
	rooms map[string]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub creates a hub that snapshots room listings from dir.
func NewHub(dir *directory.Directory) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		dir:        dir,
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[string]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run processes registration traffic until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop shuts down the hub and closes every connection.
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[uuid.UUID]*Client)
	h.rooms = make(map[string]map[uuid.UUID]*Client)
}

// Register adds a new client connection.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client connection.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("Client registered: %s (total %d)", client.ID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for roomID, room := range h.rooms {
		if _, ok := room[client.ID]; ok {
			delete(room, client.ID)
			if len(room) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}

	delete(h.clients, client.ID)
	close(client.Send)
	log.Printf("Client unregistered: %s (total %d)", client.ID, len(h.clients))
}

// JoinRoom adds the client to a room's fan-out set.
func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[uuid.UUID]*Client)
	}
	h.rooms[roomID][client.ID] = client
}

// LeaveRoom removes the client from a room's fan-out set.
func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[roomID]; ok {
		delete(room, client.ID)
		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// BroadcastDirectory pushes the full current room listing to every connected
// client, replacing their local view.
func (h *Hub) BroadcastDirectory() {
	data, err := Marshal(TypeRoomsUpdated, h.dir.List())
	if err != nil {
		log.Printf("Failed to encode room listing: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// SendToRoom delivers an encoded event to every client in the room.
func (h *Hub) SendToRoom(roomID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		select {
		case client.Send <- message:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

// DirectoryChanged implements the directory and presence notifier.
func (h *Hub) DirectoryChanged() {
	h.BroadcastDirectory()
}

// RoomNotice implements the presence notifier with a room-scoped system
// message.
func (h *Hub) RoomNotice(roomID, text string) {
	data, err := Marshal(TypeSystemMessage, models.SystemNotice{Text: text, Ts: time.Now()})
	if err != nil {
		log.Printf("Failed to encode system notice: %v", err)
		return
	}
	h.SendToRoom(roomID, data)
}
