package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/thereayou/roomhub/internal/directory"
	"github.com/thereayou/roomhub/internal/handlers/dto"
	"github.com/thereayou/roomhub/internal/models"
	"github.com/thereayou/roomhub/internal/presence"
	"github.com/thereayou/roomhub/internal/sanitize"
	ws "github.com/thereayou/roomhub/internal/websocket"
)

type eventFunc func(client *ws.Client, ev *ws.Event) error

// EventHandler dispatches real-time client events through an explicit table
// keyed by event type. All state it touches arrives via the constructor.
type EventHandler struct {
	dir     *directory.Directory
	tracker *presence.Tracker
	hub     *ws.Hub
	table   map[ws.EventType]eventFunc
}

func NewEventHandler(dir *directory.Directory, tracker *presence.Tracker, hub *ws.Hub) *EventHandler {
	h := &EventHandler{dir: dir, tracker: tracker, hub: hub}
	h.table = map[ws.EventType]eventFunc{
		ws.TypeRequestRooms: h.handleRequestRooms,
		ws.TypeJoinRoom:     h.handleJoinRoom,
		ws.TypeSendMessage:  h.handleSendMessage,
		ws.TypeLeaveRoom:    h.handleLeaveRoom,
	}
	return h
}

// HandleEvent routes one decoded event to its handler. Unknown event types
// are logged and dropped; they are never fatal.
func (h *EventHandler) HandleEvent(client *ws.Client, ev *ws.Event) error {
	fn, ok := h.table[ev.Type]
	if !ok {
		log.Printf("Unknown event type: %s", ev.Type)
		return nil
	}
	return fn(client, ev)
}

// HandleDisconnect runs the implicit leave for a terminated connection.
func (h *EventHandler) HandleDisconnect(client *ws.Client) {
	h.tracker.Disconnect(client.Session)
}

func (h *EventHandler) handleRequestRooms(client *ws.Client, _ *ws.Event) error {
	return client.SendEvent(ws.TypeRoomsUpdated, h.dir.List())
}

func (h *EventHandler) handleJoinRoom(client *ws.Client, ev *ws.Event) error {
	var payload dto.JoinRoomPayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}

	name := sanitize.Clean(payload.Username, sanitize.NameLimit)
	if err := h.tracker.Join(client.Session, payload.RoomID, name); err != nil {
		client.SendEvent(ws.TypeJoinError, dto.JoinError{Error: joinErrorText(err)})
		return nil
	}

	h.hub.JoinRoom(client, payload.RoomID)
	client.SendEvent(ws.TypeJoinedOK, dto.JoinedOK{RoomID: payload.RoomID})

	if msgs := h.dir.History(payload.RoomID); len(msgs) > 0 {
		client.SendEvent(ws.TypeHistory, dto.HistoryPayload{RoomID: payload.RoomID, Messages: msgs})
	}
	return nil
}

func (h *EventHandler) handleSendMessage(client *ws.Client, ev *ws.Event) error {
	var payload dto.SendMessagePayload
	if err := json.Unmarshal(ev.Data, &payload); err != nil {
		return ws.ErrInvalidEvent
	}

	text := strings.TrimSpace(sanitize.Clean(payload.Text, sanitize.TextLimit))
	if text == "" {
		return nil
	}

	msg := models.ChatMessage{
		Username: client.Session.Name(),
		Text:     text,
		Ts:       time.Now(),
	}
	if err := h.dir.AppendMessage(payload.RoomID, msg); err != nil {
		// Room is gone; drop the message silently
		return nil
	}

	data, err := ws.Marshal(ws.TypeChatMessage, msg)
	if err != nil {
		return err
	}
	h.hub.SendToRoom(payload.RoomID, data)
	return nil
}

func (h *EventHandler) handleLeaveRoom(client *ws.Client, _ *ws.Event) error {
	roomID := client.Session.RoomID()
	if roomID == "" {
		return nil
	}

	h.tracker.Leave(client.Session)
	h.hub.LeaveRoom(client, roomID)
	return nil
}

// joinErrorText maps join failures to the messages clients display.
func joinErrorText(err error) string {
	switch {
	case errors.Is(err, directory.ErrRoomNotFound):
		return "room not found"
	case errors.Is(err, directory.ErrRoomFull):
		return "room full"
	case errors.Is(err, presence.ErrAlreadyJoined):
		return "already in a room"
	default:
		return err.Error()
	}
}
