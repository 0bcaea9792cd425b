package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/roomhub/internal/admission"
	"github.com/thereayou/roomhub/internal/directory"
	"github.com/thereayou/roomhub/internal/handlers/dto"
	"github.com/thereayou/roomhub/internal/sanitize"
)

type RoomHandler struct {
	dir  *directory.Directory
	gate *admission.Gate
}

func NewRoomHandler(dir *directory.Directory, gate *admission.Gate) *RoomHandler {
	return &RoomHandler{dir: dir, gate: gate}
}

// ListRooms returns the public view of every live room.
func (h *RoomHandler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.dir.List())
}

// CreateRoom registers a new room from sanitized input.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.dir.Create(directory.CreateParams{
		Name:     sanitize.Clean(req.Name, sanitize.TextLimit),
		Creator:  sanitize.Clean(req.Creator, sanitize.NameLimit),
		Tags:     sanitize.CleanTags(req.Tags),
		Capacity: req.Max,
		Password: sanitize.Clean(req.Password, sanitize.PasswordLimit),
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room name required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": room.ID})
}

// PreflightJoin validates a join attempt without consuming a slot. A passing
// check is advisory only: the real join claims the slot and can still be
// rejected Full.
func (h *RoomHandler) PreflightJoin(c *gin.Context) {
	var req dto.PreflightJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.gate.Check(req.RoomID, req.Password)
	switch {
	case errors.Is(err, directory.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, admission.ErrWrongPassword):
		c.JSON(http.StatusForbidden, gin.H{"error": "wrong password"})
	case errors.Is(err, directory.ErrRoomFull):
		c.JSON(http.StatusForbidden, gin.H{"error": "room full"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "join check failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
