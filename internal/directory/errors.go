package directory

import "errors"

var (
	ErrNameRequired = errors.New("room name required")
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)
