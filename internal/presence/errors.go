package presence

import "errors"

var (
	ErrAlreadyJoined = errors.New("session already joined to another room")
)
