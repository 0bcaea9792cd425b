package dto

// CreateRoomRequest is the POST /rooms body. Tags arrive comma-separated.
type CreateRoomRequest struct {
	Name     string `json:"name"`
	Creator  string `json:"creator"`
	Tags     string `json:"tags"`
	Max      int    `json:"max"`
	Password string `json:"password"`
}

// PreflightJoinRequest is the POST /join body.
type PreflightJoinRequest struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
}
