package models

import (
	"time"
)

// Room is the authoritative record for a live room. Only the directory may
// mutate Occupancy and LastActivity; everyone else holds the room id and
// re-resolves through the directory before use.
type Room struct {
	ID           string
	Name         string
	Creator      string
	Tags         []string
	HasPassword  bool
	Password     string
	Capacity     int
	Occupancy    int
	CreatedAt    time.Time
	LastActivity time.Time
}

// View returns the public projection of the room. The raw password never
// leaves the server; clients only see the hasPassword flag.
func (r *Room) View() RoomView {
	return RoomView{
		ID:           r.ID,
		Name:         r.Name,
		Creator:      r.Creator,
		Tags:         append([]string(nil), r.Tags...),
		HasPassword:  r.HasPassword,
		Capacity:     r.Capacity,
		Occupancy:    r.Occupancy,
		CreatedAt:    r.CreatedAt,
		LastActivity: r.LastActivity,
	}
}

// RoomView is what listings serialize to clients.
type RoomView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Creator      string    `json:"creator"`
	Tags         []string  `json:"tags"`
	HasPassword  bool      `json:"hasPassword"`
	Capacity     int       `json:"capacity"`
	Occupancy    int       `json:"occupancy"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}
