package dto

import "time"

// Availability reports the tightest remaining capacity of a room over a
// stay range.
type Availability struct {
	RoomID    string    `json:"room_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
	Capacity  int       `json:"capacity"`
	Remaining int       `json:"remaining"`
}
