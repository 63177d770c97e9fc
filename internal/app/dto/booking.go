package dto

import "time"

type BookingLine struct {
	RoomID string `json:"room_id"`
	Units  int    `json:"units"`
}

type Booking struct {
	ID          string        `json:"id"`
	GuestID     string        `json:"guest_id"`
	CheckIn     time.Time     `json:"check_in"`
	CheckOut    time.Time     `json:"check_out"`
	Status      string        `json:"status"`
	Lines       []BookingLine `json:"lines"`
	TotalPrice  int64         `json:"total_price"`
	Currency    string        `json:"currency"`
	RequestedAt time.Time     `json:"requested_at"`
}
