package dto

import "time"

type Room struct {
	ID              string    `json:"id"`
	AccommodationID string    `json:"accommodation_id"`
	Name            string    `json:"name"`
	Capacity        int       `json:"capacity"`
	BasePrice       int64     `json:"base_price"`
	Currency        string    `json:"currency"`
	CreatedAt       time.Time `json:"created_at"`
}
