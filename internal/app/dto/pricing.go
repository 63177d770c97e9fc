package dto

import "time"

// DayPrice is the resolved price of one room for one day.
type DayPrice struct {
	Day            time.Time `json:"day"`
	DayType        string    `json:"day_type"`
	PriceAmount    int       `json:"price_amount"`
	DiscountAmount int       `json:"discount_amount"`
	Price          int64     `json:"price"`
	DisplayPrice   int64     `json:"display_price"`
}

// RoomPrices is the ranged resolution result for one room.
type RoomPrices struct {
	RoomID            string     `json:"room_id"`
	From              time.Time  `json:"from"`
	To                time.Time  `json:"to"`
	Days              []DayPrice `json:"days"`
	TotalPrice        int64      `json:"total_price"`
	TotalDisplayPrice int64      `json:"total_display_price"`
	Currency          string     `json:"currency"`
}

// RateConflict names the overlapping span found by a pre-flight validation.
type RateConflict struct {
	Overlaps int       `json:"overlaps"`
	MinFrom  time.Time `json:"min_from"`
	MaxTo    time.Time `json:"max_to"`
}

// RateValidation is the result of the non-mutating validate operation.
type RateValidation struct {
	RoomID   string        `json:"room_id"`
	Valid    bool          `json:"valid"`
	Conflict *RateConflict `json:"conflict,omitempty"`
}
