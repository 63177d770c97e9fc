package rate

import (
	"time"

	"stayprice/internal/domain/room"
)

type RateChanged struct {
	RoomID room.RoomID
	Kind   Kind
	Amount int
	From   time.Time
	To     time.Time
	At     time.Time
}

func (e RateChanged) EventName() string     { return "rate.changed" }
func (e RateChanged) AggregateID() string   { return string(e.RoomID) }
func (e RateChanged) OccurredAt() time.Time { return e.At }

type RateDefaultsSeeded struct {
	RoomID room.RoomID
	Count  int
	At     time.Time
}

func (e RateDefaultsSeeded) EventName() string     { return "rate.defaults_seeded" }
func (e RateDefaultsSeeded) AggregateID() string   { return string(e.RoomID) }
func (e RateDefaultsSeeded) OccurredAt() time.Time { return e.At }
