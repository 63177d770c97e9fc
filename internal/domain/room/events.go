package room

import "time"

type RoomCreated struct {
	RoomID          RoomID
	AccommodationID string
	Capacity        int
	BasePrice       int64
	At              time.Time
}

func (e RoomCreated) EventName() string     { return "room.created" }
func (e RoomCreated) AggregateID() string   { return string(e.RoomID) }
func (e RoomCreated) OccurredAt() time.Time { return e.At }

type RoomBasePriceChanged struct {
	RoomID   RoomID
	Previous int64
	Current  int64
	At       time.Time
}

func (e RoomBasePriceChanged) EventName() string     { return "room.base_price_changed" }
func (e RoomBasePriceChanged) AggregateID() string   { return string(e.RoomID) }
func (e RoomBasePriceChanged) OccurredAt() time.Time { return e.At }

type RoomDeleted struct {
	RoomID RoomID
	At     time.Time
}

func (e RoomDeleted) EventName() string     { return "room.deleted" }
func (e RoomDeleted) AggregateID() string   { return string(e.RoomID) }
func (e RoomDeleted) OccurredAt() time.Time { return e.At }
