package room

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/domain/shared/events"
	"stayprice/internal/domain/shared/money"
)

var (
	ErrInvalidCapacity  = errors.New("room: capacity must be positive")
	ErrInvalidBasePrice = errors.New("room: base price must be positive")
	ErrRoomNotFound     = errors.New("room: not found")
)

type RoomID string

// Room carries the inventory count and base nightly price the pricing and
// availability engines read. Version backs optimistic writes so concurrent
// bookings cannot both pass a stale capacity check.
type Room struct {
	ID              RoomID
	AccommodationID string
	Name            string
	Capacity        int
	BasePrice       money.Money
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	Save(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id RoomID) error
}

type CreateParams struct {
	ID              RoomID
	AccommodationID string
	Name            string
	Capacity        int
	BasePrice       money.Money
	CreatedAt       time.Time
}

func NewRoom(params CreateParams) (*Room, error) {
	if params.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if params.BasePrice.Amount <= 0 {
		return nil, ErrInvalidBasePrice
	}
	if params.Name == "" {
		return nil, errors.New("room: name required")
	}
	now := params.CreatedAt.UTC()
	r := &Room{
		ID:              params.ID,
		AccommodationID: params.AccommodationID,
		Name:            params.Name,
		Capacity:        params.Capacity,
		BasePrice:       params.BasePrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.Record(RoomCreated{RoomID: r.ID, AccommodationID: r.AccommodationID, Capacity: r.Capacity, BasePrice: r.BasePrice.Amount, At: now})
	return r, nil
}

func (r *Room) ChangeBasePrice(price money.Money, now time.Time) error {
	if price.Amount <= 0 {
		return ErrInvalidBasePrice
	}
	previous := r.BasePrice
	r.BasePrice = price
	r.UpdatedAt = now.UTC()
	r.Record(RoomBasePriceChanged{RoomID: r.ID, Previous: previous.Amount, Current: price.Amount, At: r.UpdatedAt})
	return nil
}
