package availability

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/domain/booking"
	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

var (
	ErrBookingsMissing = errors.New("availability: booking repository missing")
	ErrRoomsMissing    = errors.New("availability: room repository missing")
)

// ExcludedStatuses lists booking statuses that never hold inventory.
var ExcludedStatuses = []booking.Status{booking.StatusCanceled, booking.StatusRejected}

// StrictExcludedStatuses additionally drops unpaid requests, matching the
// query variant used for hard availability guarantees.
var StrictExcludedStatuses = []booking.Status{booking.StatusCanceled, booking.StatusRejected, booking.StatusUnpurchased}

// Checker answers how many units of a room remain bookable over a stay
// range. The tightest day governs.
type Checker struct {
	Rooms    room.Repository
	Bookings booking.Repository
}

func NewChecker(rooms room.Repository, bookings booking.Repository) *Checker {
	return &Checker{Rooms: rooms, Bookings: bookings}
}

// RemainingCapacity returns the minimum over every day in the closed range
// [from, to] of the room's capacity minus reserved units. Bookings with an
// excluded status do not count. Bookings themselves stay half-open, so a stay
// checking out on a queried day holds nothing on it.
func (c *Checker) RemainingCapacity(ctx context.Context, roomID room.RoomID, from, to time.Time) (int, error) {
	return c.remaining(ctx, roomID, from, to, ExcludedStatuses)
}

// RemainingPaidCapacity is the strict variant: unpaid requests do not hold
// inventory either.
func (c *Checker) RemainingPaidCapacity(ctx context.Context, roomID room.RoomID, from, to time.Time) (int, error) {
	return c.remaining(ctx, roomID, from, to, StrictExcludedStatuses)
}

func (c *Checker) remaining(ctx context.Context, roomID room.RoomID, from, to time.Time, excluded []booking.Status) (int, error) {
	if c.Rooms == nil {
		return 0, ErrRoomsMissing
	}
	if c.Bookings == nil {
		return 0, ErrBookingsMissing
	}
	from, to = daterange.Day(from), daterange.Day(to)
	if from.After(to) {
		return 0, daterange.ErrInvalidRange
	}
	rm, err := c.Rooms.ByID(ctx, roomID)
	if err != nil {
		return 0, err
	}
	// widen the lookup by one day so stays arriving on the last queried day
	// are seen
	lines, err := c.Bookings.FindOverlapping(ctx, roomID, from, daterange.NextDay(to))
	if err != nil {
		return 0, err
	}

	remaining := rm.Capacity
	for _, day := range daterange.ClosedDays(from, to) {
		reserved := 0
		for _, line := range lines {
			if statusIn(line.Status, excluded) {
				continue
			}
			if line.Range.CoversDay(day) {
				reserved += line.Units
			}
		}
		if left := rm.Capacity - reserved; left < remaining {
			remaining = left
		}
	}
	return remaining, nil
}

func statusIn(s booking.Status, set []booking.Status) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
