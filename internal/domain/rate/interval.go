package rate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

var (
	ErrInvalidSpan   = errors.New("rate: to date must not precede from date")
	ErrInvalidAmount = errors.New("rate: amount out of range")
)

// Kind distinguishes price multipliers from percentage discounts.
type Kind string

const (
	KindPrice    Kind = "PRICE"
	KindDiscount Kind = "DISCOUNT"
)

// DayType classifies which days an interval applies to. CUSTOM intervals are
// explicitly date-bounded and override the recurring day types.
type DayType string

const (
	DayWeekday DayType = "WEEKDAY"
	DayWeekend DayType = "WEEKEND"
	DaySpecial DayType = "SPECIAL_DAY"
	DayCustom  DayType = "CUSTOM"
)

// Amount bounds. A PRICE amount multiplies the base nightly price
// (100 = unchanged); a DISCOUNT amount is a percentage reduction.
const (
	MinPriceAmount    = 100
	MaxPriceAmount    = 1000
	MinDiscountAmount = 0
	MaxDiscountAmount = 100
)

// Interval is one pricing or discount rule. For recurring day types a zero
// From/To means unbounded in that direction; CUSTOM intervals carry a closed
// range [From, To].
type Interval struct {
	ID      string
	RoomID  room.RoomID
	Kind    Kind
	DayType DayType
	Amount  int
	From    time.Time
	To      time.Time
}

// Contains reports whether the interval's bounds admit the given day. Zero
// bounds are open.
func (iv Interval) Contains(day time.Time) bool {
	day = daterange.Day(day)
	if !iv.From.IsZero() && day.Before(iv.From) {
		return false
	}
	if !iv.To.IsZero() && day.After(iv.To) {
		return false
	}
	return true
}

// Overlaps reports whether the closed interval shares a day with [from, to].
// Only meaningful for bounded (CUSTOM) intervals.
func (iv Interval) Overlaps(from, to time.Time) bool {
	return daterange.ClosedOverlap(iv.From, iv.To, from, to)
}

// Store persists rate intervals. It enforces nothing: keeping the CUSTOM
// set overlap-free is the reconciler's job.
type Store interface {
	Find(ctx context.Context, roomID room.RoomID, kind Kind, dayType DayType) ([]Interval, error)
	FindByFrom(ctx context.Context, roomID room.RoomID, kind Kind, dayType DayType, from time.Time) ([]Interval, error)
	FindByTo(ctx context.Context, roomID room.RoomID, kind Kind, dayType DayType, to time.Time) ([]Interval, error)
	Save(ctx context.Context, iv Interval) (Interval, error)
	SaveAll(ctx context.Context, ivs []Interval) error
	Delete(ctx context.Context, iv Interval) error
	DeleteAll(ctx context.Context, ivs []Interval) error
	DeleteByRoom(ctx context.Context, roomID room.RoomID) error
}

// ValidateAmount checks the percentage range for the given kind.
func ValidateAmount(kind Kind, amount int) error {
	switch kind {
	case KindPrice:
		if amount < MinPriceAmount || amount > MaxPriceAmount {
			return ErrInvalidAmount
		}
	case KindDiscount:
		if amount < MinDiscountAmount || amount > MaxDiscountAmount {
			return ErrInvalidAmount
		}
	default:
		return errors.New("rate: unknown kind")
	}
	return nil
}

// DefaultIntervals returns the six unbounded rules seeded when a room is
// created: price and discount for weekday, weekend and special days.
func DefaultIntervals(roomID room.RoomID) []Interval {
	dayTypes := []DayType{DayWeekday, DayWeekend, DaySpecial}
	out := make([]Interval, 0, 2*len(dayTypes))
	for _, dt := range dayTypes {
		out = append(out, Interval{
			ID:      uuid.NewString(),
			RoomID:  roomID,
			Kind:    KindPrice,
			DayType: dt,
			Amount:  MinPriceAmount,
		})
		out = append(out, Interval{
			ID:      uuid.NewString(),
			RoomID:  roomID,
			Kind:    KindDiscount,
			DayType: dt,
			Amount:  MinDiscountAmount,
		})
	}
	return out
}
