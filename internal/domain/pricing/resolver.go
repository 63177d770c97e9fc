package pricing

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/domain/rate"
	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

var (
	ErrStoreMissing = errors.New("pricing: rate store missing")
	ErrRoomsMissing = errors.New("pricing: room repository missing")
)

// Defaults used when a room has no matching rate rows. Missing data is a
// valid state, not an error.
const (
	DefaultPriceAmount    = 100
	DefaultDiscountAmount = 0
)

// DayQuote is the resolved price of one room for one calendar day.
type DayQuote struct {
	Day            time.Time
	DayType        rate.DayType
	PriceAmount    int
	DiscountAmount int
	Price          int64
	DisplayPrice   int64
}

// Resolver computes effective nightly prices from layered rate intervals.
// CUSTOM intervals override the recurring weekday/weekend/special-day rules.
type Resolver struct {
	Store    rate.Store
	Rooms    room.Repository
	Calendar SpecialDayCalendar
}

func NewResolver(store rate.Store, rooms room.Repository, cal SpecialDayCalendar) *Resolver {
	return &Resolver{Store: store, Rooms: rooms, Calendar: cal}
}

// ResolvePrice resolves a single day for a room.
func (r *Resolver) ResolvePrice(ctx context.Context, roomID room.RoomID, day time.Time) (DayQuote, error) {
	if r.Store == nil {
		return DayQuote{}, ErrStoreMissing
	}
	if r.Rooms == nil {
		return DayQuote{}, ErrRoomsMissing
	}
	rm, err := r.Rooms.ByID(ctx, roomID)
	if err != nil {
		return DayQuote{}, err
	}
	return r.resolveDay(ctx, rm, day)
}

// ResolvePrices resolves every day in the closed range [from, to].
func (r *Resolver) ResolvePrices(ctx context.Context, roomID room.RoomID, from, to time.Time) ([]DayQuote, error) {
	if r.Store == nil {
		return nil, ErrStoreMissing
	}
	if r.Rooms == nil {
		return nil, ErrRoomsMissing
	}
	if daterange.Day(to).Before(daterange.Day(from)) {
		return nil, rate.ErrInvalidSpan
	}
	rm, err := r.Rooms.ByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	days := daterange.ClosedDays(from, to)
	out := make([]DayQuote, 0, len(days))
	for _, day := range days {
		q, err := r.resolveDay(ctx, rm, day)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (r *Resolver) resolveDay(ctx context.Context, rm *room.Room, day time.Time) (DayQuote, error) {
	day = daterange.Day(day)
	dayType, err := ClassifyDay(ctx, r.Calendar, rm.ID, day)
	if err != nil {
		return DayQuote{}, err
	}

	priceAmount, found, err := r.amountFor(ctx, rm.ID, rate.KindPrice, dayType, day)
	if err != nil {
		return DayQuote{}, err
	}
	if !found {
		priceAmount = DefaultPriceAmount
	}
	discountAmount, found, err := r.amountFor(ctx, rm.ID, rate.KindDiscount, dayType, day)
	if err != nil {
		return DayQuote{}, err
	}
	if !found {
		discountAmount = DefaultDiscountAmount
	}

	// integer arithmetic throughout; truncating division matches the
	// reference computation
	price := rm.BasePrice.Amount * int64(priceAmount) / 100
	display := price * int64(100-discountAmount) / 100
	return DayQuote{
		Day:            day,
		DayType:        dayType,
		PriceAmount:    priceAmount,
		DiscountAmount: discountAmount,
		Price:          price,
		DisplayPrice:   display,
	}, nil
}

// amountFor looks up the governing amount of one kind for one day: a CUSTOM
// interval containing the day wins, otherwise the recurring rule for the
// day's classification whose bounds admit the day. Among several recurring
// candidates the one with the latest from date not exceeding the day wins;
// an unbounded from is the weakest candidate.
func (r *Resolver) amountFor(ctx context.Context, roomID room.RoomID, kind rate.Kind, dayType rate.DayType, day time.Time) (int, bool, error) {
	custom, err := r.Store.Find(ctx, roomID, kind, rate.DayCustom)
	if err != nil {
		return 0, false, err
	}
	for _, iv := range custom {
		if iv.From.IsZero() || iv.To.IsZero() {
			continue
		}
		if iv.Contains(day) {
			return iv.Amount, true, nil
		}
	}

	recurring, err := r.Store.Find(ctx, roomID, kind, dayType)
	if err != nil {
		return 0, false, err
	}
	best := -1
	for i, iv := range recurring {
		if !iv.Contains(day) {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		if recurring[best].From.IsZero() && !iv.From.IsZero() {
			best = i
			continue
		}
		if !iv.From.IsZero() && iv.From.After(recurring[best].From) {
			best = i
		}
	}
	if best == -1 {
		return 0, false, nil
	}
	return recurring[best].Amount, true, nil
}
