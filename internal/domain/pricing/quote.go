package pricing

import (
	"context"

	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
	"stayprice/internal/domain/shared/money"
)

// RoomQuote aggregates resolved nightly prices of one room over a stay.
type RoomQuote struct {
	RoomID            room.RoomID
	Nights            int
	Days              []DayQuote
	TotalPrice        money.Money
	TotalDisplayPrice money.Money
}

// StayQuote sums room quotes for a multi-room stay.
type StayQuote struct {
	Rooms             []RoomQuote
	TotalPrice        money.Money
	TotalDisplayPrice money.Money
}

// QuoteRoom prices a stay for a single room. The stay range is half-open:
// the checkout day is not charged.
func (r *Resolver) QuoteRoom(ctx context.Context, roomID room.RoomID, dr daterange.DateRange) (RoomQuote, error) {
	if err := dr.Validate(); err != nil {
		return RoomQuote{}, err
	}
	rm, err := r.Rooms.ByID(ctx, roomID)
	if err != nil {
		return RoomQuote{}, err
	}
	currency := rm.BasePrice.Currency
	q := RoomQuote{RoomID: roomID, TotalPrice: money.Money{Currency: currency}, TotalDisplayPrice: money.Money{Currency: currency}}
	for _, day := range dr.Days() {
		dq, err := r.resolveDay(ctx, rm, day)
		if err != nil {
			return RoomQuote{}, err
		}
		q.Days = append(q.Days, dq)
		q.TotalPrice.Amount += dq.Price
		q.TotalDisplayPrice.Amount += dq.DisplayPrice
	}
	q.Nights = len(q.Days)
	return q, nil
}

// QuoteStay prices a stay across several rooms and sums the totals.
func (r *Resolver) QuoteStay(ctx context.Context, roomIDs []room.RoomID, dr daterange.DateRange) (StayQuote, error) {
	var stay StayQuote
	for _, id := range roomIDs {
		rq, err := r.QuoteRoom(ctx, id, dr)
		if err != nil {
			return StayQuote{}, err
		}
		stay.Rooms = append(stay.Rooms, rq)
		if stay.TotalPrice.Currency == "" {
			stay.TotalPrice.Currency = rq.TotalPrice.Currency
			stay.TotalDisplayPrice.Currency = rq.TotalDisplayPrice.Currency
		}
		stay.TotalPrice.Amount += rq.TotalPrice.Amount
		stay.TotalDisplayPrice.Amount += rq.TotalDisplayPrice.Amount
	}
	return stay, nil
}
