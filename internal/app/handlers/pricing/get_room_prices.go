package pricing

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/app/dto"
	handlersupport "stayprice/internal/app/handlers/support"
	"stayprice/internal/app/queries"
	"stayprice/internal/app/uow"
	domainpricing "stayprice/internal/domain/pricing"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

const getRoomPricesKey = "pricing.get_room_prices"

// GetRoomPricesQuery resolves the effective nightly price of a room for
// every day in the closed range [From, To].
type GetRoomPricesQuery struct {
	RoomID string
	From   time.Time
	To     time.Time
}

func (q GetRoomPricesQuery) Key() string { return getRoomPricesKey }

type GetRoomPricesHandler struct {
	UoWFactory uow.UoWFactory
	Calendar   domainpricing.SpecialDayCalendar
}

func (h *GetRoomPricesHandler) Handle(ctx context.Context, q GetRoomPricesQuery) (dto.RoomPrices, error) {
	var zero dto.RoomPrices
	if q.RoomID == "" {
		return zero, errors.New("pricing: room id required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	roomID := domainroom.RoomID(q.RoomID)
	rm, err := unit.Rooms().ByID(execCtx, roomID)
	if err != nil {
		return zero, err
	}

	resolver := domainpricing.NewResolver(unit.Rates(), unit.Rooms(), h.Calendar)
	days, err := resolver.ResolvePrices(execCtx, roomID, q.From, q.To)
	if err != nil {
		return zero, err
	}

	result := dto.RoomPrices{
		RoomID:   q.RoomID,
		From:     daterange.Day(q.From),
		To:       daterange.Day(q.To),
		Currency: rm.BasePrice.Currency,
	}
	for _, d := range days {
		result.Days = append(result.Days, dto.DayPrice{
			Day:            d.Day,
			DayType:        string(d.DayType),
			PriceAmount:    d.PriceAmount,
			DiscountAmount: d.DiscountAmount,
			Price:          d.Price,
			DisplayPrice:   d.DisplayPrice,
		})
		result.TotalPrice += d.Price
		result.TotalDisplayPrice += d.DisplayPrice
	}
	return result, nil
}

var _ queries.Handler[GetRoomPricesQuery, dto.RoomPrices] = (*GetRoomPricesHandler)(nil)
