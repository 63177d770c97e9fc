package booking

import (
	"context"
	"errors"

	"stayprice/internal/app/dto"
	handlersupport "stayprice/internal/app/handlers/support"
	"stayprice/internal/app/queries"
	"stayprice/internal/app/uow"
	domainbooking "stayprice/internal/domain/booking"
)

const getBookingKey = "booking.get"

type GetBookingQuery struct {
	BookingID string
}

func (q GetBookingQuery) Key() string { return getBookingKey }

type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (dto.Booking, error) {
	var zero dto.Booking
	if q.BookingID == "" {
		return zero, errors.New("booking: id required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return zero, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	req, err := unit.Bookings().ByID(execCtx, domainbooking.RequestID(q.BookingID))
	if err != nil {
		return zero, err
	}

	lines := make([]dto.BookingLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, dto.BookingLine{RoomID: string(l.RoomID), Units: l.Units})
	}
	return dto.Booking{
		ID:          string(req.ID),
		GuestID:     req.GuestID,
		CheckIn:     req.Range.CheckIn,
		CheckOut:    req.Range.CheckOut,
		Status:      string(req.Status),
		Lines:       lines,
		TotalPrice:  req.Total.Amount,
		Currency:    req.Total.Currency,
		RequestedAt: req.CreatedAt,
	}, nil
}

var _ queries.Handler[GetBookingQuery, dto.Booking] = (*GetBookingHandler)(nil)
