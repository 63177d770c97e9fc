package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/middleware"
	"stayprice/internal/app/outbox"
	"stayprice/internal/app/uow"
	domainavailability "stayprice/internal/domain/availability"
	domainbooking "stayprice/internal/domain/booking"
	domainpricing "stayprice/internal/domain/pricing"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
	"stayprice/internal/domain/shared/money"
)

const requestBookingKey = "booking.request"

var (
	ErrUnitOfWorkRequired = errors.New("booking: unit of work required")
	ErrInsufficientRooms  = errors.New("booking: not enough rooms available")
)

// BookingLine is one room line of a booking request.
type BookingLine struct {
	RoomID string
	Units  int
}

// RequestBookingCommand quotes a stay and reserves inventory. The capacity
// check runs inside the same unit of work as the booking write so two
// concurrent requests cannot both pass on stale data.
type RequestBookingCommand struct {
	CommandID       string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	Lines           []BookingLine
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

func (c RequestBookingCommand) Validate() error {
	if c.GuestID == "" {
		return errors.New("booking: guest id required")
	}
	if len(c.Lines) == 0 {
		return domainbooking.ErrNoLines
	}
	for _, l := range c.Lines {
		if l.RoomID == "" {
			return errors.New("booking: line room id required")
		}
		if l.Units <= 0 {
			return domainbooking.ErrInvalidUnits
		}
	}
	_, err := daterange.New(c.CheckIn, c.CheckOut)
	return err
}

type RequestBookingResult struct {
	BookingID  string `json:"booking_id"`
	TotalPrice int64  `json:"total_price"`
}

type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Calendar   domainpricing.SpecialDayCalendar
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	dr, err := daterange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}

	checker := domainavailability.NewChecker(unit.Rooms(), unit.Bookings())
	lastNight := daterange.PrevDay(dr.CheckOut)
	for _, line := range cmd.Lines {
		remaining, err := checker.RemainingCapacity(ctx, domainroom.RoomID(line.RoomID), dr.CheckIn, lastNight)
		if err != nil {
			return nil, err
		}
		if remaining < line.Units {
			return nil, fmt.Errorf("%w: room %s has %d left", ErrInsufficientRooms, line.RoomID, remaining)
		}
	}

	resolver := domainpricing.NewResolver(unit.Rates(), unit.Rooms(), h.Calendar)
	var total int64
	currency := ""
	lines := make([]domainbooking.Line, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		rq, err := resolver.QuoteRoom(ctx, domainroom.RoomID(line.RoomID), dr)
		if err != nil {
			return nil, err
		}
		total += rq.TotalDisplayPrice.Amount * int64(line.Units)
		if currency == "" {
			currency = rq.TotalDisplayPrice.Currency
		}
		lines = append(lines, domainbooking.Line{RoomID: domainroom.RoomID(line.RoomID), Units: line.Units})
	}

	id := cmd.CommandID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	req, err := domainbooking.NewRequest(domainbooking.CreateParams{
		ID:        domainbooking.RequestID(id),
		GuestID:   cmd.GuestID,
		Range:     dr,
		Lines:     lines,
		Total:     moneyOf(total, currency),
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Bookings().Save(ctx, req); err != nil {
		return nil, err
	}

	evs := req.PendingEvents()
	req.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), evs); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RequestBookingResult{BookingID: string(req.ID), TotalPrice: total}, nil
}

func moneyOf(amount int64, currency string) money.Money {
	if currency == "" {
		return money.VND(amount)
	}
	return money.Money{Amount: amount, Currency: currency}
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = RequestBookingCommand{}
