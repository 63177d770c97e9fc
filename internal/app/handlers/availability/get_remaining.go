package availability

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/app/dto"
	handlersupport "stayprice/internal/app/handlers/support"
	"stayprice/internal/app/queries"
	"stayprice/internal/app/uow"
	domainavailability "stayprice/internal/domain/availability"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

const getRemainingKey = "availability.get_remaining"

// GetRemainingCapacityQuery asks how many units of a room stay bookable on
// every day of the closed range [From, To]. Strict additionally treats unpaid
// requests as not holding inventory.
type GetRemainingCapacityQuery struct {
	RoomID string
	From   time.Time
	To     time.Time
	Strict bool
}

func (q GetRemainingCapacityQuery) Key() string { return getRemainingKey }

type GetRemainingCapacityHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetRemainingCapacityHandler) Handle(ctx context.Context, q GetRemainingCapacityQuery) (dto.Availability, error) {
	var zero dto.Availability
	if q.RoomID == "" {
		return zero, errors.New("availability: room id required")
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

	checker := domainavailability.NewChecker(unit.Rooms(), unit.Bookings())
	var remaining int
	if q.Strict {
		remaining, err = checker.RemainingPaidCapacity(execCtx, roomID, q.From, q.To)
	} else {
		remaining, err = checker.RemainingCapacity(execCtx, roomID, q.From, q.To)
	}
	if err != nil {
		return zero, err
	}

	return dto.Availability{
		RoomID:    q.RoomID,
		From:      daterange.Day(q.From),
		To:        daterange.Day(q.To),
		Capacity:  rm.Capacity,
		Remaining: remaining,
	}, nil
}

var _ queries.Handler[GetRemainingCapacityQuery, dto.Availability] = (*GetRemainingCapacityHandler)(nil)
