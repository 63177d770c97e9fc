package pricing

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/app/dto"
	handlersupport "stayprice/internal/app/handlers/support"
	"stayprice/internal/app/queries"
	"stayprice/internal/app/uow"
	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

const validateRoomPriceKey = "pricing.validate_room_price"

// ValidateRoomPriceQuery runs the reconciler's overlap scan without mutating
// anything, so an owner can see what a rate change would overwrite.
type ValidateRoomPriceQuery struct {
	RoomID string
	Kind   domainrate.Kind
	Amount int
	From   time.Time
	To     time.Time
}

func (q ValidateRoomPriceQuery) Key() string { return validateRoomPriceKey }

type ValidateRoomPriceHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ValidateRoomPriceHandler) Handle(ctx context.Context, q ValidateRoomPriceQuery) (dto.RateValidation, error) {
	var zero dto.RateValidation
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

	proposal := domainrate.Proposal{
		RoomID: domainroom.RoomID(q.RoomID),
		Kind:   q.Kind,
		Amount: q.Amount,
		From:   daterange.Day(q.From),
		To:     daterange.Day(q.To),
	}
	conflict, found, err := domainrate.DetectConflicts(execCtx, unit.Rates(), proposal)
	if err != nil {
		return zero, err
	}
	result := dto.RateValidation{RoomID: q.RoomID, Valid: !found}
	if found {
		result.Conflict = &dto.RateConflict{Overlaps: conflict.Count, MinFrom: conflict.MinFrom, MaxTo: conflict.MaxTo}
	}
	return result, nil
}

var _ queries.Handler[ValidateRoomPriceQuery, dto.RateValidation] = (*ValidateRoomPriceHandler)(nil)
