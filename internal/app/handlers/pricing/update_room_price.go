package pricing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/dto"
	"stayprice/internal/app/middleware"
	"stayprice/internal/app/outbox"
	"stayprice/internal/app/uow"
	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
	"stayprice/internal/domain/shared/events"
)

const updateRoomPriceKey = "pricing.update_room_price"

var ErrUnitOfWorkRequired = errors.New("pricing: unit of work required")

// UpdateRoomPriceCommand applies a custom rate over a closed date range,
// reconciling it against existing overlapping intervals.
type UpdateRoomPriceCommand struct {
	RoomID string
	Kind   domainrate.Kind
	Amount int
	From   time.Time
	To     time.Time
}

func (c UpdateRoomPriceCommand) Key() string { return updateRoomPriceKey }

func (c UpdateRoomPriceCommand) RoomScope() string { return c.RoomID }

func (c UpdateRoomPriceCommand) Validate() error {
	if c.RoomID == "" {
		return errors.New("pricing: room id required")
	}
	return c.proposal().Validate()
}

func (c UpdateRoomPriceCommand) proposal() domainrate.Proposal {
	return domainrate.Proposal{
		RoomID: domainroom.RoomID(c.RoomID),
		Kind:   c.Kind,
		Amount: c.Amount,
		From:   daterange.Day(c.From),
		To:     daterange.Day(c.To),
	}
}

type UpdateRoomPriceResult struct {
	RoomID    string            `json:"room_id"`
	Overwrote *dto.RateConflict `json:"overwrote,omitempty"`
}

type UpdateRoomPriceHandler struct {
	Logger     *slog.Logger
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateRoomPriceHandler) Handle(ctx context.Context, cmd UpdateRoomPriceCommand) (*UpdateRoomPriceResult, error) {
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

	proposal := cmd.proposal()
	store := unit.Rates()

	// the room must exist; a rate change for a deleted room is a caller bug
	if _, err := unit.Rooms().ByID(ctx, proposal.RoomID); err != nil {
		return nil, err
	}

	conflict, found, err := domainrate.DetectConflicts(ctx, store, proposal)
	if err != nil {
		return nil, err
	}

	if err := domainrate.NewReconciler(store).Apply(ctx, proposal); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := domainrate.RateChanged{
		RoomID: proposal.RoomID,
		Kind:   proposal.Kind,
		Amount: proposal.Amount,
		From:   proposal.From,
		To:     proposal.To,
		At:     now,
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []events.DomainEvent{event}); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	result := &UpdateRoomPriceResult{RoomID: cmd.RoomID}
	if found {
		result.Overwrote = &dto.RateConflict{Overlaps: conflict.Count, MinFrom: conflict.MinFrom, MaxTo: conflict.MaxTo}
	}
	if h.Logger != nil {
		h.Logger.Info("room rate reconciled", "room_id", cmd.RoomID, "kind", cmd.Kind, "amount", cmd.Amount, "overlaps", conflict.Count)
	}
	return result, nil
}

func (h *UpdateRoomPriceHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[UpdateRoomPriceCommand, *UpdateRoomPriceResult] = (*UpdateRoomPriceHandler)(nil)
var _ middleware.RoomScopedCommand = UpdateRoomPriceCommand{}
