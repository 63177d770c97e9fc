package rooms

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/outbox"
	"stayprice/internal/app/uow"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/events"
	"stayprice/internal/domain/shared/money"
)

const (
	updateBasePriceKey = "rooms.update_base_price"
	deleteRoomKey      = "rooms.delete"
)

// UpdateBasePriceCommand changes the base nightly price rate rules multiply.
type UpdateBasePriceCommand struct {
	RoomID    string
	BasePrice int64
}

func (c UpdateBasePriceCommand) Key() string { return updateBasePriceKey }

func (c UpdateBasePriceCommand) Validate() error {
	if c.RoomID == "" {
		return errors.New("rooms: room id required")
	}
	if c.BasePrice <= 0 {
		return domainroom.ErrInvalidBasePrice
	}
	return nil
}

type UpdateBasePriceHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateBasePriceHandler) Handle(ctx context.Context, cmd UpdateBasePriceCommand) (*domainroom.Room, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, ErrUnitOfWorkRequired
	}
	rm, err := unit.Rooms().ByID(ctx, domainroom.RoomID(cmd.RoomID))
	if err != nil {
		return nil, err
	}
	if err := rm.ChangeBasePrice(money.VND(cmd.BasePrice), time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}
	evs := rm.PendingEvents()
	rm.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), evs); err != nil {
		return nil, err
	}
	return rm, nil
}

func (h *UpdateBasePriceHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

// DeleteRoomCommand removes a room together with all its rate intervals.
type DeleteRoomCommand struct {
	RoomID string
}

func (c DeleteRoomCommand) Key() string { return deleteRoomKey }

func (c DeleteRoomCommand) Validate() error {
	if c.RoomID == "" {
		return errors.New("rooms: room id required")
	}
	return nil
}

type DeleteRoomHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *DeleteRoomHandler) Handle(ctx context.Context, cmd DeleteRoomCommand) (struct{}, error) {
	var zero struct{}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return zero, ErrUnitOfWorkRequired
	}
	id := domainroom.RoomID(cmd.RoomID)
	if _, err := unit.Rooms().ByID(ctx, id); err != nil {
		return zero, err
	}
	if err := unit.Rates().DeleteByRoom(ctx, id); err != nil {
		return zero, err
	}
	if err := unit.Rooms().Delete(ctx, id); err != nil {
		return zero, err
	}
	now := time.Now().UTC()
	ev := domainroom.RoomDeleted{RoomID: id, At: now}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), []events.DomainEvent{ev}); err != nil {
		return zero, err
	}
	return zero, nil
}

func (h *DeleteRoomHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[UpdateBasePriceCommand, *domainroom.Room] = (*UpdateBasePriceHandler)(nil)
var _ commands.Handler[DeleteRoomCommand, struct{}] = (*DeleteRoomHandler)(nil)
