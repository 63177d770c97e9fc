package rooms

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/outbox"
	"stayprice/internal/app/uow"
	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/money"
)

const createRoomKey = "rooms.create"

var ErrUnitOfWorkRequired = errors.New("rooms: unit of work required")

// CreateRoomCommand registers a room and seeds its six default rate rules
// (price and discount for weekday, weekend and special days).
type CreateRoomCommand struct {
	CommandID       string
	AccommodationID string
	Name            string
	Capacity        int
	BasePrice       int64
}

func (c CreateRoomCommand) Key() string { return createRoomKey }

func (c CreateRoomCommand) Validate() error {
	if c.AccommodationID == "" {
		return errors.New("rooms: accommodation id required")
	}
	if c.Name == "" {
		return errors.New("rooms: name required")
	}
	if c.Capacity <= 0 {
		return domainroom.ErrInvalidCapacity
	}
	if c.BasePrice <= 0 {
		return domainroom.ErrInvalidBasePrice
	}
	return nil
}

type CreateRoomResult struct {
	RoomID string `json:"room_id"`
}

type CreateRoomHandler struct {
	Logger     *slog.Logger
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreateRoomHandler) Handle(ctx context.Context, cmd CreateRoomCommand) (*CreateRoomResult, error) {
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

	id := cmd.CommandID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	rm, err := domainroom.NewRoom(domainroom.CreateParams{
		ID:              domainroom.RoomID(id),
		AccommodationID: cmd.AccommodationID,
		Name:            cmd.Name,
		Capacity:        cmd.Capacity,
		BasePrice:       money.VND(cmd.BasePrice),
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}

	defaults := domainrate.DefaultIntervals(rm.ID)
	if err := unit.Rates().SaveAll(ctx, defaults); err != nil {
		return nil, err
	}
	rm.Record(domainrate.RateDefaultsSeeded{RoomID: rm.ID, Count: len(defaults), At: now})

	evs := rm.PendingEvents()
	rm.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), evs); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	if h.Logger != nil {
		h.Logger.Info("room created", "room_id", rm.ID, "accommodation_id", cmd.AccommodationID, "capacity", cmd.Capacity)
	}
	return &CreateRoomResult{RoomID: string(rm.ID)}, nil
}

func (h *CreateRoomHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[CreateRoomCommand, *CreateRoomResult] = (*CreateRoomHandler)(nil)
