package memory

import (
	"context"

	"stayprice/internal/app/uow"
	domainbooking "stayprice/internal/domain/booking"
	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
)

// Factory hands out units of work backed by the shared in-memory stores.
// There is no real transaction: commits and rollbacks are no-ops, which is
// acceptable for local runs and tests.
type Factory struct {
	RoomRepo    *RoomRepository
	RateStore   *RateStore
	BookingRepo *BookingRepository
}

func NewFactory() *Factory {
	return &Factory{
		RoomRepo:    NewRoomRepository(),
		RateStore:   NewRateStore(),
		BookingRepo: NewBookingRepository(),
	}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return &Unit{factory: f}, nil
}

type Unit struct {
	factory *Factory
}

func (u *Unit) Rooms() domainroom.Repository {
	return u.factory.RoomRepo
}

func (u *Unit) Rates() domainrate.Store {
	return u.factory.RateStore
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.factory.BookingRepo
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}

var _ uow.UoWFactory = (*Factory)(nil)
