package uow

import (
	"context"

	domainbooking "stayprice/internal/domain/booking"
	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Rooms() domainroom.Repository
	Rates() domainrate.Store
	Bookings() domainbooking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
