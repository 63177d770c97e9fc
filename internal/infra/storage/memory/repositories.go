package memory

import (
	"context"
	"sync"
	"time"

	domainbooking "stayprice/internal/domain/booking"
	domainroom "stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

// RoomRepository is an in-memory implementation for demos and tests.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[domainroom.RoomID]*domainroom.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainroom.RoomID]*domainroom.Room)}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainroom.RoomID) (*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.items[id]
	if !ok {
		return nil, domainroom.ErrRoomNotFound
	}
	return rm, nil
}

func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm.Version++
	r.items[rm.ID] = rm
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id domainroom.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// BookingRepository stores booking requests in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.RequestID]*domainbooking.Request
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.RequestID]*domainbooking.Request)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.RequestID) (*domainbooking.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return req, nil
}

func (r *BookingRepository) Save(ctx context.Context, req *domainbooking.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.Version++
	r.items[req.ID] = req
	return nil
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID domainroom.RoomID, from, to time.Time) ([]domainbooking.Occupancy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	query := daterange.DateRange{CheckIn: daterange.Day(from), CheckOut: daterange.Day(to)}
	var out []domainbooking.Occupancy
	for _, req := range r.items {
		if !req.Range.Overlaps(query) {
			continue
		}
		for _, line := range req.Lines {
			if line.RoomID != roomID {
				continue
			}
			out = append(out, domainbooking.Occupancy{Range: req.Range, Status: req.Status, Units: line.Units})
		}
	}
	return out, nil
}

var (
	_ domainroom.Repository    = (*RoomRepository)(nil)
	_ domainbooking.Repository = (*BookingRepository)(nil)
)
