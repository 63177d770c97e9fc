package memory

import (
	"context"
	"sync"
	"time"

	domainrate "stayprice/internal/domain/rate"
	domainroom "stayprice/internal/domain/room"
)

// RateStore keeps rate intervals in memory. Used for local demos and as the
// store under the reconciler's tests.
type RateStore struct {
	mu    sync.RWMutex
	items map[string]domainrate.Interval
}

func NewRateStore() *RateStore {
	return &RateStore{items: make(map[string]domainrate.Interval)}
}

func (s *RateStore) Find(ctx context.Context, roomID domainroom.RoomID, kind domainrate.Kind, dayType domainrate.DayType) ([]domainrate.Interval, error) {
	return s.filter(func(iv domainrate.Interval) bool {
		return iv.RoomID == roomID && iv.Kind == kind && iv.DayType == dayType
	}), nil
}

func (s *RateStore) FindByFrom(ctx context.Context, roomID domainroom.RoomID, kind domainrate.Kind, dayType domainrate.DayType, from time.Time) ([]domainrate.Interval, error) {
	return s.filter(func(iv domainrate.Interval) bool {
		return iv.RoomID == roomID && iv.Kind == kind && iv.DayType == dayType && !iv.From.IsZero() && iv.From.Equal(from)
	}), nil
}

func (s *RateStore) FindByTo(ctx context.Context, roomID domainroom.RoomID, kind domainrate.Kind, dayType domainrate.DayType, to time.Time) ([]domainrate.Interval, error) {
	return s.filter(func(iv domainrate.Interval) bool {
		return iv.RoomID == roomID && iv.Kind == kind && iv.DayType == dayType && !iv.To.IsZero() && iv.To.Equal(to)
	}), nil
}

func (s *RateStore) filter(match func(domainrate.Interval) bool) []domainrate.Interval {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domainrate.Interval
	for _, iv := range s.items {
		if match(iv) {
			out = append(out, iv)
		}
	}
	return out
}

func (s *RateStore) Save(ctx context.Context, iv domainrate.Interval) (domainrate.Interval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[iv.ID] = iv
	return iv, nil
}

func (s *RateStore) SaveAll(ctx context.Context, ivs []domainrate.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range ivs {
		s.items[iv.ID] = iv
	}
	return nil
}

func (s *RateStore) Delete(ctx context.Context, iv domainrate.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, iv.ID)
	return nil
}

func (s *RateStore) DeleteAll(ctx context.Context, ivs []domainrate.Interval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, iv := range ivs {
		delete(s.items, iv.ID)
	}
	return nil
}

func (s *RateStore) DeleteByRoom(ctx context.Context, roomID domainroom.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, iv := range s.items {
		if iv.RoomID == roomID {
			delete(s.items, id)
		}
	}
	return nil
}

var _ domainrate.Store = (*RateStore)(nil)
