package memory

import (
	"context"
	"sync"
	"time"

	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
)

// SpecialDayCalendar holds an explicit set of special days (public holidays,
// local festivals) in memory, keyed by UTC midnight.
type SpecialDayCalendar struct {
	mu   sync.RWMutex
	days map[time.Time]struct{}
}

func NewSpecialDayCalendar(days ...time.Time) *SpecialDayCalendar {
	c := &SpecialDayCalendar{days: make(map[time.Time]struct{})}
	for _, d := range days {
		c.days[daterange.Day(d)] = struct{}{}
	}
	return c
}

func (c *SpecialDayCalendar) Add(day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.days[daterange.Day(day)] = struct{}{}
}

// IsSpecialDay ignores the room: the in-memory calendar holds one shared set
// of days for the whole property.
func (c *SpecialDayCalendar) IsSpecialDay(ctx context.Context, roomID room.RoomID, day time.Time) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.days[daterange.Day(day)]
	return ok, nil
}
