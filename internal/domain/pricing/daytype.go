package pricing

import (
	"context"
	"time"

	"stayprice/internal/domain/rate"
	"stayprice/internal/domain/room"
)

// SpecialDayCalendar answers whether a date is a special day (holiday or
// high-season override) for a room. External lookup; absence of a calendar
// means no special days.
type SpecialDayCalendar interface {
	IsSpecialDay(ctx context.Context, roomID room.RoomID, day time.Time) (bool, error)
}

// ClassifyDay maps a calendar date to its recurring day type. Saturday and
// Sunday are weekend days; a special-day calendar entry takes precedence.
func ClassifyDay(ctx context.Context, cal SpecialDayCalendar, roomID room.RoomID, day time.Time) (rate.DayType, error) {
	if cal != nil {
		special, err := cal.IsSpecialDay(ctx, roomID, day)
		if err != nil {
			return "", err
		}
		if special {
			return rate.DaySpecial, nil
		}
	}
	switch day.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return rate.DayWeekend, nil
	default:
		return rate.DayWeekday, nil
	}
}
