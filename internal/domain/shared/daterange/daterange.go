package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
)

// Day truncates t to midnight UTC. All pricing and availability math works at
// day grain.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay returns the calendar day after t.
func NextDay(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, 1)
}

// PrevDay returns the calendar day before t.
func PrevDay(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, -1)
}

// DateRange represents a half-open stay interval [checkIn, checkOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn).Hours() / 24)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// CoversDay reports whether the stay occupies the given calendar day. The
// checkout day itself is not occupied.
func (dr DateRange) CoversDay(day time.Time) bool {
	day = Day(day)
	return !day.Before(dr.CheckIn) && day.Before(dr.CheckOut)
}

// Days returns every occupied day in order, checkout day excluded.
func (dr DateRange) Days() []time.Time {
	var out []time.Time
	for d := Day(dr.CheckIn); d.Before(dr.CheckOut); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ClosedDays returns every day in the closed interval [from, to]. Rate
// intervals are bounded inclusively on both sides.
func ClosedDays(from, to time.Time) []time.Time {
	var out []time.Time
	for d := Day(from); !d.After(Day(to)); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ClosedOverlap reports whether the closed intervals [aFrom, aTo] and
// [bFrom, bTo] share at least one day.
func ClosedOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !bFrom.After(aTo)
}
