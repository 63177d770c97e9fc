package booking

import (
	"time"

	"stayprice/internal/domain/shared/daterange"
)

type BookingRequested struct {
	RequestID RequestID
	GuestID   string
	Range     daterange.DateRange
	Total     int64
	At        time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.RequestID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingApproved struct {
	RequestID RequestID
	At        time.Time
}

func (e BookingApproved) EventName() string     { return "booking.approved" }
func (e BookingApproved) AggregateID() string   { return string(e.RequestID) }
func (e BookingApproved) OccurredAt() time.Time { return e.At }

type BookingCompleted struct {
	RequestID RequestID
	At        time.Time
}

func (e BookingCompleted) EventName() string     { return "booking.completed" }
func (e BookingCompleted) AggregateID() string   { return string(e.RequestID) }
func (e BookingCompleted) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	RequestID RequestID
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.RequestID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

type BookingRejected struct {
	RequestID RequestID
	Reason    string
	At        time.Time
}

func (e BookingRejected) EventName() string     { return "booking.rejected" }
func (e BookingRejected) AggregateID() string   { return string(e.RequestID) }
func (e BookingRejected) OccurredAt() time.Time { return e.At }
