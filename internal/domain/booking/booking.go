package booking

import (
	"context"
	"errors"
	"time"

	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
	"stayprice/internal/domain/shared/events"
	"stayprice/internal/domain/shared/money"
)

var (
	ErrInvalidState    = errors.New("booking: invalid state transition")
	ErrNoLines         = errors.New("booking: at least one room line required")
	ErrInvalidUnits    = errors.New("booking: units must be positive")
	ErrBookingNotFound = errors.New("booking: not found")
)

type RequestID string

type Status string

const (
	StatusUnpurchased Status = "UN_PURCHASED"
	StatusApproved    Status = "APPROVED"
	StatusSucceed     Status = "SUCCEED"
	StatusCanceled    Status = "CANCELED"
	StatusRejected    Status = "REJECTED"
)

// Line reserves units of one room for the whole stay.
type Line struct {
	RoomID room.RoomID
	Units  int
}

// Request is a guest's booking request across one or more rooms of an
// accommodation. The stay range is half-open: the checkout day does not
// occupy inventory.
type Request struct {
	ID        RequestID
	GuestID   string
	Range     daterange.DateRange
	Lines     []Line
	Status    Status
	Total     money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

// Occupancy is the read model the availability checker consumes: one room
// line of a booking with its parent request's status and stay range.
type Occupancy struct {
	Range  daterange.DateRange
	Status Status
	Units  int
}

type Repository interface {
	ByID(ctx context.Context, id RequestID) (*Request, error)
	Save(ctx context.Context, req *Request) error
	// FindOverlapping returns every occupancy line of the room whose stay
	// range overlaps [from, to), regardless of status. Filtering belongs to
	// the availability checker.
	FindOverlapping(ctx context.Context, roomID room.RoomID, from, to time.Time) ([]Occupancy, error)
}

type CreateParams struct {
	ID        RequestID
	GuestID   string
	Range     daterange.DateRange
	Lines     []Line
	Total     money.Money
	CreatedAt time.Time
}

func NewRequest(params CreateParams) (*Request, error) {
	if params.GuestID == "" {
		return nil, errors.New("booking: guest id required")
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if len(params.Lines) == 0 {
		return nil, ErrNoLines
	}
	for _, line := range params.Lines {
		if line.Units <= 0 {
			return nil, ErrInvalidUnits
		}
	}
	now := params.CreatedAt.UTC()
	req := &Request{
		ID:        params.ID,
		GuestID:   params.GuestID,
		Range:     params.Range,
		Lines:     append([]Line(nil), params.Lines...),
		Status:    StatusUnpurchased,
		Total:     params.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.Record(BookingRequested{RequestID: req.ID, GuestID: req.GuestID, Range: req.Range, Total: req.Total.Amount, At: now})
	return req, nil
}

func (r *Request) Approve(now time.Time) error {
	if r.Status != StatusUnpurchased {
		return ErrInvalidState
	}
	r.Status = StatusApproved
	r.UpdatedAt = now.UTC()
	r.Record(BookingApproved{RequestID: r.ID, At: r.UpdatedAt})
	return nil
}

func (r *Request) Complete(now time.Time) error {
	if r.Status != StatusApproved {
		return ErrInvalidState
	}
	r.Status = StatusSucceed
	r.UpdatedAt = now.UTC()
	r.Record(BookingCompleted{RequestID: r.ID, At: r.UpdatedAt})
	return nil
}

func (r *Request) Cancel(reason string, now time.Time) error {
	switch r.Status {
	case StatusUnpurchased, StatusApproved:
	default:
		return ErrInvalidState
	}
	r.Status = StatusCanceled
	r.UpdatedAt = now.UTC()
	r.Record(BookingCancelled{RequestID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}

func (r *Request) Reject(reason string, now time.Time) error {
	if r.Status != StatusUnpurchased {
		return ErrInvalidState
	}
	r.Status = StatusRejected
	r.UpdatedAt = now.UTC()
	r.Record(BookingRejected{RequestID: r.ID, Reason: reason, At: r.UpdatedAt})
	return nil
}
