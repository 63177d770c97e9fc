package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/dto"
	bookingapp "stayprice/internal/app/handlers/booking"
	"stayprice/internal/app/queries"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type bookingLineRequest struct {
	RoomID string `json:"room_id"`
	Units  int    `json:"units"`
}

type createBookingRequest struct {
	GuestID  string               `json:"guest_id"`
	CheckIn  time.Time            `json:"check_in"`
	CheckOut time.Time            `json:"check_out"`
	Lines    []bookingLineRequest `json:"lines"`
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines := make([]bookingapp.BookingLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, bookingapp.BookingLine{RoomID: l.RoomID, Units: l.Units})
	}
	cmd := bookingapp.RequestBookingCommand{
		CommandID:       generateCommandID(),
		GuestID:         req.GuestID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Lines:           lines,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

func (h BookingHandler) Get(c *gin.Context) {
	query := bookingapp.GetBookingQuery{BookingID: c.Param("id")}
	result, err := queries.Ask[bookingapp.GetBookingQuery, dto.Booking](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}
