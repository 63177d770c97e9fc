package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	bookingapp "stayprice/internal/app/handlers/booking"
	domainbooking "stayprice/internal/domain/booking"
	domainroom "stayprice/internal/domain/room"
)

// parseDay accepts either a bare date or a full RFC3339 timestamp; pricing
// and availability work at day grain either way.
func parseDay(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainroom.ErrRoomNotFound), errors.Is(err, domainbooking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bookingapp.ErrInsufficientRooms):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
