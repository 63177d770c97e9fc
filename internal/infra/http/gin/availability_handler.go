package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayprice/internal/app/dto"
	availabilityapp "stayprice/internal/app/handlers/availability"
	"stayprice/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

func (h AvailabilityHandler) Remaining(c *gin.Context) {
	from, err := parseDay(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}
	query := availabilityapp.GetRemainingCapacityQuery{
		RoomID: c.Param("id"),
		From:   from,
		To:     to,
		Strict: c.Query("strict") == "true",
	}
	result, err := queries.Ask[availabilityapp.GetRemainingCapacityQuery, dto.Availability](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
