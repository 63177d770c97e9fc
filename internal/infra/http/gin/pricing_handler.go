package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/dto"
	pricingapp "stayprice/internal/app/handlers/pricing"
	"stayprice/internal/app/queries"
	domainrate "stayprice/internal/domain/rate"
)

type PricingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type rateChangeRequest struct {
	Kind   string    `json:"kind"`
	Amount int       `json:"amount"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
}

func (h PricingHandler) Update(c *gin.Context) {
	var req rateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := pricingapp.UpdateRoomPriceCommand{
		RoomID: c.Param("id"),
		Kind:   domainrate.Kind(req.Kind),
		Amount: req.Amount,
		From:   req.From,
		To:     req.To,
	}
	result, err := commands.Dispatch[pricingapp.UpdateRoomPriceCommand, *pricingapp.UpdateRoomPriceResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PricingHandler) Validate(c *gin.Context) {
	var req rateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	query := pricingapp.ValidateRoomPriceQuery{
		RoomID: c.Param("id"),
		Kind:   domainrate.Kind(req.Kind),
		Amount: req.Amount,
		From:   req.From,
		To:     req.To,
	}
	result, err := queries.Ask[pricingapp.ValidateRoomPriceQuery, dto.RateValidation](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PricingHandler) Prices(c *gin.Context) {
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
	query := pricingapp.GetRoomPricesQuery{RoomID: c.Param("id"), From: from, To: to}
	result, err := queries.Ask[pricingapp.GetRoomPricesQuery, dto.RoomPrices](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PricingHTTP = PricingHandler{}
