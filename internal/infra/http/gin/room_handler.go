package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/dto"
	roomsapp "stayprice/internal/app/handlers/rooms"
	domainroom "stayprice/internal/domain/room"
)

type RoomHandler struct {
	Commands commands.Bus
}

type createRoomRequest struct {
	AccommodationID string `json:"accommodation_id"`
	Name            string `json:"name"`
	Capacity        int    `json:"capacity"`
	BasePrice       int64  `json:"base_price"`
}

func (h RoomHandler) Create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := roomsapp.CreateRoomCommand{
		CommandID:       generateCommandID(),
		AccommodationID: req.AccommodationID,
		Name:            req.Name,
		Capacity:        req.Capacity,
		BasePrice:       req.BasePrice,
	}
	result, err := commands.Dispatch[roomsapp.CreateRoomCommand, *roomsapp.CreateRoomResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type updateBasePriceRequest struct {
	BasePrice int64 `json:"base_price"`
}

func (h RoomHandler) UpdateBasePrice(c *gin.Context) {
	var req updateBasePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := roomsapp.UpdateBasePriceCommand{RoomID: c.Param("id"), BasePrice: req.BasePrice}
	rm, err := commands.Dispatch[roomsapp.UpdateBasePriceCommand, *domainroom.Room](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRoomDTO(rm))
}

func (h RoomHandler) Delete(c *gin.Context) {
	cmd := roomsapp.DeleteRoomCommand{RoomID: c.Param("id")}
	if _, err := commands.Dispatch[roomsapp.DeleteRoomCommand, struct{}](c.Request.Context(), h.Commands, cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toRoomDTO(rm *domainroom.Room) dto.Room {
	return dto.Room{
		ID:              string(rm.ID),
		AccommodationID: rm.AccommodationID,
		Name:            rm.Name,
		Capacity:        rm.Capacity,
		BasePrice:       rm.BasePrice.Amount,
		Currency:        rm.BasePrice.Currency,
		CreatedAt:       rm.CreatedAt,
	}
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ RoomHTTP = RoomHandler{}
