package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pricingapp "stayprice/internal/app/handlers/pricing"
	roomsapp "stayprice/internal/app/handlers/rooms"
	"stayprice/internal/domain/rate"
	"stayprice/internal/domain/room"
	"stayprice/internal/infra/storage/memory"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func createRoom(t *testing.T, factory *memory.Factory, basePrice int64) string {
	t.Helper()
	handler := &roomsapp.CreateRoomHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	res, err := handler.Handle(context.Background(), roomsapp.CreateRoomCommand{
		AccommodationID: "acc-1",
		Name:            "Deluxe",
		Capacity:        3,
		BasePrice:       basePrice,
	})
	require.NoError(t, err)
	return res.RoomID
}

func TestCreateRoomSeedsDefaultRates(t *testing.T) {
	factory := memory.NewFactory()
	roomID := createRoom(t, factory, 1_000_000)

	for _, dt := range []rate.DayType{rate.DayWeekday, rate.DayWeekend, rate.DaySpecial} {
		prices, err := factory.RateStore.Find(context.Background(), room.RoomID(roomID), rate.KindPrice, dt)
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.Equal(t, rate.MinPriceAmount, prices[0].Amount)

		discounts, err := factory.RateStore.Find(context.Background(), room.RoomID(roomID), rate.KindDiscount, dt)
		require.NoError(t, err)
		require.Len(t, discounts, 1)
		assert.Equal(t, rate.MinDiscountAmount, discounts[0].Amount)
	}
}

func TestUpdateRoomPriceThenResolve(t *testing.T) {
	factory := memory.NewFactory()
	roomID := createRoom(t, factory, 1_000_000)

	update := &pricingapp.UpdateRoomPriceHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	res, err := update.Handle(context.Background(), pricingapp.UpdateRoomPriceCommand{
		RoomID: roomID,
		Kind:   rate.KindPrice,
		Amount: 200,
		From:   d("2026-03-05"),
		To:     d("2026-03-10"),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Overwrote)

	get := &pricingapp.GetRoomPricesHandler{UoWFactory: factory}
	prices, err := get.Handle(context.Background(), pricingapp.GetRoomPricesQuery{
		RoomID: roomID,
		From:   d("2026-03-04"),
		To:     d("2026-03-11"),
	})
	require.NoError(t, err)
	require.Len(t, prices.Days, 8)
	assert.Equal(t, int64(1_000_000), prices.Days[0].Price) // before the custom range
	for _, day := range prices.Days[1:7] {
		assert.Equal(t, int64(2_000_000), day.Price, "day %s", day.Day.Format("2006-01-02"))
		assert.Equal(t, 200, day.PriceAmount)
	}
	assert.Equal(t, int64(1_000_000), prices.Days[7].Price)
	assert.Equal(t, "VND", prices.Currency)
}

func TestUpdateRoomPriceReportsOverwrite(t *testing.T) {
	factory := memory.NewFactory()
	roomID := createRoom(t, factory, 1_000_000)

	update := &pricingapp.UpdateRoomPriceHandler{UoWFactory: factory, Outbox: memory.NewOutbox()}
	_, err := update.Handle(context.Background(), pricingapp.UpdateRoomPriceCommand{
		RoomID: roomID, Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-01"), To: d("2026-03-10"),
	})
	require.NoError(t, err)

	res, err := update.Handle(context.Background(), pricingapp.UpdateRoomPriceCommand{
		RoomID: roomID, Kind: rate.KindPrice, Amount: 150,
		From: d("2026-03-05"), To: d("2026-03-15"),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Overwrote)
	assert.Equal(t, 1, res.Overwrote.Overlaps)
	assert.Equal(t, d("2026-03-01"), res.Overwrote.MinFrom)
	assert.Equal(t, d("2026-03-10"), res.Overwrote.MaxTo)
}

func TestUpdateRoomPriceUnknownRoom(t *testing.T) {
	factory := memory.NewFactory()

	update := &pricingapp.UpdateRoomPriceHandler{UoWFactory: factory}
	_, err := update.Handle(context.Background(), pricingapp.UpdateRoomPriceCommand{
		RoomID: "missing", Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-01"), To: d("2026-03-10"),
	})
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestValidateRoomPriceDoesNotMutate(t *testing.T) {
	factory := memory.NewFactory()
	roomID := createRoom(t, factory, 1_000_000)

	update := &pricingapp.UpdateRoomPriceHandler{UoWFactory: factory}
	_, err := update.Handle(context.Background(), pricingapp.UpdateRoomPriceCommand{
		RoomID: roomID, Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-01"), To: d("2026-03-10"),
	})
	require.NoError(t, err)

	validate := &pricingapp.ValidateRoomPriceHandler{UoWFactory: factory}
	res, err := validate.Handle(context.Background(), pricingapp.ValidateRoomPriceQuery{
		RoomID: roomID, Kind: rate.KindPrice, Amount: 150,
		From: d("2026-03-05"), To: d("2026-03-15"),
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotNil(t, res.Conflict)
	assert.Equal(t, 1, res.Conflict.Overlaps)

	// the conflicting interval is still there, untouched
	ivs, err := factory.RateStore.Find(context.Background(), room.RoomID(roomID), rate.KindPrice, rate.DayCustom)
	require.NoError(t, err)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
}

func TestValidateRoomPriceCleanRange(t *testing.T) {
	factory := memory.NewFactory()
	roomID := createRoom(t, factory, 1_000_000)

	validate := &pricingapp.ValidateRoomPriceHandler{UoWFactory: factory}
	res, err := validate.Handle(context.Background(), pricingapp.ValidateRoomPriceQuery{
		RoomID: roomID, Kind: rate.KindPrice, Amount: 150,
		From: d("2026-03-05"), To: d("2026-03-15"),
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Nil(t, res.Conflict)
}
