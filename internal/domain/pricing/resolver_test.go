package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayprice/internal/domain/pricing"
	"stayprice/internal/domain/rate"
	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/money"
	"stayprice/internal/infra/storage/memory"
)

// 2026-03-01 is a Sunday.
func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	store  *memory.RateStore
	rooms  *memory.RoomRepository
	roomID room.RoomID
}

func setup(t *testing.T, basePrice int64) fixture {
	t.Helper()
	store := memory.NewRateStore()
	rooms := memory.NewRoomRepository()
	rm, err := room.NewRoom(room.CreateParams{
		ID:              "room-1",
		AccommodationID: "acc-1",
		Name:            "Deluxe",
		Capacity:        5,
		BasePrice:       money.VND(basePrice),
		CreatedAt:       d("2026-01-01"),
	})
	require.NoError(t, err)
	require.NoError(t, rooms.Save(context.Background(), rm))
	return fixture{store: store, rooms: rooms, roomID: rm.ID}
}

func (f fixture) seedRecurring(t *testing.T, kind rate.Kind, dayType rate.DayType, amount int, from time.Time) {
	t.Helper()
	_, err := f.store.Save(context.Background(), rate.Interval{
		ID:      string(kind) + "/" + string(dayType) + "/" + from.Format("2006-01-02"),
		RoomID:  f.roomID,
		Kind:    kind,
		DayType: dayType,
		Amount:  amount,
		From:    from,
	})
	require.NoError(t, err)
}

func (f fixture) seedCustom(t *testing.T, kind rate.Kind, amount int, from, to string) {
	t.Helper()
	_, err := f.store.Save(context.Background(), rate.Interval{
		ID:      "custom/" + string(kind) + "/" + from,
		RoomID:  f.roomID,
		Kind:    kind,
		DayType: rate.DayCustom,
		Amount:  amount,
		From:    d(from),
		To:      d(to),
	})
	require.NoError(t, err)
}

func TestResolveDefaultsWithoutRateRows(t *testing.T) {
	f := setup(t, 1_000_000)
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	q, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, rate.DayWeekday, q.DayType)
	assert.Equal(t, pricing.DefaultPriceAmount, q.PriceAmount)
	assert.Equal(t, pricing.DefaultDiscountAmount, q.DiscountAmount)
	assert.Equal(t, int64(1_000_000), q.Price)
	assert.Equal(t, int64(1_000_000), q.DisplayPrice)
}

func TestWeekendRuleRaisesSaturdayPrice(t *testing.T) {
	f := setup(t, 1_000_000)
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekend, 120, time.Time{})
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	sat, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-07"))
	require.NoError(t, err)
	assert.Equal(t, rate.DayWeekend, sat.DayType)
	assert.Equal(t, int64(1_200_000), sat.Price)

	mon, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, rate.DayWeekday, mon.DayType)
	assert.Equal(t, int64(1_000_000), mon.Price)
}

func TestDiscountReducesDisplayPriceOnly(t *testing.T) {
	f := setup(t, 1_000_000)
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekend, 120, time.Time{})
	f.seedRecurring(t, rate.KindDiscount, rate.DayWeekend, 20, time.Time{})
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	q, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-07"))
	require.NoError(t, err)
	assert.Equal(t, int64(1_200_000), q.Price)
	assert.Equal(t, int64(960_000), q.DisplayPrice)
}

func TestCustomIntervalOverridesRecurringRules(t *testing.T) {
	f := setup(t, 1_000_000)
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekend, 120, time.Time{})
	f.seedCustom(t, rate.KindPrice, 300, "2026-03-06", "2026-03-08")
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	inRange, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-07"))
	require.NoError(t, err)
	assert.Equal(t, int64(3_000_000), inRange.Price)

	// next Saturday falls back to the weekend rule
	outside, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-14"))
	require.NoError(t, err)
	assert.Equal(t, int64(1_200_000), outside.Price)
}

func TestSpecialDayCalendarTakesPrecedenceOverWeekday(t *testing.T) {
	f := setup(t, 1_000_000)
	f.seedRecurring(t, rate.KindPrice, rate.DaySpecial, 150, time.Time{})
	cal := memory.NewSpecialDayCalendar(d("2026-03-04")) // a Wednesday
	resolver := pricing.NewResolver(f.store, f.rooms, cal)

	q, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-04"))
	require.NoError(t, err)
	assert.Equal(t, rate.DaySpecial, q.DayType)
	assert.Equal(t, int64(1_500_000), q.Price)
}

func TestLatestBoundedRecurringRuleWins(t *testing.T) {
	f := setup(t, 1_000_000)
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekend, 110, time.Time{})
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekend, 130, d("2026-03-06"))
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	before, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, 110, before.PriceAmount)

	after, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-07"))
	require.NoError(t, err)
	assert.Equal(t, 130, after.PriceAmount)
}

func TestIntegerMathTruncates(t *testing.T) {
	f := setup(t, 999)
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekday, 150, time.Time{})
	f.seedRecurring(t, rate.KindDiscount, rate.DayWeekday, 33, time.Time{})
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	q, err := resolver.ResolvePrice(context.Background(), f.roomID, d("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, int64(1498), q.Price)        // 999*150/100 = 1498.5 truncated
	assert.Equal(t, int64(1003), q.DisplayPrice) // 1498*67/100 = 1003.66 truncated
}

func TestResolvePricesCoversClosedRange(t *testing.T) {
	f := setup(t, 1_000_000)
	f.seedRecurring(t, rate.KindPrice, rate.DayWeekend, 120, time.Time{})
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	days, err := resolver.ResolvePrices(context.Background(), f.roomID, d("2026-03-06"), d("2026-03-08"))
	require.NoError(t, err)
	require.Len(t, days, 3) // Fri, Sat, Sun inclusive
	assert.Equal(t, int64(1_000_000), days[0].Price)
	assert.Equal(t, int64(1_200_000), days[1].Price)
	assert.Equal(t, int64(1_200_000), days[2].Price)
}

func TestResolvePricesRejectsInvertedRange(t *testing.T) {
	f := setup(t, 1_000_000)
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	_, err := resolver.ResolvePrices(context.Background(), f.roomID, d("2026-03-08"), d("2026-03-06"))
	assert.ErrorIs(t, err, rate.ErrInvalidSpan)
}

func TestResolveUnknownRoomFails(t *testing.T) {
	f := setup(t, 1_000_000)
	resolver := pricing.NewResolver(f.store, f.rooms, nil)

	_, err := resolver.ResolvePrice(context.Background(), "missing", d("2026-03-02"))
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}
