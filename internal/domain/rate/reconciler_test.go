package rate_test

import (
	"context"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayprice/internal/domain/rate"
	"stayprice/internal/domain/room"
	"stayprice/internal/domain/shared/daterange"
	"stayprice/internal/infra/storage/memory"
)

const testRoom = room.RoomID("room-1")

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seed(t *testing.T, store rate.Store, amount int, from, to string) rate.Interval {
	t.Helper()
	iv, err := store.Save(context.Background(), rate.Interval{
		ID:      from + "/" + to,
		RoomID:  testRoom,
		Kind:    rate.KindPrice,
		DayType: rate.DayCustom,
		Amount:  amount,
		From:    d(from),
		To:      d(to),
	})
	require.NoError(t, err)
	return iv
}

func apply(t *testing.T, store rate.Store, amount int, from, to string) {
	t.Helper()
	err := rate.NewReconciler(store).Apply(context.Background(), rate.Proposal{
		RoomID: testRoom,
		Kind:   rate.KindPrice,
		Amount: amount,
		From:   d(from),
		To:     d(to),
	})
	require.NoError(t, err)
}

func snapshot(t *testing.T, store rate.Store) []rate.Interval {
	t.Helper()
	ivs, err := store.Find(context.Background(), testRoom, rate.KindPrice, rate.DayCustom)
	require.NoError(t, err)
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].From.Before(ivs[j].From) })
	return ivs
}

func assertNoOverlap(t *testing.T, ivs []rate.Interval) {
	t.Helper()
	for i := 0; i < len(ivs); i++ {
		for j := i + 1; j < len(ivs); j++ {
			assert.False(t, ivs[i].Overlaps(ivs[j].From, ivs[j].To),
				"intervals [%s,%s] and [%s,%s] overlap",
				ivs[i].From.Format("2006-01-02"), ivs[i].To.Format("2006-01-02"),
				ivs[j].From.Format("2006-01-02"), ivs[j].To.Format("2006-01-02"))
		}
	}
}

func amountAt(ivs []rate.Interval, day time.Time) (int, bool) {
	for _, iv := range ivs {
		if iv.Contains(day) {
			return iv.Amount, true
		}
	}
	return 0, false
}

func TestApplyOnEmptyStoreInsertsProposal(t *testing.T) {
	store := memory.NewRateStore()
	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
	assert.Equal(t, rate.DayCustom, ivs[0].DayType)
}

func TestApplySameRangeDifferentAmountReplaces(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-10")

	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
}

func TestApplyIsIdempotent(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-20")

	apply(t, store, 200, "2026-03-05", "2026-03-10")
	first := snapshot(t, store)
	apply(t, store, 200, "2026-03-05", "2026-03-10")
	second := snapshot(t, store)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Amount, second[i].Amount)
		assert.Equal(t, first[i].From, second[i].From)
		assert.Equal(t, first[i].To, second[i].To)
	}
}

func TestMatchingStartKeepsTailOfLongerInterval(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-15")

	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 2)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
	assert.Equal(t, 150, ivs[1].Amount)
	assert.Equal(t, d("2026-03-11"), ivs[1].From)
	assert.Equal(t, d("2026-03-15"), ivs[1].To)
}

// An exact-from match with the same amount removes the whole existing
// interval, even when it extends past the proposal. Only the proposed range
// stays priced afterwards.
func TestMatchingStartSameAmountDropsTail(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 200, "2026-03-05", "2026-03-20")

	apply(t, store, 200, "2026-03-05", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-05"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
}

func TestMatchingEndSameAmountDropsHead(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 200, "2026-02-20", "2026-03-10")

	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
}

func TestMatchingEndKeepsHeadOfEarlierInterval(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-02-20", "2026-03-10")

	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 2)
	assert.Equal(t, 150, ivs[0].Amount)
	assert.Equal(t, d("2026-02-28"), ivs[0].To)
	assert.Equal(t, 200, ivs[1].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[1].From)
}

func TestSameAmountContainerLeftIntact(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 200, "2026-03-01", "2026-03-20")

	apply(t, store, 200, "2026-03-05", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-20"), ivs[0].To)
}

func TestDifferentAmountContainerSplitsAroundProposal(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-20")

	apply(t, store, 200, "2026-03-05", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 3)
	assert.Equal(t, 150, ivs[0].Amount)
	assert.Equal(t, d("2026-03-04"), ivs[0].To)
	assert.Equal(t, 200, ivs[1].Amount)
	assert.Equal(t, d("2026-03-05"), ivs[1].From)
	assert.Equal(t, d("2026-03-10"), ivs[1].To)
	assert.Equal(t, 150, ivs[2].Amount)
	assert.Equal(t, d("2026-03-11"), ivs[2].From)
	assert.Equal(t, d("2026-03-20"), ivs[2].To)
	assertNoOverlap(t, ivs)
}

func TestContainedIntervalsAbsorbed(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 120, "2026-03-03", "2026-03-05")
	seed(t, store, 130, "2026-03-07", "2026-03-08")

	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
}

func TestContainedSameAmountCollapsesToFullRange(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 200, "2026-03-03", "2026-03-05")

	apply(t, store, 200, "2026-03-01", "2026-03-10")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
}

func TestPartialOverlapTrimsLeftNeighbor(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-10")

	apply(t, store, 200, "2026-03-05", "2026-03-15")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 2)
	assert.Equal(t, 150, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-04"), ivs[0].To)
	assert.Equal(t, 200, ivs[1].Amount)
	assert.Equal(t, d("2026-03-05"), ivs[1].From)
	assert.Equal(t, d("2026-03-15"), ivs[1].To)
	assertNoOverlap(t, ivs)
}

func TestPartialOverlapTrimsRightNeighbor(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-10", "2026-03-20")

	apply(t, store, 200, "2026-03-05", "2026-03-15")

	ivs := snapshot(t, store)
	require.Len(t, ivs, 2)
	assert.Equal(t, 200, ivs[0].Amount)
	assert.Equal(t, d("2026-03-05"), ivs[0].From)
	assert.Equal(t, d("2026-03-15"), ivs[0].To)
	assert.Equal(t, 150, ivs[1].Amount)
	assert.Equal(t, d("2026-03-16"), ivs[1].From)
	assert.Equal(t, d("2026-03-20"), ivs[1].To)
}

func TestApplyRejectsInvalidProposals(t *testing.T) {
	store := memory.NewRateStore()
	rec := rate.NewReconciler(store)

	err := rec.Apply(context.Background(), rate.Proposal{
		RoomID: testRoom, Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-10"), To: d("2026-03-01"),
	})
	assert.ErrorIs(t, err, rate.ErrInvalidSpan)

	err = rec.Apply(context.Background(), rate.Proposal{
		RoomID: testRoom, Kind: rate.KindPrice, Amount: 99,
		From: d("2026-03-01"), To: d("2026-03-10"),
	})
	assert.ErrorIs(t, err, rate.ErrInvalidAmount)

	err = rec.Apply(context.Background(), rate.Proposal{
		RoomID: testRoom, Kind: rate.KindDiscount, Amount: 101,
		From: d("2026-03-01"), To: d("2026-03-10"),
	})
	assert.ErrorIs(t, err, rate.ErrInvalidAmount)
}

// Randomized sequences must keep the set overlap-free and let the latest
// proposal govern its whole range. Days outside that range carry no guarantee:
// an exact-bound same-amount match drops the whole matching interval, so
// earlier pricing past the proposal's bounds can legitimately disappear (see
// TestMatchingStartSameAmountDropsTail).
func TestRandomSequencesHoldInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := d("2026-03-01")
	span := 40

	for run := 0; run < 20; run++ {
		store := memory.NewRateStore()
		for step := 0; step < 15; step++ {
			start := rng.Intn(span)
			length := rng.Intn(10)
			amount := 100 + 10*rng.Intn(8)
			from := base.AddDate(0, 0, start)
			to := base.AddDate(0, 0, start+length)
			apply(t, store, amount, from.Format("2006-01-02"), to.Format("2006-01-02"))

			ivs := snapshot(t, store)
			assertNoOverlap(t, ivs)
			for _, day := range daterange.ClosedDays(from, to) {
				got, ok := amountAt(ivs, day)
				require.True(t, ok, "day %s lost coverage", day.Format("2006-01-02"))
				assert.Equal(t, amount, got, "day %s", day.Format("2006-01-02"))
			}
		}
	}
}
