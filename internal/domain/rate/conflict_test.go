package rate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayprice/internal/domain/rate"
	"stayprice/internal/infra/storage/memory"
)

func TestDetectConflictsFindsNothingOnCleanRange(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-10")

	_, found, err := rate.DetectConflicts(context.Background(), store, rate.Proposal{
		RoomID: testRoom, Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-11"), To: d("2026-03-20"),
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDetectConflictsReportsOverlapSpan(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-06")
	seed(t, store, 160, "2026-03-08", "2026-03-12")
	seed(t, store, 170, "2026-04-01", "2026-04-05")

	c, found, err := rate.DetectConflicts(context.Background(), store, rate.Proposal{
		RoomID: testRoom, Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-05"), To: d("2026-03-10"),
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, d("2026-03-01"), c.MinFrom)
	assert.Equal(t, d("2026-03-12"), c.MaxTo)
}

func TestDetectConflictsIgnoresOtherKinds(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-10")

	_, found, err := rate.DetectConflicts(context.Background(), store, rate.Proposal{
		RoomID: testRoom, Kind: rate.KindDiscount, Amount: 20,
		From: d("2026-03-01"), To: d("2026-03-10"),
	})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDetectConflictsDoesNotMutate(t *testing.T) {
	store := memory.NewRateStore()
	seed(t, store, 150, "2026-03-01", "2026-03-10")

	_, _, err := rate.DetectConflicts(context.Background(), store, rate.Proposal{
		RoomID: testRoom, Kind: rate.KindPrice, Amount: 200,
		From: d("2026-03-05"), To: d("2026-03-15"),
	})
	require.NoError(t, err)

	ivs := snapshot(t, store)
	require.Len(t, ivs, 1)
	assert.Equal(t, 150, ivs[0].Amount)
	assert.Equal(t, d("2026-03-01"), ivs[0].From)
	assert.Equal(t, d("2026-03-10"), ivs[0].To)
}
