package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDayTruncatesToMidnightUTC(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	in := time.Date(2026, 3, 10, 23, 30, 0, 0, loc) // 16:30 UTC
	got := Day(in)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New(d("2026-03-10"), d("2026-03-10"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(d("2026-03-11"), d("2026-03-10"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNightsAndDays(t *testing.T) {
	dr, err := New(d("2026-03-10"), d("2026-03-13"))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Nights())

	days := dr.Days()
	require.Len(t, days, 3)
	assert.Equal(t, d("2026-03-10"), days[0])
	assert.Equal(t, d("2026-03-12"), days[2])
}

func TestCheckoutDayNotOccupied(t *testing.T) {
	dr, err := New(d("2026-03-10"), d("2026-03-12"))
	require.NoError(t, err)
	assert.True(t, dr.CoversDay(d("2026-03-11")))
	assert.False(t, dr.CoversDay(d("2026-03-12")))
}

func TestOverlapsHalfOpen(t *testing.T) {
	a, _ := New(d("2026-03-10"), d("2026-03-12"))
	b, _ := New(d("2026-03-12"), d("2026-03-14"))
	// back to back stays share no night
	assert.False(t, a.Overlaps(b))

	c, _ := New(d("2026-03-11"), d("2026-03-14"))
	assert.True(t, a.Overlaps(c))
}

func TestClosedDaysInclusive(t *testing.T) {
	days := ClosedDays(d("2026-03-10"), d("2026-03-12"))
	require.Len(t, days, 3)
	assert.Equal(t, d("2026-03-12"), days[2])

	assert.Len(t, ClosedDays(d("2026-03-10"), d("2026-03-10")), 1)
}

func TestClosedOverlapTouchingEdges(t *testing.T) {
	assert.True(t, ClosedOverlap(d("2026-03-01"), d("2026-03-10"), d("2026-03-10"), d("2026-03-20")))
	assert.False(t, ClosedOverlap(d("2026-03-01"), d("2026-03-09"), d("2026-03-10"), d("2026-03-20")))
}
