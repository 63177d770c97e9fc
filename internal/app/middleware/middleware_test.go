package middleware_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayprice/internal/app/commands"
	"stayprice/internal/app/middleware"
	"stayprice/internal/infra/storage/memory"
)

type busFunc func(ctx context.Context, cmd commands.Command) (any, error)

func (f busFunc) Dispatch(ctx context.Context, cmd commands.Command) (any, error) {
	return f(ctx, cmd)
}

type scopedCommand struct {
	room string
}

func (c scopedCommand) Key() string       { return "test.scoped" }
func (c scopedCommand) RoomScope() string { return c.room }

func TestRoomLockSerializesCommandsForOneRoom(t *testing.T) {
	var inFlight, maxInFlight int32
	inner := busFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			observed := atomic.LoadInt32(&maxInFlight)
			if cur <= observed || atomic.CompareAndSwapInt32(&maxInFlight, observed, cur) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil, nil
	})

	bus := middleware.ChainCommands(inner, middleware.RoomLock(middleware.NewRoomLocks()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := bus.Dispatch(context.Background(), scopedCommand{room: "room-1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

type idemCommand struct {
	key string
}

func (c idemCommand) Key() string            { return "test.idem" }
func (c idemCommand) IdempotencyKey() string { return c.key }
func (c idemCommand) ResultPrototype() any   { return &idemResult{} }

type idemResult struct {
	Calls int `json:"calls"`
}

func TestIdempotencyReplaysFirstResult(t *testing.T) {
	calls := 0
	inner := busFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &idemResult{Calls: calls}, nil
	})

	bus := middleware.ChainCommands(inner, middleware.Idempotency(memory.NewIdempotencyStore(), nil))

	first, err := bus.Dispatch(context.Background(), idemCommand{key: "k-1"})
	require.NoError(t, err)
	second, err := bus.Dispatch(context.Background(), idemCommand{key: "k-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.(*idemResult).Calls, second.(*idemResult).Calls)

	_, err = bus.Dispatch(context.Background(), idemCommand{key: "k-2"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	calls := 0
	inner := busFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, nil
	})
	bus := middleware.ChainCommands(inner, middleware.Idempotency(memory.NewIdempotencyStore(), nil))

	for i := 0; i < 3; i++ {
		_, err := bus.Dispatch(context.Background(), idemCommand{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}

type selfValidatedCommand struct {
	fail bool
}

func (c selfValidatedCommand) Key() string { return "test.validated" }
func (c selfValidatedCommand) Validate() error {
	if c.fail {
		return assert.AnError
	}
	return nil
}

func TestValidationRejectsBeforeDispatch(t *testing.T) {
	calls := 0
	inner := busFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, nil
	})
	bus := middleware.ChainCommands(inner, middleware.Validation(middleware.SelfValidator{}))

	_, err := bus.Dispatch(context.Background(), selfValidatedCommand{fail: true})
	assert.Error(t, err)
	assert.Equal(t, 0, calls)

	_, err = bus.Dispatch(context.Background(), selfValidatedCommand{})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}
