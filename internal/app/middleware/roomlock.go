package middleware

import (
	"context"
	"sync"

	"stayprice/internal/app/commands"
)

// RoomScopedCommand is implemented by commands that must not run concurrently
// for the same room. The multi-pass rate reconciliation reads then rewrites
// one room's interval set; two interleaved runs could leave overlapping
// intervals.
type RoomScopedCommand interface {
	commands.Command
	RoomScope() string
}

// RoomLocks hands out one mutex per room id.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *RoomLocks) lockFor(roomID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[roomID] = m
	}
	return m
}

// RoomLock serializes room-scoped commands per room id. Commands without a
// room scope pass through untouched.
func RoomLock(locks *RoomLocks) CommandMiddleware {
	if locks == nil {
		panic("middleware: room locks required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			scoped, ok := cmd.(RoomScopedCommand)
			if !ok || scoped.RoomScope() == "" {
				return nextFn(ctx, cmd)
			}
			m := locks.lockFor(scoped.RoomScope())
			m.Lock()
			defer m.Unlock()
			return nextFn(ctx, cmd)
		})
	}
}
