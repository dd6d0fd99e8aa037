// Package reslock serializes reservation attempts per resource. Every
// check-then-insert for a given resource must run under that resource's
// token so two overlapping candidates can never both observe a free slot.
package reslock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

var ErrLockBusy = errors.New("resource lock busy")

// KeyedMutex hands out one binary semaphore per resource ID. Entries are
// reference-counted and removed once the last holder releases, so the map
// does not grow with the number of resources ever seen.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
}

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[uuid.UUID]*entry),
	}
}

// Acquire blocks until the resource's token is held, the wait budget runs
// out, or ctx is done. A wait <= 0 means only ctx bounds the acquisition.
// On ErrLockBusy the caller may retry the whole operation; no state changed.
func (k *KeyedMutex) Acquire(ctx context.Context, resourceID uuid.UUID, wait time.Duration) (release func(), err error) {
	e := k.ref(resourceID)

	acquireCtx := ctx
	if wait > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, wait)
		defer cancel()
	}

	if err := e.sem.Acquire(acquireCtx, 1); err != nil {
		k.unref(resourceID)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrLockBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			k.unref(resourceID)
		})
	}, nil
}

func (k *KeyedMutex) ref(id uuid.UUID) *entry {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[id]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		k.entries[id] = e
	}
	e.refs++
	return e
}

func (k *KeyedMutex) unref(id uuid.UUID) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(k.entries, id)
	}
}
