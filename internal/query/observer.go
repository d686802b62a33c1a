package query

import (
	"context"
	"sync"

	"github.com/codelabbj/icash-admin/internal/constants"
)

// Observer is a mounted consumer of one entry. It receives every state
// change until Close.
type Observer struct {
	store *Store
	entry *entry

	mu        sync.Mutex
	updates   chan Result
	current   Result
	delivered bool
	closed    bool
}

// Observe mounts a consumer of key. The first state is delivered right away
// and a fetch starts when the entry has no fresh data.
func (s *Store) Observe(ctx context.Context, key Key, fetch FetchFunc) *Observer {
	e := s.entryFor(ctx, key, fetch)

	o := &Observer{
		store:   s,
		entry:   e,
		updates: make(chan Result, constants.ObserverBufferSize),
	}

	s.mu.Lock()
	e.observers[o] = struct{}{}
	s.mu.Unlock()

	o.pushInitial(s.Read(ctx, key, fetch))

	return o
}

// Updates delivers entry states. The channel is closed by Close.
func (o *Observer) Updates() <-chan Result {
	return o.updates
}

// Current returns the latest state delivered to the observer.
func (o *Observer) Current() Result {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.current
}

// Close unmounts the observer. In-flight fetches keep running for the other
// consumers but no further state reaches this one.
func (o *Observer) Close() {
	o.store.mu.Lock()
	delete(o.entry.observers, o)

	if len(o.entry.observers) == 0 {
		o.entry.idleSince = o.store.now()
	}
	o.store.mu.Unlock()

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}

	o.closed = true
	close(o.updates)
}

// pushInitial delivers r unless a fetch already reported a newer state.
func (o *Observer) pushInitial(r Result) {
	o.deliver(r, true)
}

// push delivers r without blocking, dropping the oldest pending state when
// the consumer lags behind.
func (o *Observer) push(r Result) {
	o.deliver(r, false)
}

func (o *Observer) deliver(r Result, initial bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || (initial && o.delivered) {
		return
	}

	o.current = r
	o.delivered = true

	for {
		select {
		case o.updates <- r:
			return
		default:
		}

		select {
		case <-o.updates:
		default:
		}
	}
}

func (s *Store) notifyLocked(e *entry) {
	if len(e.observers) == 0 {
		return
	}

	r := s.snapshotLocked(e)

	for o := range e.observers {
		o.push(r)
	}
}
