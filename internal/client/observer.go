package client

import (
	"sync"

	"github.com/codelabbj/icash-admin/internal/query"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// listObserver decodes the raw states of a query observer into typed list
// results.
type listObserver[T any] struct {
	inner   *query.Observer
	updates chan mobcash.ListResult[T]
	done    chan struct{}
	once    sync.Once
}

func newListObserver[T any](inner *query.Observer) *listObserver[T] {
	o := &listObserver[T]{
		inner:   inner,
		updates: make(chan mobcash.ListResult[T], cap(inner.Updates())),
		done:    make(chan struct{}),
	}

	go o.forward()

	return o
}

func (o *listObserver[T]) forward() {
	defer close(o.updates)

	for res := range o.inner.Updates() {
		select {
		case <-o.done:
			return
		default:
		}

		select {
		case o.updates <- decodeResult[T](res):
		case <-o.done:
			return
		}
	}
}

// Updates delivers typed states until Close.
func (o *listObserver[T]) Updates() <-chan mobcash.ListResult[T] {
	return o.updates
}

// Current returns the latest state.
func (o *listObserver[T]) Current() mobcash.ListResult[T] {
	return decodeResult[T](o.inner.Current())
}

// Close unmounts the observer.
func (o *listObserver[T]) Close() {
	o.once.Do(func() {
		close(o.done)
		o.inner.Close()
	})
}
