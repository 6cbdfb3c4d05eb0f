// Package fetch holds a full-collection list read from the backend together
// with its load status.
package fetch

import (
	"context"
	"sync"
	"time"

	"grocery.GO/core/notify"
)

type Status string

const (
	StatusIdle     Status = "idle"
	StatusFetching Status = "fetching"
	StatusReady    Status = "ready"
	StatusFailed   Status = "failed"
)

// LoadFunc reads the whole collection.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// Snapshot is a consistent view of a Fetcher. Items is shared and must be
// treated as read-only.
type Snapshot[T any] struct {
	Items     []T
	Status    Status
	Err       error
	FetchedAt time.Time
}

// Fetcher owns one list. Every Fetcher has its own lock; a hung load only
// holds up callers of that Fetcher's Refresh.
type Fetcher[T any] struct {
	name      string
	load      LoadFunc[T]
	notifier  notify.Notifier
	failure   notify.Notification
	mu        sync.Mutex
	items     []T
	status    Status
	err       error
	fetchedAt time.Time
	gen       uint64
	detached  bool
}

// New builds a Fetcher. failure is the notification emitted when a load fails.
func New[T any](name string, load LoadFunc[T], n notify.Notifier, failure notify.Notification) *Fetcher[T] {
	if n == nil {
		n = notify.Discard{}
	}
	return &Fetcher[T]{
		name:     name,
		load:     load,
		notifier: n,
		failure:  failure,
		items:    []T{},
		status:   StatusIdle,
	}
}

func (f *Fetcher[T]) Name() string {
	return f.name
}

// Refresh issues exactly one read. On success the held list is replaced
// wholesale; on failure it is emptied and the failure notification is sent.
// No retry. A result that is no longer current (a newer Refresh started, or the
// Fetcher was detached) is dropped. Once issued the read is not cancelled by
// ctx; the list may be shared by callers other than the one that asked.
func (f *Fetcher[T]) Refresh(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	f.mu.Lock()
	if f.detached {
		f.mu.Unlock()
		return nil
	}
	f.gen++
	gen := f.gen
	f.status = StatusFetching
	f.mu.Unlock()

	items, err := f.load(ctx)

	f.mu.Lock()
	if f.detached || gen != f.gen {
		f.mu.Unlock()
		return nil
	}
	if err != nil {
		f.items = []T{}
		f.status = StatusFailed
		f.err = err
		f.mu.Unlock()
		f.notifier.Notify(f.failure)
		return err
	}
	if items == nil {
		items = []T{}
	}
	f.items = items
	f.status = StatusReady
	f.err = nil
	f.fetchedAt = time.Now()
	f.mu.Unlock()
	return nil
}

// Activate refreshes if the Fetcher has never been loaded or its last load
// failed. A ready or in-flight list is left alone.
func (f *Fetcher[T]) Activate(ctx context.Context) error {
	f.mu.Lock()
	load := f.status == StatusIdle || f.status == StatusFailed
	f.mu.Unlock()
	if !load {
		return nil
	}
	return f.Refresh(ctx)
}

// Detach marks the owning view as gone; in-flight and later results are ignored.
func (f *Fetcher[T]) Detach() {
	f.mu.Lock()
	f.detached = true
	f.mu.Unlock()
}

func (f *Fetcher[T]) Snapshot() Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot[T]{Items: f.items, Status: f.status, Err: f.err, FetchedAt: f.fetchedAt}
}

func (f *Fetcher[T]) Items() []T {
	return f.Snapshot().Items
}

func (f *Fetcher[T]) Status() Status {
	return f.Snapshot().Status
}

func (f *Fetcher[T]) Err() error {
	return f.Snapshot().Err
}
