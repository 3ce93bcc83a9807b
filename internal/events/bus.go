// Package events delivers proxy events on a single goroutine, in the order
// they were posted, and fans them out to SSE subscribers.
package events

import (
	"context"
	"slices"
	"sync"

	"github.com/roadrover/ivi-audio/internal/models"
)

const subBufferSize = 8

// Handler consumes events on the delivery goroutine.
type Handler func(models.Event)

// syncMarker is queued by Sync and acknowledged when the delivery goroutine
// reaches it.
type syncMarker struct {
	done chan struct{}
}

func (syncMarker) Kind() models.EventKind { return "" }

// Bus queues posted events and delivers them from the goroutine running Run.
// Handlers always see every event in post order. Channel subscribers that are
// slow to consume events have events dropped rather than stalling delivery.
type Bus struct {
	mu       sync.Mutex
	queue    []models.Event
	wake     chan struct{}
	handlers map[int]Handler
	nextID   int
	subs     map[string]chan models.Event
}

// NewBus creates a new event bus. Nothing is delivered until Run is started.
func NewBus() *Bus {
	return &Bus{
		wake:     make(chan struct{}, 1),
		handlers: make(map[int]Handler),
		subs:     make(map[string]chan models.Event),
	}
}

// Post queues ev for delivery. It never blocks and never drops.
func (b *Bus) Post(ev models.Event) {
	b.mu.Lock()
	b.queue = append(b.queue, ev)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Handle registers h and returns a function that removes it.
func (b *Bus) Handle(h Handler) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Run delivers queued events until ctx is cancelled. Exactly one goroutine
// should run it; that goroutine is the only one handlers are called from.
func (b *Bus) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.wake:
		}

		for {
			b.mu.Lock()
			batch := b.queue
			b.queue = nil
			b.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			for _, ev := range batch {
				b.deliver(ev)
			}
		}
	}
}

func (b *Bus) deliver(ev models.Event) {
	if m, ok := ev.(syncMarker); ok {
		close(m.done)
		return
	}

	b.mu.Lock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Drop if subscriber is slow
		}
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Sync blocks until every event posted before the call has been delivered,
// or ctx is done.
func (b *Bus) Sync(ctx context.Context) error {
	m := syncMarker{done: make(chan struct{})}
	b.Post(m)
	select {
	case <-m.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe creates a new subscription with the given ID.
// The returned channel will receive delivered events.
// Call Unsubscribe when done to clean up. Subscribing again with a live ID
// closes the earlier channel.
func (b *Bus) Subscribe(id string) <-chan models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.subs[id]; ok {
		close(prev)
	}
	ch := make(chan models.Event, subBufferSize)
	b.subs[id] = ch
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
