package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Dispatcher publishes table-change events and hands out subscriptions.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	// Subscribe returns a channel of events plus a cancel function that
	// releases the subscription. Callers must invoke cancel on teardown.
	Subscribe(ctx context.Context) (<-chan Event, func(), error)
}

// NewEvent fills in identity and timestamp for a change notification.
func NewEvent(table Table, op Op, rowID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Table:     table,
		Op:        op,
		RowID:     rowID,
		Timestamp: time.Now().UTC(),
	}
}

// inMemoryDispatcher fans events out to in-process subscribers. Used in
// tests and single-process deployments without redis.
type inMemoryDispatcher struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{subs: make(map[int]chan Event)}
}

func (d *inMemoryDispatcher) Publish(_ context.Context, event Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, ch := range d.subs {
		select {
		case ch <- event:
		default:
			// slow subscriber; drop rather than block the writer
		}
	}
	return nil
}

func (d *inMemoryDispatcher) Subscribe(_ context.Context) (<-chan Event, func(), error) {
	ch := make(chan Event, 16)
	d.mu.Lock()
	id := d.next
	d.next++
	d.subs[id] = ch
	d.mu.Unlock()

	cancel := func() {
		d.mu.Lock()
		if _, ok := d.subs[id]; ok {
			delete(d.subs, id)
			close(ch)
		}
		d.mu.Unlock()
	}
	return ch, cancel, nil
}
