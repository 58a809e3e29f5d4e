package engine

import (
	"sync"
	"sync/atomic"

	"github.com/leakmon/leakmon/internal/types"
)

// eventBus fans finding transitions out to live subscribers (watch output,
// dashboard). Delivery is best-effort: a subscriber that stops draining loses
// events rather than stalling the scanner.
type eventBus struct {
	mu      sync.Mutex
	subs    map[int]chan types.Event
	next    int
	dropped atomic.Uint64
}

func newEventBus() *eventBus {
	return &eventBus{subs: make(map[int]chan types.Event)}
}

func (b *eventBus) subscribe(buf int) (<-chan types.Event, func()) {
	if buf <= 0 {
		buf = 64
	}
	ch := make(chan types.Event, buf)
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if c, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(c)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *eventBus) publish(ev types.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

func (b *eventBus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
