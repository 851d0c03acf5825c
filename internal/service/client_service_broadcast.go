package service

import "sync"

// broadcaster is a callback registry with replay-on-subscribe semantics.
//
// publishMu serialises subscription replays and publications, so a new
// listener never observes a value older than the one it was replayed. mu only
// guards the listener list, which lets a listener unsubscribe from inside its
// own callback.
type broadcaster[T any] struct {
	publishMu sync.Mutex

	mu        sync.Mutex
	nextID    uint64
	listeners []listenerEntry[T]
}

type listenerEntry[T any] struct {
	id uint64
	fn func(T)
}

// subscribe registers fn and hands it current() before any later publish.
func (b *broadcaster[T]) subscribe(current func() T, fn func(T)) (unsubscribe func()) {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners = append(b.listeners, listenerEntry[T]{id: id, fn: fn})
	b.mu.Unlock()

	fn(current())

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// publish runs change under the publish lock. When change reports true,
// every listener receives the returned value.
func (b *broadcaster[T]) publish(change func() (T, bool)) {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	v, ok := change()
	if !ok {
		return
	}

	b.mu.Lock()
	targets := make([]func(T), 0, len(b.listeners))
	for _, l := range b.listeners {
		targets = append(targets, l.fn)
	}
	b.mu.Unlock()

	for _, fn := range targets {
		fn(v)
	}
}

// size returns the number of registered listeners.
func (b *broadcaster[T]) size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
