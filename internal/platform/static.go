package platform

import (
	"context"
	"sync"
)

// Static is a [Signal] whose value only changes through Set. It serves hosts
// without interface information and lets tests play platform events.
type Static struct {
	mu       sync.Mutex
	online   bool
	watchers map[chan Event]chan struct{}
}

// NewStatic returns a Static signal starting at online.
func NewStatic(online bool) *Static {
	return &Static{
		online:   online,
		watchers: make(map[chan Event]chan struct{}),
	}
}

// Online implements [Signal].
func (s *Static) Online() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

// Set changes the availability and hands the matching Event to every active
// watcher. Setting the current value again still delivers an event, as a
// host may repeat its online notification.
func (s *Static) Set(online bool) {
	s.mu.Lock()
	s.online = online
	targets := make(map[chan Event]chan struct{}, len(s.watchers))
	for in, done := range s.watchers {
		targets[in] = done
	}
	s.mu.Unlock()

	ev := Offline
	if online {
		ev = Online
	}
	for in, done := range targets {
		select {
		case in <- ev:
		case <-done:
		}
	}
}

// Watch implements [Signal].
func (s *Static) Watch(ctx context.Context) <-chan Event {
	in := make(chan Event)
	done := make(chan struct{})
	out := make(chan Event)

	s.mu.Lock()
	s.watchers[in] = done
	s.mu.Unlock()

	go func() {
		defer close(out)
		defer close(done)
		defer func() {
			s.mu.Lock()
			delete(s.watchers, in)
			s.mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-in:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
