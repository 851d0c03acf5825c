package platform

import (
	"context"
	"net"
	"time"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
)

const defaultPollInterval = 2 * time.Second

// Watcher derives host availability from the network interfaces: the host is
// online while at least one interface is up, is not a loopback and carries an
// address.
type Watcher struct {
	interval time.Duration
	check    func() bool
	logger   *logger.Logger
}

// NewWatcher returns a Watcher polling the interfaces every interval.
func NewWatcher(interval time.Duration, log *logger.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{
		interval: interval,
		check:    hasRoutableInterface,
		logger:   log,
	}
}

// Online implements [Signal].
func (w *Watcher) Online() bool {
	return w.check()
}

// Watch implements [Signal].
func (w *Watcher) Watch(ctx context.Context) <-chan Event {
	events := make(chan Event, 1)
	last := w.check()

	go func() {
		defer close(events)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := w.check()
				if now == last {
					continue
				}
				last = now

				ev := Offline
				if now {
					ev = Online
				}
				w.logger.Debug().Str("func", "Watcher.Watch").Stringer("event", ev).Msg("host network availability changed")

				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}

func hasRoutableInterface() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
