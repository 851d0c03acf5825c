// Package platform reports whether the host itself believes it has network
// access. It is the coarse signal the connectivity monitor combines with
// active backend probes.
package platform

import "context"

// Event is a change of host network availability.
type Event int

const (
	Offline Event = iota
	Online
)

func (e Event) String() string {
	if e == Online {
		return "online"
	}
	return "offline"
}

// Signal is a source of host online/offline information.
type Signal interface {
	// Online reports the current host network availability.
	Online() bool

	// Watch delivers an Event on every availability change until ctx is
	// done, then closes the channel.
	Watch(ctx context.Context) <-chan Event
}
