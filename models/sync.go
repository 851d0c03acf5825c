package models

import "time"

// SyncReport summarises one sync call.
type SyncReport struct {
	// Started is when the drain pass began. Zero when Skipped.
	Started time.Time

	// Skipped is true when another drain pass was already running and this
	// call did nothing.
	Skipped bool

	// Replayed is the number of mutations applied and removed from the queue.
	Replayed int

	// Failed is the number of mutations left in the queue after a failed replay.
	Failed int

	// Remaining is the queue length observed after the pass, including
	// mutations enqueued while it ran. It is -1 when the queue could not be
	// counted.
	Remaining int

	// Err is set when the queue snapshot could not be read at all.
	Err error
}
