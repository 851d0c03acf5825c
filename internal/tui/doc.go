// Package tui renders the client's terminal status screen.
//
// The screen shows the connectivity state, whether a sync pass is running,
// the number of queued mutations and the size of each cached collection. It
// lets the operator trigger a sync or refresh every collection from the
// backend.
package tui
