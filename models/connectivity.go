package models

// ConnectivityState is the tri-state backend reachability signal published
// by the connectivity monitor.
type ConnectivityState string

const (
	StateOnline   ConnectivityState = "online"
	StateOffline  ConnectivityState = "offline"
	StateChecking ConnectivityState = "checking"
)
