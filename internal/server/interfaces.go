package server

// Server is the backend transport lifecycle. RunServer blocks until a stop
// signal arrives and the listener has been shut down.
type Server interface {
	RunServer()
	Shutdown()
}
