package server

// Server defines the lifecycle contract of the application server.
//
// Implementations are expected to block in [RunServer] until a stop signal
// arrives or serving fails, and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
