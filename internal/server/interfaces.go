package server

// Server is the lifecycle contract of the HTTP server fronting the
// catalog and record API.
//
// Implementations block in [Server.RunServer] until shutdown is requested
// and release listeners and in-flight requests in [Server.Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
