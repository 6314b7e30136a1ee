package server

// Server runs the transports of the account service: the REST API and,
// when configured, the gRPC health endpoint.
type Server interface {
	// RunServer serves until SIGINT/SIGTERM and then shuts every transport
	// down.
	RunServer()

	// Shutdown stops accepting new requests and waits for in-flight ones.
	Shutdown()
}
