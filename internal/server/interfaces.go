package server

// Server is the lifecycle contract for transports the application runs.
//
// RunServer blocks until the listener stops. Shutdown drains in-flight
// requests and releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
