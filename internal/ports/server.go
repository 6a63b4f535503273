package ports

// Server defines the lifecycle of a long-running front end
type Server interface {
	// Start starts serving in the background
	Start() error

	// Stop gracefully stops the server
	Stop() error
}
