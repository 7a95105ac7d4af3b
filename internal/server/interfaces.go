package server

import "context"

// Server is the lifecycle of the whole vault server.
type Server interface {
	// RunServer serves until a stop signal arrives, then shuts down
	// gracefully.
	RunServer() error

	// Run is RunServer bound to ctx instead of process signals.
	Run(ctx context.Context) error
}

// transport is one listening server managed by Server.
type transport interface {
	Name() string
	Serve() error
	Shutdown(ctx context.Context) error
}
