// Package server runs the vault server: the HTTP API, the gRPC health
// endpoint and the background workers share one lifetime that ends on
// SIGINT, SIGTERM or SIGQUIT.
package server
