package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-file-vault/internal/config"
	myGRPC "github.com/MKhiriev/go-file-vault/internal/handler/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server   *grpc.Server
	listener net.Listener
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("grpc listen on %s: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler:  handler,
		server:   server,
		listener: listener,
	}, nil
}

func (g *grpcServer) Name() string {
	return "grpc"
}

func (g *grpcServer) Addr() string {
	return g.listener.Addr().String()
}

func (g *grpcServer) Serve() error {
	return g.server.Serve(g.listener)
}

// Shutdown reports NOT_SERVING first so probes stop routing traffic, then
// drains. A drain that outlives ctx is cut short.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return ctx.Err()
	}
}
