package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/handler"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/workers"
)

const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer opens a listener for every configured transport. bgWorkers may
// be nil.
func NewServer(handlers *handler.Handlers, bgWorkers *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{workers: bgWorkers, logger: logger}

	if cfg.HTTPAddress != "" {
		if handlers.HTTP == nil {
			return nil, fmt.Errorf("http: %w", errMissingHandler)
		}
		httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg)
		if err != nil {
			return nil, err
		}
		servers.httpServer = httpSrv
	}
	if cfg.GRPCAddress != "" {
		if handlers.GRPC == nil {
			servers.closeListeners()
			return nil, fmt.Errorf("grpc: %w", errMissingHandler)
		}
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg)
		if err != nil {
			servers.closeListeners()
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.Run(ctx)
}

func (s *server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if s.workers != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.workers.Run(ctx)
		}()
	}

	serveErrs := make(chan error, 2)
	transports := s.transports()
	for _, t := range transports {
		s.logger.Info().Str("transport", t.Name()).Msg("launching server")
		go func(t transport) {
			if err := t.Serve(); err != nil {
				serveErrs <- fmt.Errorf("%s server: %w", t.Name(), err)
			}
		}(t)
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-serveErrs:
		s.logger.Err(runErr).Msg("server failed, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	var shutdownErrs []error
	for _, t := range transports {
		if err := t.Shutdown(shutdownCtx); err != nil {
			shutdownErrs = append(shutdownErrs, fmt.Errorf("%s shutdown: %w", t.Name(), err))
		}
	}

	cancel()
	wg.Wait()

	s.logger.Info().Msg("server Shutdown gracefully")
	return errors.Join(append([]error{runErr}, shutdownErrs...)...)
}

func (s *server) transports() []transport {
	var ts []transport
	if s.httpServer != nil {
		ts = append(ts, s.httpServer)
	}
	if s.gRPCServer != nil {
		ts = append(ts, s.gRPCServer)
	}
	return ts
}

func (s *server) closeListeners() {
	if s.httpServer != nil {
		s.httpServer.listener.Close()
	}
}
