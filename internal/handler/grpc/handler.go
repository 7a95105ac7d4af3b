// Package grpc exposes the standard gRPC health service of the vault
// server. Load balancers and orchestrators probe it instead of the HTTP API.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-file-vault/internal/logger"
)

// VaultServiceName is the service name reported next to the overall ("")
// status.
const VaultServiceName = "filevault.Vault"

const defaultProbeInterval = 10 * time.Second

// Pinger reports whether a dependency of the server is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves grpc.health.v1. While Run is active it probes the database
// and flips the vault service between SERVING and NOT_SERVING.
type Handler struct {
	health   *health.Server
	pinger   Pinger
	interval time.Duration

	logger *logger.Logger
}

// NewHandler returns a handler that reports SERVING until the first probe
// says otherwise. pinger may be nil, in which case the status never changes.
func NewHandler(pinger Pinger, logger *logger.Logger) *Handler {
	h := &Handler{
		health:   health.NewServer(),
		pinger:   pinger,
		interval: defaultProbeInterval,
		logger:   logger,
	}
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(VaultServiceName, healthpb.HealthCheckResponse_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Run probes the database every interval until ctx is cancelled.
func (h *Handler) Run(ctx context.Context) {
	if h.pinger == nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		h.probe(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, h.interval/2)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(probeCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		h.logger.Warn().Err(err).Str("func", "*grpc.Handler.probe").Msg("database probe failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.health.SetServingStatus(VaultServiceName, status)
}

// Shutdown reports NOT_SERVING for every service and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
