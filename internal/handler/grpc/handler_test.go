package grpc

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-file-vault/internal/logger"
)

type mockPinger struct {
	mu  sync.Mutex
	err error
}

func (m *mockPinger) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *mockPinger) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func startHealthServer(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	h.Register(srv)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func checkStatus(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHandler_ServingByDefault(t *testing.T) {
	client := startHealthServer(t, NewHandler(nil, logger.Nop()))

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, VaultServiceName))
}

func TestHandler_ProbeFlipsStatus(t *testing.T) {
	pinger := &mockPinger{}
	h := NewHandler(pinger, logger.Nop())
	h.interval = 10 * time.Millisecond
	client := startHealthServer(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	pinger.setErr(errors.New("connection refused"))
	assert.Eventually(t, func() bool {
		return checkStatus(t, client, VaultServiceName) == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, checkStatus(t, client, ""))

	pinger.setErr(nil)
	assert.Eventually(t, func() bool {
		return checkStatus(t, client, VaultServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestHandler_Shutdown(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	client := startHealthServer(t, h)

	h.Shutdown()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, checkStatus(t, client, VaultServiceName))
}

func TestHandler_UnknownService(t *testing.T) {
	client := startHealthServer(t, NewHandler(nil, logger.Nop()))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "unknown"})

	assert.Error(t, err)
}
