package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Server
		wantErr  error
		wantHTTP bool
		wantGRPC bool
	}{
		{
			name:     "both transports",
			cfg:      config.Server{HTTPAddress: ":8000", GRPCAddress: ":9000", MaxUploadSize: 1 << 20},
			wantHTTP: true,
			wantGRPC: true,
		},
		{
			name:     "http only",
			cfg:      config.Server{HTTPAddress: ":8000"},
			wantHTTP: true,
		},
		{
			name:     "grpc only",
			cfg:      config.Server{GRPCAddress: ":9000"},
			wantGRPC: true,
		},
		{
			name:    "no address",
			cfg:     config.Server{},
			wantErr: errNoHandlersAreCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// constructors only keep the services pointer
			h, err := NewHandlers(&service.Services{}, nil, tt.cfg, logger.Nop())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}
