package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mock"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/tui"
	"github.com/MKhiriev/go-file-vault/models"
)

type stubUI struct {
	err   error
	calls int
}

func (s *stubUI) Run(context.Context) error {
	s.calls++
	return s.err
}

func newTestServices(t *testing.T, statusErr error) *service.ClientServices {
	t.Helper()
	api := mock.NewMockVaultAPI(gomock.NewController(t))
	api.EXPECT().Status(gomock.Any()).Return(models.StatusResponse{Status: models.StatusOnline}, statusErr)
	api.EXPECT().SetToken(gomock.Any()).AnyTimes()
	return &service.ClientServices{
		VaultService: service.NewClientVaultService(api, nil, logger.Nop()),
	}
}

func TestApp_Run(t *testing.T) {
	tests := []struct {
		name      string
		statusErr error
		uiErr     error
		wantErr   bool
	}{
		{name: "clean exit"},
		{name: "quit with ctrl+c", uiErr: tui.ErrUserQuit},
		{name: "server down does not stop the ui", statusErr: errors.New("connection refused")},
		{name: "ui failure", uiErr: errors.New("no tty"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &stubUI{err: tt.uiErr}
			app, err := NewApp(newTestServices(t, tt.statusErr), ui, logger.Nop())
			require.NoError(t, err)

			err = app.Run(context.Background())

			assert.Equal(t, 1, ui.calls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewApp_RequiresDependencies(t *testing.T) {
	_, err := NewApp(nil, &stubUI{}, logger.Nop())
	assert.Error(t, err)
}
