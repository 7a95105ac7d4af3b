package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/tui"
)

// UI is the interactive front end driven by App.
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app: services and ui are required")
	}
	return &App{services: services, ui: ui, logger: logger}, nil
}

// Run checks that the server answers, then hands over to the UI. An
// unreachable server is only logged: the UI reports failures per action.
func (a *App) Run(ctx context.Context) error {
	if status, err := a.services.VaultService.ServerStatus(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("vault server is not reachable")
	} else {
		a.logger.Info().Str("status", status.Status).Msg("vault server is reachable")
	}

	if err := a.ui.Run(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			a.logger.Info().Msg("user quit")
			return nil
		}
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

var _ Client = (*App)(nil)
