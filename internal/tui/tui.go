// Package tui is the terminal client of the vault: four pages (login,
// register, dashboard, recovery) routed by RootModel on top of bubbletea.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

var ErrUserQuit = errors.New("user quit the program")

type TUI struct {
	services    *service.ClientServices
	buildInfo   models.AppBuildInfo
	downloadDir string

	logger *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, downloadDir string, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.VaultService == nil || services.SessionService == nil {
		return nil, errors.New("tui: client services are required")
	}
	return &TUI{
		services:    services,
		buildInfo:   buildInfo,
		downloadDir: downloadDir,
		logger:      logger,
	}, nil
}

// Model builds the root model. The dashboard opens first when a session is
// saved, the login page otherwise.
func (t *TUI) Model(ctx context.Context) RootModel {
	pages := map[string]tea.Model{
		pageLogin:     NewLoginModel(ctx, t.services.VaultService),
		pageRegister:  NewRegisterModel(ctx, t.services.VaultService),
		pageDashboard: NewDashboardModel(ctx, t.services.VaultService, t.services.SessionService, t.downloadDir),
		pageRecovery:  NewRecoveryModel(ctx, t.services.VaultService),
	}

	start := pageLogin
	if _, err := t.services.SessionService.Current(ctx); err == nil {
		start = pageDashboard
	}
	t.logger.Debug().Str("page", start).Msg("starting tui")

	return NewRootModel(pages, start, t.buildInfo)
}

// Run blocks until the user quits. Quitting with ctrl+c returns ErrUserQuit.
func (t *TUI) Run(ctx context.Context) error {
	finalModel, err := tea.NewProgram(t.Model(ctx), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
