package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

// ─────────────────────────────────────────────────────────────
// fakeVaults
// ─────────────────────────────────────────────────────────────

type fakeVaults struct {
	service.ClientVaultService

	registerFn func(ctx context.Context, req models.CreateVaultRequest) (string, error)
	loginFn    func(ctx context.Context, req models.LoginVaultRequest) (models.Session, error)
	recoverFn  func(ctx context.Context, req models.VerifyIdentityRequest) (string, error)
	listFn     func(ctx context.Context) ([]models.FileInfo, error)
	downloadFn func(ctx context.Context, name, dir string) (string, error)
	destroyFn  func(ctx context.Context) (models.DestroyVaultResponse, error)
	logoutFn   func(ctx context.Context) error
}

func (f *fakeVaults) Register(ctx context.Context, req models.CreateVaultRequest) (string, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeVaults) Login(ctx context.Context, req models.LoginVaultRequest) (models.Session, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeVaults) Recover(ctx context.Context, req models.VerifyIdentityRequest) (string, error) {
	return f.recoverFn(ctx, req)
}

func (f *fakeVaults) ListFiles(ctx context.Context) ([]models.FileInfo, error) {
	return f.listFn(ctx)
}

func (f *fakeVaults) Download(ctx context.Context, name, dir string) (string, error) {
	return f.downloadFn(ctx, name, dir)
}

func (f *fakeVaults) Destroy(ctx context.Context) (models.DestroyVaultResponse, error) {
	return f.destroyFn(ctx)
}

func (f *fakeVaults) Logout(ctx context.Context) error {
	return f.logoutFn(ctx)
}

// ─────────────────────────────────────────────────────────────
// fakeSessions
// ─────────────────────────────────────────────────────────────

type fakeSessions struct {
	service.ClientSessionService

	currentFn func(ctx context.Context) (models.Session, error)
}

func (f *fakeSessions) Current(ctx context.Context) (models.Session, error) {
	return f.currentFn(ctx)
}

// ─────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// collect runs cmd and flattens batches into the produced messages. Only
// use it on commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// navigation returns the first NavigateTo produced by cmd.
func navigation(cmd tea.Cmd) (NavigateTo, bool) {
	for _, msg := range collect(cmd) {
		if nav, ok := msg.(NavigateTo); ok {
			return nav, true
		}
	}
	return NavigateTo{}, false
}

func keyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}
