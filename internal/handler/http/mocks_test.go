package http

import (
	"context"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/models"
)

// ─────────────────────────────────────────────
// Mock: service.VaultService
// ─────────────────────────────────────────────

type mockVaultService struct {
	createVaultFn    func(ctx context.Context, req models.CreateVaultRequest) (string, error)
	loginVaultFn     func(ctx context.Context, req models.LoginVaultRequest) (models.Vault, error)
	verifyIdentityFn func(ctx context.Context, req models.VerifyIdentityRequest) (string, error)
	destroyVaultFn   func(ctx context.Context, email, vaultKey string) (models.DestroyResult, error)
}

func (m *mockVaultService) CreateVault(ctx context.Context, req models.CreateVaultRequest) (string, error) {
	if m.createVaultFn != nil {
		return m.createVaultFn(ctx, req)
	}
	return "VK-test", nil
}

func (m *mockVaultService) LoginVault(ctx context.Context, req models.LoginVaultRequest) (models.Vault, error) {
	if m.loginVaultFn != nil {
		return m.loginVaultFn(ctx, req)
	}
	return models.Vault{Email: req.Email}, nil
}

func (m *mockVaultService) VerifyIdentity(ctx context.Context, req models.VerifyIdentityRequest) (string, error) {
	if m.verifyIdentityFn != nil {
		return m.verifyIdentityFn(ctx, req)
	}
	return "temp-password", nil
}

func (m *mockVaultService) DestroyVault(ctx context.Context, email, vaultKey string) (models.DestroyResult, error) {
	if m.destroyVaultFn != nil {
		return m.destroyVaultFn(ctx, email, vaultKey)
	}
	return models.DestroyResult{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.FileService
// ─────────────────────────────────────────────

type mockFileService struct {
	listFilesFn func(ctx context.Context, email string) ([]models.FileInfo, error)
	uploadFn    func(ctx context.Context, req models.UploadRequest) (models.FileInfo, error)
	downloadFn  func(ctx context.Context, email string, req models.DownloadRequest) (models.DownloadResult, error)
}

func (m *mockFileService) ListFiles(ctx context.Context, email string) ([]models.FileInfo, error) {
	if m.listFilesFn != nil {
		return m.listFilesFn(ctx, email)
	}
	return nil, nil
}

func (m *mockFileService) Upload(ctx context.Context, req models.UploadRequest) (models.FileInfo, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, req)
	}
	return models.FileInfo{Name: req.Filename + models.EncryptedSuffix, Size: int64(len(req.Content))}, nil
}

func (m *mockFileService) Download(ctx context.Context, email string, req models.DownloadRequest) (models.DownloadResult, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, email, req)
	}
	return models.DownloadResult{}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AuthService
// ─────────────────────────────────────────────

// mockAuthService accepts "<email>-token" as the token of <email>.
type mockAuthService struct {
	createTokenFn func(ctx context.Context, email string) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) CreateToken(ctx context.Context, email string) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, email)
	}
	return models.Token{SignedString: email + "-token", Email: email}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	const suffix = "-token"
	if len(tokenString) <= len(suffix) || tokenString[len(tokenString)-len(suffix):] != suffix {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{Email: tokenString[:len(tokenString)-len(suffix)]}, nil
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

func (m *mockAppInfoService) Status(context.Context) models.StatusResponse {
	return models.StatusResponse{Status: models.StatusOnline, Message: app.MsgOnline}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

type testDeps struct {
	vaults *mockVaultService
	files  *mockFileService
	auth   *mockAuthService
}

func newTestHandler(maxUploadSize int64) (*Handler, *testDeps) {
	deps := &testDeps{
		vaults: &mockVaultService{},
		files:  &mockFileService{},
		auth:   &mockAuthService{},
	}
	services := &service.Services{
		VaultService:   deps.vaults,
		FileService:    deps.files,
		AuthService:    deps.auth,
		AppInfoService: &mockAppInfoService{version: "v1.2.3"},
	}
	return NewHandler(services, config.Server{MaxUploadSize: maxUploadSize}, logger.Nop()), deps
}

const (
	testEmail = "owner@vault.io"
	testToken = testEmail + "-token"
)
