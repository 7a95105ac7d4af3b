package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-file-vault/internal/adapter"
	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/mock"
	"github.com/MKhiriev/go-file-vault/internal/store"
	"github.com/MKhiriev/go-file-vault/models"
)

// memorySessionRepository is an in-memory store.SessionRepository.
type memorySessionRepository struct {
	session *models.Session
	loadErr error
}

func (m *memorySessionRepository) Save(_ context.Context, session models.Session) error {
	m.session = &session
	return nil
}

func (m *memorySessionRepository) Load(context.Context) (models.Session, error) {
	if m.loadErr != nil {
		return models.Session{}, m.loadErr
	}
	if m.session == nil {
		return models.Session{}, store.ErrSessionNotFound
	}
	return *m.session, nil
}

func (m *memorySessionRepository) Clear(context.Context) error {
	m.session = nil
	return nil
}

var savedSession = models.Session{Email: testEmail, VaultKey: testVaultKey, Token: "tok"}

func newTestClientVaultSvc(t *testing.T, ctrl *gomock.Controller, session *models.Session) (*clientVaultService, *mock.MockVaultAPI, *memorySessionRepository) {
	t.Helper()
	api := mock.NewMockVaultAPI(ctrl)
	repo := &memorySessionRepository{session: session}
	svc := NewClientVaultService(api, NewClientSessionService(repo), logger.Nop()).(*clientVaultService)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc, api, repo
}

func withSession() *models.Session {
	s := savedSession
	return &s
}

// ── Session service ─────────────────────────────────────────────────────────

func TestClientSessionService(t *testing.T) {
	repo := &memorySessionRepository{}
	svc := NewClientSessionService(repo)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	assert.ErrorIs(t, svc.Save(ctx, models.Session{Email: testEmail}), ErrInvalidDataProvided)

	require.NoError(t, svc.Save(ctx, savedSession))
	got, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, savedSession, got)

	require.NoError(t, svc.Clear(ctx))
	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	repo.loadErr = errStorage
	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, errStorage)
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestClientVaultService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, nil)
	ctx := context.Background()
	req := models.CreateVaultRequest{Email: testEmail, Password: testPassword, SecurityAnswer: testAnswer}

	api.EXPECT().CreateVault(ctx, req).Return(models.CreateVaultResponse{PrivateKey: testVaultKey}, nil)

	key, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, testVaultKey, key)
	assert.Nil(t, repo.session, "registration saves nothing")
}

func TestClientVaultService_Register_Conflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, nil)

	api.EXPECT().CreateVault(gomock.Any(), gomock.Any()).
		Return(models.CreateVaultResponse{}, fmt.Errorf("%w: %s", adapter.ErrConflict, app.MsgVaultAlreadyExists))

	_, err := svc.Register(context.Background(), models.CreateVaultRequest{Email: testEmail})
	require.ErrorIs(t, err, ErrVaultAlreadyExists)
	assert.Equal(t, app.MsgVaultAlreadyExists, err.Error())
}

func TestClientVaultService_Login_SavesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, nil)
	req := models.LoginVaultRequest{Email: " " + testEmail, Password: testPassword, PrivateKey: testVaultKey + "\n"}

	gomock.InOrder(
		api.EXPECT().LoginVault(gomock.Any(), req).Return(models.LoginVaultResponse{Status: models.StatusAuthenticated}, nil),
		api.EXPECT().Token().Return("fresh-token"),
	)

	session, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.Session{Email: testEmail, VaultKey: testVaultKey, Token: "fresh-token", CreatedAt: time.Unix(1700000000, 0)}, session)
	require.NotNil(t, repo.session)
	assert.Equal(t, session, *repo.session)
}

func TestClientVaultService_Login_Errors(t *testing.T) {
	tests := []struct {
		name    string
		apiErr  error
		wantErr error
	}{
		{"locked", fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgVaultLocked), ErrVaultLocked},
		{"any forbidden", fmt.Errorf("%w: %s", adapter.ErrForbidden, "Access Denied."), ErrVaultLocked},
		{"bad credentials", fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgInvalidCredentials), ErrInvalidCredentials},
		{"destroyed", fmt.Errorf("%w: %s", adapter.ErrGone, app.MsgVaultDestroyed), ErrVaultDestroyed},
		{"server down", errors.New("dial tcp: connection refused"), ErrServerUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, api, repo := newTestClientVaultSvc(t, ctrl, nil)
			api.EXPECT().LoginVault(gomock.Any(), gomock.Any()).Return(models.LoginVaultResponse{}, tt.apiErr)

			_, err := svc.Login(context.Background(), models.LoginVaultRequest{Email: testEmail})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, repo.session)
		})
	}
}

// ── Recover ─────────────────────────────────────────────────────────────────

func TestClientVaultService_Recover(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, nil)
	req := models.VerifyIdentityRequest{Email: testEmail, SecurityAnswer: testAnswer}

	api.EXPECT().VerifyIdentity(gomock.Any(), req).Return(models.VerifyIdentityResponse{TempPassword: "tmp-pass-123"}, nil)

	temp, err := svc.Recover(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "tmp-pass-123", temp)
}

func TestClientVaultService_Recover_WrongAnswerDestroys(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, withSession())

	// a 410 built by the adapter from {"detail":..., "recovery_token":...}
	goneErr := goneFromServer(t, "REC-1700000000-ABCDEF12")
	api.EXPECT().VerifyIdentity(gomock.Any(), gomock.Any()).Return(models.VerifyIdentityResponse{}, goneErr)
	api.EXPECT().SetToken("")

	_, err := svc.Recover(context.Background(), models.VerifyIdentityRequest{Email: testEmail, SecurityAnswer: "wrong"})

	require.ErrorIs(t, err, ErrVaultDestroyed)
	var destroyed *VaultDestroyedError
	require.True(t, errors.As(err, &destroyed))
	assert.Equal(t, "REC-1700000000-ABCDEF12", destroyed.RecoveryToken)
	assert.Nil(t, repo.session)
}

func TestClientVaultService_Recover_UnlockedVault(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, withSession())

	apiErr := fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgVaultNotLocked)
	api.EXPECT().VerifyIdentity(gomock.Any(), gomock.Any()).Return(models.VerifyIdentityResponse{}, apiErr)

	_, err := svc.Recover(context.Background(), models.VerifyIdentityRequest{Email: testEmail, SecurityAnswer: "wrong"})

	require.ErrorIs(t, err, ErrVaultNotLocked)
	assert.Equal(t, app.MsgVaultNotLocked, err.Error())
	assert.NotNil(t, repo.session)
}

// ── Authenticated operations ────────────────────────────────────────────────

func TestClientVaultService_RequiresSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestClientVaultSvc(t, ctrl, nil)
	ctx := context.Background()

	_, err := svc.ListFiles(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Upload(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Download(ctx, "a.txt", t.TempDir())
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = svc.Destroy(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClientVaultService_ListFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, withSession())
	files := []models.FileInfo{{Name: "a.txt.enc", Size: 10}}

	gomock.InOrder(
		api.EXPECT().SetToken("tok"),
		api.EXPECT().ListFiles(gomock.Any()).Return(files, nil),
	)

	got, err := svc.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, files, got)
}

func TestClientVaultService_ListFiles_ExpiredTokenDropsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, withSession())

	api.EXPECT().SetToken(gomock.Any()).Times(2)
	api.EXPECT().ListFiles(gomock.Any()).Return(nil, fmt.Errorf("%w: %s", adapter.ErrUnauthorized, app.MsgTokenIsExpiredOrInvalid))

	_, err := svc.ListFiles(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Nil(t, repo.session)
}

func TestClientVaultService_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, withSession())
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	api.EXPECT().SetToken("tok")
	api.EXPECT().Upload(gomock.Any(), models.UploadRequest{
		Email: testEmail, Filename: "notes.txt", PrivateKey: testVaultKey, Content: []byte("hello"),
	}).Return(models.UploadResponse{Filename: "notes.txt.enc", Status: models.StatusEncrypted}, nil)

	got, err := svc.Upload(context.Background(), "  "+path+" ")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt.enc", got.Filename)
}

func TestClientVaultService_Upload_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, withSession())
	api.EXPECT().SetToken(gomock.Any()).AnyTimes()

	_, err := svc.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "big.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	api.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(models.UploadResponse{}, fmt.Errorf("%w: %s", adapter.ErrPayloadTooLarge, app.MsgFileTooLarge))

	_, err = svc.Upload(context.Background(), path)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestClientVaultService_Download(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, withSession())
	dir := t.TempDir()

	api.EXPECT().SetToken("tok")
	api.EXPECT().Download(gomock.Any(), models.DownloadRequest{
		Filename: "report.pdf.enc", PrivateKey: testVaultKey, UserEmail: testEmail,
	}).Return(models.DownloadResult{Filename: "../../report.pdf", Content: []byte("pdf")}, nil)

	path, err := svc.Download(context.Background(), "report.pdf.enc", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(written))
}

func TestClientVaultService_Download_Errors(t *testing.T) {
	tests := []struct {
		name    string
		apiErr  error
		wantErr error
		detail  string
	}{
		{"wrong key", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgDecryptionFailed), ErrDecryptionFailed, app.MsgDecryptionFailed},
		{"corrupted", fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgFileCorrupted), ErrFileCorrupted, app.MsgFileCorrupted},
		{"foreign", fmt.Errorf("%w: %s", adapter.ErrForbidden, app.MsgAccessDenied), ErrFileAccessDenied, app.MsgAccessDenied},
		{"missing", fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgFileNotFound), ErrFileNotFound, app.MsgFileNotFound},
		{"tampered", adapter.ErrIntegrityCheck, ErrIntegrityCheck, ErrIntegrityCheck.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, api, repo := newTestClientVaultSvc(t, ctrl, withSession())
			api.EXPECT().SetToken("tok")
			api.EXPECT().Download(gomock.Any(), gomock.Any()).Return(models.DownloadResult{}, tt.apiErr)

			_, err := svc.Download(context.Background(), "x", t.TempDir())
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.detail, err.Error())
			assert.NotNil(t, repo.session, "file errors keep the session")
		})
	}
}

func TestClientVaultService_Destroy(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, withSession())

	gomock.InOrder(
		api.EXPECT().SetToken("tok"),
		api.EXPECT().DestroyVault(gomock.Any(), models.DestroyVaultRequest{UserEmail: testEmail, PrivateKey: testVaultKey}).
			Return(models.DestroyVaultResponse{Status: models.StatusVaultDestroyed, FilesAffected: 3, RecoveryToken: "REC-1-AAAAAAAA"}, nil),
		api.EXPECT().SetToken(""),
	)

	got, err := svc.Destroy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got.FilesAffected)
	assert.Nil(t, repo.session)
}

func TestClientVaultService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, repo := newTestClientVaultSvc(t, ctrl, withSession())
	api.EXPECT().SetToken("")

	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, repo.session)
}

func TestClientVaultService_ServerStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _ := newTestClientVaultSvc(t, ctrl, nil)
	api.EXPECT().Status(gomock.Any()).Return(models.StatusResponse{Status: models.StatusOnline}, nil)

	got, err := svc.ServerStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnline, got.Status)
}

// goneFromServer returns the error the real adapter produces for a 410
// answer of verify-identity.
func goneFromServer(t *testing.T, recoveryToken string) error {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusGone)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Detail: app.MsgIdentityFailed, RecoveryToken: recoveryToken})
	}))
	defer srv.Close()

	api, err := adapter.NewHTTPVaultAPI(config.Adapter{ServerURL: srv.URL}, logger.Nop())
	require.NoError(t, err)
	_, err = api.VerifyIdentity(context.Background(), models.VerifyIdentityRequest{Email: testEmail})
	require.ErrorIs(t, err, adapter.ErrGone)
	return err
}
