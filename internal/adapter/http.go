package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-file-vault/internal/config"
	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

type httpVaultAPI struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPVaultAPI constructs the resty implementation of [VaultAPI]. It
// normalises cfg.ServerURL (a missing scheme defaults to http) and applies
// cfg.RequestTimeout to every call.
//
// Returns [ErrInvalidServerURL] if the address is empty or cannot be parsed.
func NewHTTPVaultAPI(cfg config.Adapter, logger *logger.Logger) (VaultAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidServerURL, err)
	}

	return &httpVaultAPI{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpVaultAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpVaultAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpVaultAPI) Status(ctx context.Context) (models.StatusResponse, error) {
	var status models.StatusResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get("/")
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	return status, nil
}

// CreateVault POSTs to /create-vault. The returned key is never stored by the
// adapter.
func (h *httpVaultAPI) CreateVault(ctx context.Context, req models.CreateVaultRequest) (models.CreateVaultResponse, error) {
	var created models.CreateVaultResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/create-vault")
	if err != nil {
		return models.CreateVaultResponse{}, fmt.Errorf("create vault request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreateVaultResponse{}, err
	}

	return created, nil
}

// LoginVault POSTs to /login-vault. On success the bearer token is taken from
// the Authorization response header and stored via SetToken.
func (h *httpVaultAPI) LoginVault(ctx context.Context, req models.LoginVaultRequest) (models.LoginVaultResponse, error) {
	var login models.LoginVaultResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&login).
		Post("/login-vault")
	if err != nil {
		return models.LoginVaultResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginVaultResponse{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get(utils.HeaderAuthorization))
	if err != nil {
		return models.LoginVaultResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return login, nil
}

func (h *httpVaultAPI) VerifyIdentity(ctx context.Context, req models.VerifyIdentityRequest) (models.VerifyIdentityResponse, error) {
	var verified models.VerifyIdentityResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&verified).
		Post("/verify-identity")
	if err != nil {
		return models.VerifyIdentityResponse{}, fmt.Errorf("verify identity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VerifyIdentityResponse{}, err
	}

	return verified, nil
}

func (h *httpVaultAPI) DestroyVault(ctx context.Context, req models.DestroyVaultRequest) (models.DestroyVaultResponse, error) {
	var destroyed models.DestroyVaultResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&destroyed).
		Post("/destroy-vault")
	if err != nil {
		return models.DestroyVaultResponse{}, fmt.Errorf("destroy vault request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DestroyVaultResponse{}, err
	}

	return destroyed, nil
}

func (h *httpVaultAPI) ListFiles(ctx context.Context) ([]models.FileInfo, error) {
	var files []models.FileInfo

	resp, err := h.authedRequest(ctx).
		SetResult(&files).
		Get("/files")
	if err != nil {
		return nil, fmt.Errorf("list files request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if files == nil {
		files = []models.FileInfo{}
	}
	return files, nil
}

// Upload sends req as multipart form data with the fields file, password and,
// when set, user_email.
func (h *httpVaultAPI) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error) {
	var uploaded models.UploadResponse

	form := map[string]string{"password": req.PrivateKey}
	if req.Email != "" {
		form["user_email"] = req.Email
	}

	resp, err := h.authedRequest(ctx).
		SetFileReader("file", req.Filename, bytes.NewReader(req.Content)).
		SetFormData(form).
		SetResult(&uploaded).
		Post("/upload")
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResponse{}, err
	}

	return uploaded, nil
}

// Download POSTs to /download and checks the body against X-Content-SHA256
// when the server sends it. The filename comes from Content-Disposition and
// falls back to the requested name without its .enc suffix.
func (h *httpVaultAPI) Download(ctx context.Context, req models.DownloadRequest) (models.DownloadResult, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/download")
	if err != nil {
		return models.DownloadResult{}, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DownloadResult{}, err
	}

	content := resp.Body()
	sum := utils.ContentSHA256(content)
	if announced := resp.Header().Get(utils.HeaderContentSHA256); announced != "" && !strings.EqualFold(announced, sum) {
		logger.FromContext(ctx).Warn().
			Str("func", "*httpVaultAPI.Download").
			Str("announced", announced).
			Str("computed", sum).
			Msg("download digest mismatch")
		return models.DownloadResult{}, ErrIntegrityCheck
	}

	filename := utils.AttachmentFilename(resp.Header().Get("Content-Disposition"))
	if filename == "" {
		filename = models.StripEncryptedSuffix(req.Filename)
	}

	return models.DownloadResult{Filename: filename, Content: content, SHA256: sum}, nil
}

func (h *httpVaultAPI) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
