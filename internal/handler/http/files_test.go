package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-file-vault/internal/app"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

type uploadForm struct {
	filename  string
	content   []byte
	password  string
	userEmail string
	noFile    bool
}

func newUploadRequest(t *testing.T, form uploadForm) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if !form.noFile {
		part, err := mw.CreateFormFile("file", form.filename)
		require.NoError(t, err)
		_, err = part.Write(form.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("password", form.password))
	if form.userEmail != "" {
		require.NoError(t, mw.WriteField("user_email", form.userEmail))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(utils.HeaderAuthorization, "Bearer "+testToken)
	return req
}

func TestListFiles(t *testing.T) {
	t.Run("lists the files of the token subject", func(t *testing.T) {
		h, deps := newTestHandler(0)
		deps.files.listFilesFn = func(_ context.Context, email string) ([]models.FileInfo, error) {
			assert.Equal(t, testEmail, email)
			return []models.FileInfo{{Name: "report.pdf.enc", Size: 1234, Created: 1700000000.5, BlobKey: "secret"}}, nil
		}

		rr := serve(h, http.MethodGet, "/files", "", testToken)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"name":"report.pdf.enc","size":1234,"created":1700000000.5}]`, rr.Body.String())
	})

	t.Run("empty vault is an empty array", func(t *testing.T) {
		h, _ := newTestHandler(0)

		rr := serve(h, http.MethodGet, "/files", "", testToken)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("legacy user_email must match", func(t *testing.T) {
		h, _ := newTestHandler(0)

		rr := serve(h, http.MethodGet, "/files?user_email=other@vault.io", "", testToken)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("requires a token", func(t *testing.T) {
		h, _ := newTestHandler(0)

		rr := serve(h, http.MethodGet, "/files", "", "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpload(t *testing.T) {
	t.Run("stores the file", func(t *testing.T) {
		h, deps := newTestHandler(0)
		var got models.UploadRequest
		deps.files.uploadFn = func(_ context.Context, req models.UploadRequest) (models.FileInfo, error) {
			got = req
			return models.FileInfo{Name: "notes.txt.enc", Size: 60}, nil
		}

		req := newUploadRequest(t, uploadForm{filename: "notes.txt", content: []byte("hello"), password: "VK-abc", userEmail: testEmail})
		req.Header.Set(utils.HeaderContentSHA256, utils.ContentSHA256([]byte("hello")))
		rr := httptest.NewRecorder()
		h.Init().ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, models.UploadRequest{Email: testEmail, Filename: "notes.txt", PrivateKey: "VK-abc", Content: []byte("hello")}, got)
		assert.Equal(t, models.UploadResponse{Filename: "notes.txt.enc", Owner: testEmail, Status: models.StatusEncrypted},
			decodeBody[models.UploadResponse](t, rr))
	})

	tests := []struct {
		name       string
		maxSize    int64
		form       uploadForm
		digest     string
		serviceErr error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "wrong vault key",
			form:       uploadForm{filename: "a.txt", content: []byte("x"), password: "VK-nope"},
			serviceErr: service.ErrInvalidVaultKey,
			wantStatus: http.StatusBadRequest,
			wantDetail: app.MsgInvalidVaultKey,
		},
		{
			name:       "missing file field",
			form:       uploadForm{password: "VK-abc", noFile: true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "foreign user_email",
			form:       uploadForm{filename: "a.txt", content: []byte("x"), password: "VK-abc", userEmail: "other@vault.io"},
			wantStatus: http.StatusForbidden,
			wantDetail: app.MsgEmailMismatch,
		},
		{
			name:       "digest mismatch",
			form:       uploadForm{filename: "a.txt", content: []byte("x"), password: "VK-abc"},
			digest:     utils.ContentSHA256([]byte("y")),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "body over the limit",
			maxSize:    512,
			form:       uploadForm{filename: "big.bin", content: bytes.Repeat([]byte("z"), 4096), password: "VK-abc"},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantDetail: app.MsgFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(tt.maxSize)
			var called bool
			deps.files.uploadFn = func(context.Context, models.UploadRequest) (models.FileInfo, error) {
				called = true
				return models.FileInfo{}, tt.serviceErr
			}

			req := newUploadRequest(t, tt.form)
			if tt.digest != "" {
				req.Header.Set(utils.HeaderContentSHA256, tt.digest)
			}
			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, tt.serviceErr != nil, called)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeBody[models.ErrorResponse](t, rr).Detail)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	t.Run("streams the plaintext", func(t *testing.T) {
		h, deps := newTestHandler(0)
		content := []byte("quarterly numbers")
		deps.files.downloadFn = func(_ context.Context, email string, req models.DownloadRequest) (models.DownloadResult, error) {
			assert.Equal(t, testEmail, email)
			assert.Equal(t, models.DownloadRequest{Filename: "report.pdf.enc", PrivateKey: "VK-abc"}, req)
			return models.DownloadResult{Filename: "report.pdf", Content: content, SHA256: utils.ContentSHA256(content)}, nil
		}

		rr := serve(h, http.MethodPost, "/download", `{"filename":"report.pdf.enc","private_key":"VK-abc"}`, testToken)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, content, rr.Body.Bytes())
		assert.Equal(t, "application/octet-stream", rr.Header().Get("Content-Type"))
		assert.Equal(t, "report.pdf", utils.AttachmentFilename(rr.Header().Get("Content-Disposition")))
		assert.Equal(t, utils.ContentSHA256(content), rr.Header().Get(utils.HeaderContentSHA256))
	})

	failures := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"unknown file", service.ErrFileNotFound, http.StatusNotFound, app.MsgFileNotFound},
		{"foreign file", service.ErrFileAccessDenied, http.StatusForbidden, app.MsgAccessDenied},
		{"wrong key", service.ErrDecryptionFailed, http.StatusBadRequest, app.MsgDecryptionFailed},
		{"corrupted blob", service.ErrFileCorrupted, http.StatusBadRequest, app.MsgFileCorrupted},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(0)
			deps.files.downloadFn = func(context.Context, string, models.DownloadRequest) (models.DownloadResult, error) {
				return models.DownloadResult{}, tt.err
			}

			rr := serve(h, http.MethodPost, "/download", `{"filename":"x.enc","private_key":"VK-abc"}`, testToken)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantDetail, decodeBody[models.ErrorResponse](t, rr).Detail)
			assert.Empty(t, rr.Header().Get(utils.HeaderContentSHA256))
		})
	}
}
