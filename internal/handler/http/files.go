// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

// multipartMemory is how much of an upload is kept in memory before the
// multipart reader spills to a temp file.
const multipartMemory = 8 << 20

// limitUploadSize caps the request body at the configured upload size.
func (h *Handler) limitUploadSize(next http.Handler) http.Handler {
	if h.maxUploadSize <= 0 {
		return next
	}
	return middleware.RequestSize(h.maxUploadSize)(next)
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	email, err := authenticatedEmail(r, r.URL.Query().Get("user_email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	files, err := h.services.FileService.ListFiles(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if files == nil {
		files = []models.FileInfo{}
	}

	utils.WriteJSON(w, files, http.StatusOK)
}

// upload accepts multipart/form-data with the fields file, password (the
// vault key) and an optional user_email. A client may send the plaintext
// SHA-256 in X-Content-SHA256 to have the transfer checked.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.writeError(w, r, uploadFormError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	email, err := authenticatedEmail(r, r.FormValue("user_email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: file field: %w", service.ErrInvalidDataProvided, err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("reading uploaded file: %w", err))
		return
	}

	if digest := r.Header.Get(utils.HeaderContentSHA256); digest != "" && digest != utils.ContentSHA256(content) {
		h.writeError(w, r, fmt.Errorf("%w: uploaded content does not match %s", service.ErrIntegrityCheck, utils.HeaderContentSHA256))
		return
	}

	info, err := h.services.FileService.Upload(r.Context(), models.UploadRequest{
		Email:      email,
		Filename:   header.Filename,
		PrivateKey: r.FormValue("password"),
		Content:    content,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Str("file", info.Name).Int64("size", info.Size).Msg("file stored")
	utils.WriteJSON(w, models.UploadResponse{Filename: info.Name, Owner: email, Status: models.StatusEncrypted}, http.StatusOK)
}

func uploadFormError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", service.ErrFileTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
}

// download streams the decrypted file as an attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.DownloadRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	email, err := authenticatedEmail(r, req.UserEmail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.services.FileService.Download(r.Context(), email, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "application/octet-stream")
	header.Set("Content-Disposition", utils.AttachmentDisposition(result.Filename))
	header.Set("Content-Length", strconv.Itoa(len(result.Content)))
	header.Set(utils.HeaderContentSHA256, result.SHA256)
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(result.Content); err != nil {
		log.Err(err).Str("file", result.Filename).Msg("failed to stream file")
	}
}
