package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-file-vault/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := parseErrorBody(resp.Body())
	detail := body.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, detail)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, detail)
	case http.StatusGone:
		return &goneError{detail: detail, recoveryToken: body.RecoveryToken}
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrPayloadTooLarge, detail)
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", ErrInternalServerError, detail)
	}
	return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), detail)
}

// parseErrorBody reads {"detail": ...}. Plain text bodies become the detail.
func parseErrorBody(raw []byte) models.ErrorResponse {
	var body models.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != "" {
		return body
	}
	return models.ErrorResponse{Detail: strings.TrimSpace(string(raw))}
}
