package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-file-vault/internal/logger"
	"github.com/MKhiriev/go-file-vault/internal/service"
	"github.com/MKhiriev/go-file-vault/internal/utils"
)

// auth enforces bearer JWT authentication. On success the token subject is
// stored in the request context under [utils.EmailCtxKey]; every rejection is
// answered with 401 and a detail message.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get(utils.HeaderAuthorization)
		if authHeader == "" {
			h.writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("bearer token rejected")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithEmail(ctx, token.Email)))
	})
}

// authenticatedEmail returns the token subject set by auth. A non-empty
// claimed email from a legacy body field must match it.
func authenticatedEmail(r *http.Request, claimed string) (string, error) {
	email, ok := utils.GetEmailFromContext(r.Context())
	if !ok {
		return "", ErrNoEmailInContext
	}
	if claimed = strings.TrimSpace(claimed); claimed != "" && !strings.EqualFold(claimed, email) {
		return "", service.ErrEmailMismatch
	}
	return email, nil
}
