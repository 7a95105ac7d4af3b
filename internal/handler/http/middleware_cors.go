package http

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/MKhiriev/go-file-vault/internal/utils"
)

// corsMaxAge is how long, in seconds, a browser may cache a preflight answer.
const corsMaxAge = 600

// withCORS allows every origin. Preflight requests are answered here and
// never reach the router.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", utils.HeaderAuthorization, utils.HeaderTraceID, utils.HeaderContentSHA256},
		ExposedHeaders: []string{"Content-Disposition", utils.HeaderAuthorization, utils.HeaderTraceID, utils.HeaderContentSHA256},
		MaxAge:         corsMaxAge,
	})(next)
}
