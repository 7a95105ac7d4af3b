// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-file-vault/internal/utils"
	"github.com/MKhiriev/go-file-vault/models"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// It answers 405 with the methods the matched route does accept in the
// Allow header, in the same {"detail": ...} shape as every other error.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			for method := range route.Handlers {
				w.Header().Add("Allow", method)
			}
			break
		}

		utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusMethodNotAllowed)}, http.StatusMethodNotAllowed)
	}
}

// notFound answers unknown paths in the API error shape.
func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Detail: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}
