package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.status)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/create-vault", h.createVault)
		r.Post("/login-vault", h.loginVault)
		r.Post("/verify-identity", h.verifyIdentity)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/files", h.listFiles)
		r.With(h.limitUploadSize).Post("/upload", h.upload)
		r.Post("/download", h.download)
		r.Post("/destroy-vault", h.destroyVault)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
