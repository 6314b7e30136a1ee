package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.recoverer)
	router.Use(withGZipRequest)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	router.Use(middleware.Timeout(h.requestTimeout))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Get("/verify-email", h.verifyEmail)
		r.Get("/api/version", h.getServerVersion)
	})

	// any authenticated caller
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/me", h.getMe)
		r.Put("/me", h.updateMe)

		// MANAGER and ADMIN only
		r.Group(func(r chi.Router) {
			r.Use(requireRoles(models.RoleManager, models.RoleAdmin))
			r.Post("/users", h.createAccount)
			r.Get("/users", h.listAccounts)
			r.Get("/users/{id}", h.getAccount)
			r.Put("/users/{id}", h.updateAccount)
			r.Delete("/users/{id}", h.deleteAccount)
			r.Post("/users/{id}/unlock", h.unlockAccount)
			r.Post("/users/{id}/reset-password", h.resetPassword)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteDetail(w, "Not Found", http.StatusNotFound)
	})
	router.MethodNotAllowed(hideMethodNotAllowed(router))

	return router
}
