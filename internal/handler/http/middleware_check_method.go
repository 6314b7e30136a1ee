// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/go-chi/chi/v5"
)

// hideMethodNotAllowed is installed as the router's MethodNotAllowed handler.
// A known path called with a method it does not serve (GET /register,
// PATCH /users/{id}) gets the same 404 body as an unknown path, so callers
// cannot probe which routes exist. Paths go through the router's own
// matcher, so parameterised routes are covered as well.
func hideMethodNotAllowed(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		utils.WriteDetail(w, "Not Found", http.StatusNotFound)
	}
}
