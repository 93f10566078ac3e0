// internal/app/features/tos/routes.go
package tos

import (
	"net/http"

	apierrors "github.com/dalemusser/termsvc/internal/app/features/errors"
	"github.com/dalemusser/termsvc/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /tos. Downloads are rate limited
// per client IP when limiter is non-nil.
func Routes(h *Handler, limiter *ratelimit.Limiter) chi.Router {
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apierrors.Write(w, apierrors.TooManyRequests())
	})

	r := chi.NewRouter()
	r.With(ratelimit.Middleware(limiter, limited)).Get("/download", h.ServeDownload)
	r.Get("/version", h.ServeVersion)
	return r
}
