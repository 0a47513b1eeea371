package middleware

import (
	"context"
	"mime"
	"net/http"
	"slices"
	"time"

	dErrors "github.com/wiratR/batch-transaction-viewer/pkg/domain-errors"
	"github.com/wiratR/batch-transaction-viewer/pkg/platform/httputil"
)

// Timeout bounds the request context.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MaxBodyBytes caps the request body; reads past n fail with *http.MaxBytesError.
func MaxBodyBytes(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && n > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireContentType rejects body-carrying requests whose Content-Type is set
// to something other than one of types. A missing Content-Type is accepted.
func RequireContentType(types ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				next.ServeHTTP(w, r)
				return
			}
			header := r.Header.Get("Content-Type")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			mediaType, _, err := mime.ParseMediaType(header)
			if err != nil || !slices.Contains(types, mediaType) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnsupportedMediaType, "unsupported content type "+header))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON requires application/json bodies.
func ContentTypeJSON(next http.Handler) http.Handler {
	return RequireContentType("application/json")(next)
}
