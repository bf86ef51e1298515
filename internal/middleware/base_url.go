package middleware

import (
	"net/http"
	"strings"

	"my-zoo/internal/platform/files"
)

// BaseURL guarda en el contexto scheme://host del request para armar URLs absolutas
// cuando no hay PUBLIC_BASE_URL configurada.
func BaseURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if p := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); p == "http" || p == "https" {
			scheme = p
		}

		host := strings.TrimSpace(r.Header.Get("X-Forwarded-Host"))
		if host == "" {
			host = r.Host
		}

		ctx := files.WithBaseURL(r.Context(), scheme+"://"+host)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
