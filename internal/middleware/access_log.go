package middleware

import (
	"net/http"
	"time"

	"my-zoo/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog registra método, path, status, latencia, IP y request id de cada request.
func AccessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"latency_ms": time.Since(start).Milliseconds(),
				"ip":         r.RemoteAddr,
				"request_id": GetRequestID(r.Context()),
			}
			if c := ww.Header().Get("X-Cache"); c != "" {
				fields["cache"] = c
			}

			if status >= http.StatusInternalServerError {
				log.Warn("request completed with errors", fields)
				return
			}
			log.Info("request completed", fields)
		})
	}
}
