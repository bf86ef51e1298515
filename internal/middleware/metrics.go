package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas HTTP:
// - http_requests_total: requests por ruta, método y status
// - http_request_duration_seconds: latencia por ruta y método
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Requests HTTP (por ruta/método/status)"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "Latencia HTTP (segundos)", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// patrón de ruta (no el path concreto) para no explotar la cardinalidad
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		HTTPLatency.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
