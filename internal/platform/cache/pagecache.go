package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"my-zoo/internal/platform/logger"

	"github.com/prometheus/client_golang/prometheus"
)

// maxBodyBytes: respuestas más grandes no se guardan.
const maxBodyBytes = 1 << 20

// volatileHeaders son propios de cada request y no se guardan con la variante.
var volatileHeaders = []string{HeaderStatus, "X-Request-Id", "Date", "Set-Cookie"}

var Lookups = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "page_cache_lookups_total", Help: "Lookups del page cache (hit/miss/bypass)"},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(Lookups)
}

type PageCacheOptions struct {
	// DefaultTTL se usa cuando la respuesta declara max-age permanente.
	DefaultTTL time.Duration
	Logger     logger.Logger
}

// PageCache cachea respuestas 200 de GET usando los metadatos que el handler publica
// en headers. Para cada path guarda primero la lista de contextos que la respuesta
// declaró y luego la variante para los valores de esos contextos.
type PageCache struct {
	backend    Backend
	resolver   *ContextResolver
	defaultTTL time.Duration
	log        logger.Logger
}

type storedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

type storedContexts struct {
	Contexts []string `json:"contexts"`
}

func NewPageCache(backend Backend, resolver *ContextResolver, opts PageCacheOptions) *PageCache {
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &PageCache{
		backend:    backend,
		resolver:   resolver,
		defaultTTL: ttl,
		log:        log,
	}
}

func (p *PageCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		if p.serveHit(w, r) {
			Lookups.WithLabelValues("hit").Inc()
			return
		}

		if r.Method == http.MethodHead {
			Lookups.WithLabelValues("bypass").Inc()
			next.ServeHTTP(w, r)
			return
		}

		Lookups.WithLabelValues("miss").Inc()
		w.Header().Set(HeaderStatus, "MISS")

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		p.store(r, rec)
	})
}

// Invalidate borra todas las variantes asociadas a los tags.
func (p *PageCache) Invalidate(ctx context.Context, tags ...string) error {
	return p.backend.Invalidate(ctx, tags...)
}

func (p *PageCache) serveHit(w http.ResponseWriter, r *http.Request) bool {
	ctx := r.Context()

	raw, ok, err := p.backend.Get(ctx, contextsKey(r))
	if err != nil {
		p.log.Warn("page cache lookup failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
		return false
	}
	if !ok {
		return false
	}

	var sc storedContexts
	if err := json.Unmarshal(raw, &sc); err != nil {
		return false
	}

	key, ok := p.variantKey(r, sc.Contexts)
	if !ok {
		return false
	}

	raw, ok, err = p.backend.Get(ctx, key)
	if err != nil {
		p.log.Warn("page cache lookup failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
		return false
	}
	if !ok {
		return false
	}

	var sr storedResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return false
	}

	for k, vs := range sr.Header {
		w.Header()[k] = append([]string(nil), vs...)
	}
	w.Header().Set(HeaderStatus, "HIT")
	w.WriteHeader(sr.Status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(sr.Body)
	}
	return true
}

func (p *PageCache) store(r *http.Request, rec *recorder) {
	if rec.status != http.StatusOK || rec.overflow {
		return
	}

	meta := FromHeaders(rec.Header())
	if meta.MaxAge == 0 {
		return
	}

	ttl := p.defaultTTL
	if meta.MaxAge != Permanent {
		ttl = time.Duration(meta.MaxAge) * time.Second
	}

	key, ok := p.variantKey(r, meta.Contexts)
	if !ok {
		p.log.Debug("page cache skipped: unknown cache context", map[string]any{"path": r.URL.Path, "contexts": meta.Contexts})
		return
	}

	header := rec.Header().Clone()
	for _, h := range volatileHeaders {
		header.Del(h)
	}

	entry, err := json.Marshal(storedResponse{Status: rec.status, Header: header, Body: rec.body.Bytes()})
	if err != nil {
		return
	}
	ctxs, err := json.Marshal(storedContexts{Contexts: meta.Contexts})
	if err != nil {
		return
	}

	ctx := r.Context()
	if err := p.backend.Set(ctx, key, entry, ttl, meta.Tags); err != nil {
		p.log.Warn("page cache store failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
		return
	}
	if err := p.backend.Set(ctx, contextsKey(r), ctxs, ttl, nil); err != nil {
		p.log.Warn("page cache store failed", map[string]any{"path": r.URL.Path, "error": err.Error()})
	}
}

func (p *PageCache) variantKey(r *http.Request, contexts []string) (string, bool) {
	values, ok := p.resolver.Resolve(r, contexts)
	if !ok {
		return "", false
	}
	sum := sha256.Sum256([]byte(values))
	return "variant:" + pageID(r) + ":" + hex.EncodeToString(sum[:]), true
}

func contextsKey(r *http.Request) string {
	return "contexts:" + pageID(r)
}

// pageID incluye el host: las respuestas pueden llevar URLs absolutas derivadas de él.
func pageID(r *http.Request) string {
	return r.Host + r.URL.Path
}

// recorder escribe al cliente y a la vez guarda una copia del body.
type recorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
	overflow    bool
}

func (rec *recorder) WriteHeader(status int) {
	if rec.wroteHeader {
		return
	}
	rec.wroteHeader = true
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	if !rec.overflow {
		if rec.body.Len()+len(b) > maxBodyBytes {
			rec.overflow = true
			rec.body.Reset()
		} else {
			rec.body.Write(b)
		}
	}
	return rec.ResponseWriter.Write(b)
}
