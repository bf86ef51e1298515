package cache

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Permanent indica que la dependencia no limita el max-age.
const Permanent = -1

// permanentSeconds es el max-age publicado en HTTP para Permanent (1 año).
const permanentSeconds = 365 * 24 * 60 * 60

const (
	HeaderTags     = "X-Cache-Tags"
	HeaderContexts = "X-Cache-Contexts"
	HeaderStatus   = "X-Cache"
)

// Metadata describe la cacheabilidad de una respuesta:
// - MaxAge: frescura en segundos (0 = no cacheable, Permanent = sin límite)
// - Tags: claves de invalidación de todo lo leído
// - Contexts: dimensiones del request que generan variantes
type Metadata struct {
	MaxAge   int
	Tags     []string
	Contexts []string
}

// Cacheable lo implementan los valores que aportan dependencias (registros, términos, accesos).
type Cacheable interface {
	CacheMetadata() Metadata
}

func New(maxAge int) Metadata {
	return Metadata{MaxAge: maxAge}
}

func (m Metadata) WithTags(tags ...string) Metadata {
	m.Tags = union(m.Tags, tags)
	return m
}

func (m Metadata) WithContexts(contexts ...string) Metadata {
	m.Contexts = union(m.Contexts, contexts)
	return m
}

// Merge combina dos metadatos: max-age mínimo, tags y contextos unidos.
func (m Metadata) Merge(o Metadata) Metadata {
	return Metadata{
		MaxAge:   mergeMaxAge(m.MaxAge, o.MaxAge),
		Tags:     union(m.Tags, o.Tags),
		Contexts: union(m.Contexts, o.Contexts),
	}
}

func (m Metadata) AddDependency(c Cacheable) Metadata {
	if c == nil {
		return m
	}
	return m.Merge(c.CacheMetadata())
}

func (m Metadata) HasContext(name string) bool {
	for _, c := range m.Contexts {
		if c == name {
			return true
		}
	}
	return false
}

// varyByContext mapea un contexto (o su raíz) a los headers HTTP que lo determinan.
var varyByContext = map[string][]string{
	"languages": {"Accept-Language"},
	"user":      {"Authorization", "X-Debug-User-ID", "X-Debug-Permissions"},
	"url.site":  {"X-Forwarded-Host", "X-Forwarded-Proto"},
}

func varyHeaders(c string) []string {
	if v, ok := varyByContext[c]; ok {
		return v
	}
	return varyByContext[contextRoot(c)]
}

// ApplyHeaders escribe Cache-Control, Vary y los headers de tags/contextos.
func (m Metadata) ApplyHeaders(h http.Header) {
	switch {
	case m.MaxAge == 0:
		h.Set("Cache-Control", "must-revalidate, no-cache, private")
	case m.MaxAge == Permanent:
		h.Set("Cache-Control", "public, max-age="+strconv.Itoa(permanentSeconds))
	default:
		h.Set("Cache-Control", "public, max-age="+strconv.Itoa(m.MaxAge))
	}

	if len(m.Tags) > 0 {
		h.Set(HeaderTags, strings.Join(m.Tags, " "))
	}
	if len(m.Contexts) > 0 {
		h.Set(HeaderContexts, strings.Join(m.Contexts, " "))
	}

	seen := map[string]struct{}{}
	for _, c := range m.Contexts {
		for _, v := range varyHeaders(c) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			h.Add("Vary", v)
		}
	}
}

// FromHeaders reconstruye los metadatos publicados por ApplyHeaders.
func FromHeaders(h http.Header) Metadata {
	m := Metadata{
		MaxAge:   parseMaxAge(h.Get("Cache-Control")),
		Tags:     union(nil, strings.Fields(h.Get(HeaderTags))),
		Contexts: union(nil, strings.Fields(h.Get(HeaderContexts))),
	}
	if m.MaxAge >= permanentSeconds {
		m.MaxAge = Permanent
	}
	return m
}

func parseMaxAge(cc string) int {
	for _, part := range strings.Split(cc, ",") {
		part = strings.TrimSpace(part)
		if part == "no-cache" || part == "no-store" {
			return 0
		}
		if v, ok := strings.CutPrefix(part, "max-age="); ok {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return 0
			}
			return n
		}
	}
	return 0
}

func mergeMaxAge(a, b int) int {
	switch {
	case a == Permanent:
		return b
	case b == Permanent:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

func union(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, s := range a {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = struct{}{}
		}
	}
	for _, s := range b {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}

	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// contextRoot: "user.permissions" -> "user", "url.query_args:habitat" -> "url".
func contextRoot(c string) string {
	if i := strings.IndexAny(c, ".:"); i >= 0 {
		return c[:i]
	}
	return c
}
