package cache

import (
	"net/http"
	"strings"
)

const queryArgsPrefix = "url.query_args:"

// ContextFunc devuelve el valor de un contexto de cache para el request.
type ContextFunc func(r *http.Request) string

// ContextResolver traduce contextos ("languages:language_content", "user", ...)
// a valores concretos del request. url.query_args:<name> viene incluido.
type ContextResolver struct {
	funcs map[string]ContextFunc
}

func NewContextResolver() *ContextResolver {
	return &ContextResolver{funcs: map[string]ContextFunc{}}
}

func (c *ContextResolver) Register(name string, fn ContextFunc) {
	c.funcs[strings.TrimSpace(name)] = fn
}

// Resolve devuelve "ctx=valor|ctx=valor" en el orden recibido.
// ok=false si algún contexto es desconocido (no se puede cachear con seguridad).
func (c *ContextResolver) Resolve(r *http.Request, contexts []string) (string, bool) {
	parts := make([]string, 0, len(contexts))
	for _, name := range contexts {
		v, ok := c.value(r, name)
		if !ok {
			return "", false
		}
		parts = append(parts, name+"="+v)
	}
	return strings.Join(parts, "|"), true
}

func (c *ContextResolver) value(r *http.Request, name string) (string, bool) {
	if fn, ok := c.funcs[name]; ok {
		return fn(r), true
	}

	if arg, ok := strings.CutPrefix(name, queryArgsPrefix); ok && arg != "" {
		return strings.Join(r.URL.Query()[arg], ","), true
	}

	// Un contexto padre es más granular que sus hijos ("user" cubre "user.permissions").
	for i := strings.LastIndex(name, "."); i > 0; i = strings.LastIndex(name, ".") {
		name = name[:i]
		if fn, ok := c.funcs[name]; ok {
			return fn(r), true
		}
	}
	return "", false
}
