package files

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"
)

var (
	ErrEmptyURI          = errors.New("file uri is empty")
	ErrUnsupportedScheme = errors.New("file uri scheme is not publicly resolvable")
	ErrNoBaseURL         = errors.New("no public base url")
)

type ctxKey string

const baseURLKey ctxKey = "files_base_url"

// WithBaseURL guarda la URL base del request actual; se usa cuando no hay una configurada.
func WithBaseURL(ctx context.Context, baseURL string) context.Context {
	return context.WithValue(ctx, baseURLKey, strings.TrimRight(baseURL, "/"))
}

func BaseURLFrom(ctx context.Context) string {
	v, _ := ctx.Value(baseURLKey).(string)
	return v
}

// Resolver convierte referencias de archivo guardadas (public://foto.jpg)
// en URLs absolutas servidas por el sitio público.
type Resolver struct {
	baseURL   string
	filesPath string
}

func NewResolver(baseURL, filesPath string) *Resolver {
	return &Resolver{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		filesPath: "/" + strings.Trim(strings.TrimSpace(filesPath), "/"),
	}
}

// FromRequest indica si las URLs se derivan del request (sin base configurada).
func (r *Resolver) FromRequest() bool {
	return r.baseURL == ""
}

// BaseURL devuelve la base configurada o, si no hay, la del request.
func (r *Resolver) BaseURL(ctx context.Context) string {
	if r.baseURL != "" {
		return r.baseURL
	}
	return BaseURLFrom(ctx)
}

// AbsoluteURL resuelve uri. Las URLs http(s) se devuelven tal cual.
func (r *Resolver) AbsoluteURL(ctx context.Context, uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", ErrEmptyURI
	}

	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri, nil
	}

	rest, ok := strings.CutPrefix(uri, "public://")
	if !ok {
		return "", ErrUnsupportedScheme
	}
	rest = strings.TrimLeft(rest, "/")
	if rest == "" {
		return "", ErrEmptyURI
	}

	base := r.BaseURL(ctx)
	if base == "" {
		return "", ErrNoBaseURL
	}

	// escapar cada segmento (espacios, acentos) sin tocar los "/"
	segments := strings.Split(rest, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return base + path.Join("/", r.filesPath, strings.Join(segments, "/")), nil
}
