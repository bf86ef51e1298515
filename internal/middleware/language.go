package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const languageKey ctxKey = "language"

// Language negocia el idioma de contenido con Accept-Language entre los soportados.
// El primero de supported es el default.
func Language(supported []string) func(http.Handler) http.Handler {
	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, s := range supported {
		t, err := language.Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		tags = append(tags, t)
		codes = append(codes, strings.ToLower(strings.TrimSpace(s)))
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.English}
		codes = []string{"en"}
	}
	matcher := language.NewMatcher(tags)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := codes[0]
			if al := r.Header.Get("Accept-Language"); al != "" {
				if prefs, _, err := language.ParseAcceptLanguage(al); err == nil && len(prefs) > 0 {
					_, idx, conf := matcher.Match(prefs...)
					if conf != language.No {
						lang = codes[idx]
					}
				}
			}

			w.Header().Set("Content-Language", lang)
			ctx := context.WithValue(r.Context(), languageKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage devuelve el langcode negociado ("" si el middleware no corrió).
func GetLanguage(ctx context.Context) string {
	v, _ := ctx.Value(languageKey).(string)
	return v
}
