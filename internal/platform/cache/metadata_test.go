package cache

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDep struct{ meta Metadata }

func (f fakeDep) CacheMetadata() Metadata { return f.meta }

func TestMerge_MinMaxAgeAndSortedUnion(t *testing.T) {
	a := New(3600).WithTags("node:2", "node_list").WithContexts("languages:language_content")
	b := New(600).WithTags("node:1", "node:2").WithContexts("user.permissions")

	m := a.Merge(b)

	assert.Equal(t, 600, m.MaxAge)
	assert.Equal(t, []string{"node:1", "node:2", "node_list"}, m.Tags)
	assert.Equal(t, []string{"languages:language_content", "user.permissions"}, m.Contexts)
}

func TestMerge_PermanentIsIdentity(t *testing.T) {
	assert.Equal(t, 3600, New(3600).Merge(New(Permanent)).MaxAge)
	assert.Equal(t, 10, New(Permanent).Merge(New(10)).MaxAge)
	assert.Equal(t, Permanent, New(Permanent).Merge(New(Permanent)).MaxAge)
	assert.Equal(t, 0, New(0).Merge(New(Permanent)).MaxAge)
}

func TestAddDependency(t *testing.T) {
	m := New(3600).AddDependency(fakeDep{meta: New(Permanent).WithTags("taxonomy_term:7")})
	assert.Equal(t, 3600, m.MaxAge)
	assert.Equal(t, []string{"taxonomy_term:7"}, m.Tags)

	assert.Equal(t, New(5), New(5).AddDependency(nil))
}

func TestApplyHeaders_RoundTrip(t *testing.T) {
	h := http.Header{}
	m := New(3600).
		WithTags("node:1", "taxonomy_vocabulary:habitat").
		WithContexts("url.query_args:habitat", "languages:language_content", "user.permissions")

	m.ApplyHeaders(h)

	assert.Equal(t, "public, max-age=3600", h.Get("Cache-Control"))
	assert.Equal(t, "node:1 taxonomy_vocabulary:habitat", h.Get(HeaderTags))
	assert.Equal(t, "languages:language_content url.query_args:habitat user.permissions", h.Get(HeaderContexts))
	assert.Equal(t, []string{"Accept-Language", "Authorization", "X-Debug-User-ID", "X-Debug-Permissions"}, h.Values("Vary"))

	assert.Equal(t, m, FromHeaders(h))
}

func TestApplyHeaders_SiteVariesOnForwardedHeaders(t *testing.T) {
	h := http.Header{}
	New(3600).WithContexts("url.query_args:habitat", "url.site").ApplyHeaders(h)
	assert.Equal(t, []string{"X-Forwarded-Host", "X-Forwarded-Proto"}, h.Values("Vary"))
}

func TestApplyHeaders_UncacheableAndPermanent(t *testing.T) {
	h := http.Header{}
	New(0).ApplyHeaders(h)
	assert.Equal(t, "must-revalidate, no-cache, private", h.Get("Cache-Control"))
	assert.Equal(t, 0, FromHeaders(h).MaxAge)
	assert.Empty(t, h.Get(HeaderTags))

	h = http.Header{}
	New(Permanent).ApplyHeaders(h)
	assert.Equal(t, Permanent, FromHeaders(h).MaxAge)
}

func TestContextResolver(t *testing.T) {
	res := NewContextResolver()
	res.Register("languages:language_content", func(*http.Request) string { return "de" })
	res.Register("user", func(r *http.Request) string { return r.Header.Get("X-Debug-User-ID") })

	r, _ := http.NewRequest(http.MethodGet, "/api/my_animals?habitat=Forest&habitat=Desert", nil)
	r.Header.Set("X-Debug-User-ID", "u1")

	v, ok := res.Resolve(r, []string{"languages:language_content", "url.query_args:habitat", "user.permissions"})
	assert.True(t, ok)
	assert.Equal(t, "languages:language_content=de|url.query_args:habitat=Forest,Desert|user.permissions=u1", v)

	_, ok = res.Resolve(r, []string{"session"})
	assert.False(t, ok)
}
