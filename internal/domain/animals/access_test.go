package animals

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"my-zoo/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckViewAccess(t *testing.T) {
	published := Record{ID: 1, Type: BundleAnimals, Published: true, OwnerUserID: "keeper-1"}
	draft := Record{ID: 2, Type: BundleAnimals, Published: false, OwnerUserID: "keeper-1"}

	anyPerm := auth.Claims{UserID: "admin", Permissions: []string{PermissionViewAnyUnpublished}}
	ownPerm := auth.Claims{UserID: "keeper-1", Permissions: []string{PermissionViewOwnUnpublished}}
	ownPermOther := auth.Claims{UserID: "keeper-2", Permissions: []string{PermissionViewOwnUnpublished}}
	ownerNoPerm := auth.Claims{UserID: "keeper-1"}

	assert.True(t, CheckViewAccess(published, auth.Claims{}).Allowed)
	assert.False(t, CheckViewAccess(draft, auth.Claims{}).Allowed)
	assert.True(t, CheckViewAccess(draft, anyPerm).Allowed)
	assert.True(t, CheckViewAccess(draft, ownPerm).Allowed)
	assert.False(t, CheckViewAccess(draft, ownPermOther).Allowed)
	assert.False(t, CheckViewAccess(draft, ownerNoPerm).Allowed)
}

func TestCheckViewAccess_CacheContexts(t *testing.T) {
	pub := CheckViewAccess(Record{ID: 1, Published: true}, auth.Claims{}).CacheMetadata()
	assert.Equal(t, []string{ContextPermissions}, pub.Contexts)
	assert.Equal(t, []string{"node:1"}, pub.Tags)

	denied := CheckViewAccess(Record{ID: 2}, auth.Claims{}).CacheMetadata()
	assert.Equal(t, []string{ContextUser, ContextPermissions}, denied.Contexts)
}

func TestHAL_Document(t *testing.T) {
	svc := NewService(newTestRepo(), stubFiles{base: "https://zoo.example.org"})
	rec := Record{
		ID:        5,
		Type:      BundleAnimals,
		Published: true,
		Title:     "Sahra",
		Photo:     &FileRef{ID: 3, URI: "camel.jpg"},
		Habitats:  []HabitatTerm{desert, {ID: 12, Vocabulary: VocabularyHabitat, Name: "Steppe & Grass"}},
		Langcode:  "en",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	doc := svc.HAL(context.Background(), rec)
	b, err := json.Marshal(doc)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	links := got["_links"].(map[string]any)
	assert.Equal(t, "https://zoo.example.org/api/my_animals/5/hal", links["self"].(map[string]any)["href"])
	assert.Equal(t, "https://zoo.example.org/rest/type/node/my_animals", links["type"].(map[string]any)["href"])
	assert.Equal(t, "https://zoo.example.org/files/camel.jpg", links["foto"].(map[string]any)["href"])

	habitat := links["habitat"].([]any)
	require.Len(t, habitat, 2)
	assert.Equal(t, "https://zoo.example.org/api/my_animals?habitat=Steppe+%26+Grass", habitat[1].(map[string]any)["href"])

	assert.Equal(t, float64(5), got["id"])
	assert.Equal(t, "Sahra", got["title"])
	assert.Equal(t, "en", got["langcode"])
	assert.Equal(t, true, got["status"])
	assert.Equal(t, "2024-01-02T03:04:05Z", got["created"])
	assert.NotContains(t, got, "age")

	embedded := got["_embedded"].(map[string]any)["habitat"].([]any)
	require.Len(t, embedded, 2)
	first := embedded[0].(map[string]any)
	assert.Equal(t, "Desert", first["name"])
	assert.Equal(t, "https://zoo.example.org/taxonomy/term/11", first["_links"].(map[string]any)["self"].(map[string]any)["href"])
}
