package memory

import (
	"context"
	"testing"
	"time"

	"my-zoo/internal/domain/animals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
terms:
  - id: 10
    name: Forest
  - id: 11
    name: Desert
animals:
  - id: 1
    title: Bruno
    scientific_name: Ursus arctos
    age: 5
    birth_date: "2019-03-14"
    photo: public://animals/bruno.jpg
    habitats: [Forest]
    created: 2024-05-01T12:00:00Z
    translations:
      de:
        title: Bruno (de)
  - id: 2
    title: Sahra
    age: 3
    habitats: [Desert, Forest]
    created: 2024-05-01T13:00:00Z
  - id: 3
    title: Hidden
    published: false
    owner: keeper-1
    created: 2024-05-01T14:00:00Z
`

func TestAnimalsRepo_LoadSeed(t *testing.T) {
	repo := NewAnimalsRepo()
	n, err := repo.LoadSeed([]byte(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	recs, err := repo.LoadMultiple(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	bruno := recs[1]
	assert.Equal(t, animals.BundleAnimals, bruno.Type)
	assert.True(t, bruno.Published)
	assert.Equal(t, "en", bruno.Langcode)
	assert.Equal(t, "Ursus arctos", *bruno.ScientificName)
	assert.Equal(t, time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC), *bruno.BirthDate)
	assert.Equal(t, "public://animals/bruno.jpg", bruno.Photo.URI)
	assert.Equal(t, "Bruno (de)", bruno.Translations["de"].Title)

	assert.Equal(t, []string{"Desert", "Forest"}, []string{recs[2].Habitats[0].Name, recs[2].Habitats[1].Name})
	assert.False(t, recs[3].Published)
	assert.Equal(t, "keeper-1", recs[3].OwnerUserID)
}

func TestAnimalsRepo_LoadSeed_UnknownHabitat(t *testing.T) {
	repo := NewAnimalsRepo()
	_, err := repo.LoadSeed([]byte("animals:\n  - id: 1\n    title: X\n    habitats: [Ocean]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ocean")
}

func TestAnimalsRepo_QueryIDs(t *testing.T) {
	repo := NewAnimalsRepo()
	_, err := repo.LoadSeed([]byte(seedYAML))
	require.NoError(t, err)

	// mismo created: desempata id DESC
	require.NoError(t, repo.Put(animals.Record{ID: 4, Type: animals.BundleAnimals, Published: true, CreatedAt: time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)}))
	require.NoError(t, repo.Put(animals.Record{ID: 5, Type: "article", Published: true}))

	ctx := context.Background()
	ids, err := repo.QueryIDs(ctx, animals.Query{Type: animals.BundleAnimals, PublishedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 2, 1}, ids)

	desert := int64(11)
	ids, err = repo.QueryIDs(ctx, animals.Query{Type: animals.BundleAnimals, PublishedOnly: true, HabitatTermID: &desert})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)

	ids, err = repo.QueryIDs(ctx, animals.Query{Type: animals.BundleAnimals})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 2, 1}, ids)
}

func TestAnimalsRepo_TermsResolvedOnRead(t *testing.T) {
	repo := NewAnimalsRepo()
	_, err := repo.LoadSeed([]byte(seedYAML))
	require.NoError(t, err)

	require.NoError(t, repo.PutTerm(animals.HabitatTerm{ID: 10, Vocabulary: animals.VocabularyHabitat, Name: "Woodland"}))

	recs, err := repo.LoadMultiple(context.Background(), []int64{1, 99})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Woodland", recs[1].Habitats[0].Name)

	terms, err := repo.FindTermsByName(context.Background(), animals.VocabularyHabitat, "Forest")
	require.NoError(t, err)
	assert.Empty(t, terms)

	terms, err = repo.FindTermsByName(context.Background(), animals.VocabularyHabitat, "Woodland")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, int64(10), terms[0].ID)
}

func TestAnimalsRepo_PutValidates(t *testing.T) {
	repo := NewAnimalsRepo()
	assert.ErrorIs(t, repo.Put(animals.Record{}), ErrInvalidRecord)
	assert.Error(t, repo.PutTerm(animals.HabitatTerm{}))
}
