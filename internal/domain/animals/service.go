package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"my-zoo/internal/platform/cache"
)

var (
	ErrNotFound  = errors.New("animal not found")
	ErrRetrieval = errors.New("animal retrieval failed")
)

// FileURLResolver convierte la URI guardada de un archivo en una URL absoluta.
type FileURLResolver interface {
	AbsoluteURL(ctx context.Context, uri string) (string, error)
	BaseURL(ctx context.Context) string
	FromRequest() bool
}

type Service struct {
	repo  Repository
	files FileURLResolver
}

func NewService(repo Repository, files FileURLResolver) *Service {
	return &Service{
		repo:  repo,
		files: files,
	}
}

// LinkContexts son los contextos de cache de las URLs absolutas que arma el
// servicio: url.site cuando la base sale del request.
func (s *Service) LinkContexts() []string {
	if s.files == nil || !s.files.FromRequest() {
		return nil
	}
	return []string{ContextSite}
}

// ListAnimalIDs devuelve los ids de animales publicados, opcionalmente filtrados
// por el nombre de un término de hábitat. Un hábitat inexistente da lista vacía.
func (s *Service) ListAnimalIDs(ctx context.Context, habitat string) ([]int64, error) {
	q := Query{Type: BundleAnimals, PublishedOnly: true}

	if habitat = strings.TrimSpace(habitat); habitat != "" {
		terms, err := s.repo.FindTermsByName(ctx, VocabularyHabitat, habitat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
		}
		if len(terms) == 0 {
			return []int64{}, nil
		}
		// si hay varios términos con el mismo nombre se usa el primero
		termID := terms[0].ID
		q.HabitatTermID = &termID
	}

	ids, err := s.repo.QueryIDs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// LoadAnimals carga varios registros. Los ids inexistentes no aparecen en el mapa.
func (s *Service) LoadAnimals(ctx context.Context, ids []int64) (map[int64]Record, error) {
	if len(ids) == 0 {
		return map[int64]Record{}, nil
	}

	recs, err := s.repo.LoadMultiple(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	if recs == nil {
		recs = map[int64]Record{}
	}
	return recs, nil
}

// GetAnimal carga un animal y aplica la traducción de langcode si existe.
func (s *Service) GetAnimal(ctx context.Context, id int64, langcode string) (Record, error) {
	recs, err := s.LoadAnimals(ctx, []int64{id})
	if err != nil {
		return Record{}, err
	}

	rec, ok := recs[id]
	if !ok || rec.Type != BundleAnimals {
		return Record{}, ErrNotFound
	}

	rec, _ = rec.Translated(langcode)
	return rec, nil
}

// MapAnimal proyecta un registro al JSON público. Ningún campo faltante es error.
func (s *Service) MapAnimal(ctx context.Context, rec Record) Animal {
	a := Animal{
		ID:             rec.ID,
		Title:          rec.Title,
		ScientificName: nonEmpty(rec.ScientificName),
		Gender:         nonEmpty(rec.Gender),
		Habitat:        make([]string, 0, len(rec.Habitats)),
	}

	if rec.Age != nil {
		age := *rec.Age
		a.Age = &age
	}

	if rec.BirthDate != nil && !rec.BirthDate.IsZero() {
		iso := rec.BirthDate.UTC().Format(time.RFC3339)
		a.BirthDate = &iso
	}

	if rec.Photo != nil && s.files != nil {
		if u, err := s.files.AbsoluteURL(ctx, rec.Photo.URI); err == nil {
			a.Foto = &u
		}
	}

	for _, t := range habitatTerms(rec) {
		a.Habitat = append(a.Habitat, t.Name)
	}

	return a
}

// ComputeStats recorre todos los animales publicados. Devuelve además las
// dependencias de cache de todo lo leído.
func (s *Service) ComputeStats(ctx context.Context) (Stats, cache.Metadata, error) {
	deps := cache.New(cache.Permanent)

	ids, err := s.repo.QueryIDs(ctx, Query{Type: BundleAnimals, PublishedOnly: true})
	if err != nil {
		return Stats{}, deps, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	recs, err := s.LoadAnimals(ctx, ids)
	if err != nil {
		return Stats{}, deps, err
	}

	st := Stats{
		CountTotal:     len(ids),
		CountByHabitat: map[string]int{},
	}

	ageSum, ageCount := 0, 0
	for _, id := range ids {
		rec, ok := recs[id]
		if !ok {
			continue
		}
		deps = deps.AddDependency(rec)

		for _, t := range habitatTerms(rec) {
			st.CountByHabitat[t.Name]++
		}
		if rec.Age != nil {
			ageSum += *rec.Age
			ageCount++
		}
	}

	if ageCount > 0 {
		avg := float64(ageSum) / float64(ageCount)
		st.AverageAge = &avg
	}

	return st, deps, nil
}

// habitatTerms filtra las referencias a términos de otros vocabularios.
func habitatTerms(rec Record) []HabitatTerm {
	out := make([]HabitatTerm, 0, len(rec.Habitats))
	for _, t := range rec.Habitats {
		if t.Vocabulary != "" && t.Vocabulary != VocabularyHabitat {
			continue
		}
		out = append(out, t)
	}
	return out
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
