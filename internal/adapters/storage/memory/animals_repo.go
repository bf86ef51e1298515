package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"my-zoo/internal/domain/animals"
)

var (
	ErrInvalidRecord = errors.New("record id required")
)

// AnimalsRepo es el store in-memory (dev/tests). Guarda registros y términos;
// las referencias a hábitat se resuelven al leer para reflejar cambios de términos.
type AnimalsRepo struct {
	mu      sync.RWMutex
	byID    map[int64]animals.Record
	termsBy map[int64]animals.HabitatTerm
}

func NewAnimalsRepo() *AnimalsRepo {
	return &AnimalsRepo{
		byID:    make(map[int64]animals.Record),
		termsBy: make(map[int64]animals.HabitatTerm),
	}
}

// Put crea o reemplaza un registro.
func (r *AnimalsRepo) Put(rec animals.Record) error {
	if rec.ID <= 0 {
		return ErrInvalidRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec.Habitats = append([]animals.HabitatTerm(nil), rec.Habitats...)
	r.byID[rec.ID] = rec
	return nil
}

// PutTerm crea o reemplaza un término.
func (r *AnimalsRepo) PutTerm(t animals.HabitatTerm) error {
	if t.ID <= 0 {
		return errors.New("term id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.termsBy[t.ID] = t
	return nil
}

func (r *AnimalsRepo) QueryIDs(_ context.Context, q animals.Query) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Record, 0)
	for _, rec := range r.byID {
		if q.Type != "" && rec.Type != q.Type {
			continue
		}
		if q.PublishedOnly && !rec.Published {
			continue
		}
		if q.HabitatTermID != nil && !hasHabitat(rec, *q.HabitatTermID) {
			continue
		}
		out = append(out, rec)
	}

	// created DESC, id DESC para empates
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	ids := make([]int64, 0, len(out))
	for _, rec := range out {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (r *AnimalsRepo) LoadMultiple(_ context.Context, ids []int64) (map[int64]animals.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[int64]animals.Record, len(ids))
	for _, id := range ids {
		rec, ok := r.byID[id]
		if !ok {
			continue
		}

		// referencias colgadas (término borrado) se omiten
		habitats := make([]animals.HabitatTerm, 0, len(rec.Habitats))
		for _, ref := range rec.Habitats {
			if t, ok := r.termsBy[ref.ID]; ok {
				habitats = append(habitats, t)
			}
		}
		rec.Habitats = habitats
		out[id] = rec
	}
	return out, nil
}

func (r *AnimalsRepo) FindTermsByName(_ context.Context, vocabulary, name string) ([]animals.HabitatTerm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.HabitatTerm, 0)
	for _, t := range r.termsBy {
		if t.Vocabulary == vocabulary && t.Name == name {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func hasHabitat(rec animals.Record, termID int64) bool {
	for _, t := range rec.Habitats {
		if t.ID == termID {
			return true
		}
	}
	return false
}
