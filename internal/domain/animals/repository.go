package animals

import "context"

// Query filtra registros por tipo, estado y referencia a un término de hábitat.
// Los resultados se ordenan por created_at DESC (id DESC para empates).
type Query struct {
	Type          string
	PublishedOnly bool
	HabitatTermID *int64
}

type Repository interface {
	QueryIDs(ctx context.Context, q Query) ([]int64, error)
	// LoadMultiple ignora los ids inexistentes.
	LoadMultiple(ctx context.Context, ids []int64) (map[int64]Record, error)
	FindTermsByName(ctx context.Context, vocabulary, name string) ([]HabitatTerm, error)
}
