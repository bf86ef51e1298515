package animals

import (
	"strconv"
	"time"

	"my-zoo/internal/platform/cache"
)

const (
	// BundleAnimals es el tipo de contenido de los animales en el store.
	BundleAnimals = "my_animals"

	// VocabularyHabitat es el vocabulario de los términos de hábitat.
	VocabularyHabitat = "habitat"
)

// Tags y contextos de cache usados por las respuestas.
const (
	TagNodeList          = "node_list"
	TagTermList          = "taxonomy_term_list"
	TagHabitatVocabulary = "taxonomy_vocabulary:" + VocabularyHabitat

	ContextLanguage     = "languages:language_content"
	ContextQueryHabitat = "url.query_args:habitat"
	ContextUser         = "user"
	ContextPermissions  = "user.permissions"
	ContextSite         = "url.site"
)

// HabitatTerm es un término del vocabulario habitat.
type HabitatTerm struct {
	ID         int64
	Vocabulary string
	Name       string
}

func (t HabitatTerm) CacheMetadata() cache.Metadata {
	return cache.New(cache.Permanent).WithTags(TermTag(t.ID))
}

// FileRef referencia un archivo guardado (p.ej. public://animals/leo.jpg).
type FileRef struct {
	ID  int64
	URI string
}

// Translation contiene los campos traducibles de un registro.
type Translation struct {
	Langcode       string
	Title          string
	ScientificName *string
	Gender         *string
}

// Record es un animal tal como lo guarda el store de contenido.
type Record struct {
	ID        int64
	Type      string // bundle: my_animals
	Published bool

	Title          string
	ScientificName *string
	Gender         *string
	Age            *int
	BirthDate      *time.Time
	Photo          *FileRef

	// Referencias en orden (delta) a términos del vocabulario habitat.
	Habitats []HabitatTerm

	OwnerUserID  string
	Langcode     string
	Translations map[string]Translation

	CreatedAt time.Time
	ChangedAt time.Time
}

// CacheMetadata: el registro y todos los términos que referencia.
func (r Record) CacheMetadata() cache.Metadata {
	m := cache.New(cache.Permanent).WithTags(NodeTag(r.ID))
	for _, t := range r.Habitats {
		m = m.AddDependency(t)
	}
	return m
}

// Translated devuelve la variante en langcode si existe una traducción distinta al original.
func (r Record) Translated(langcode string) (Record, bool) {
	if langcode == "" || langcode == r.Langcode {
		return r, false
	}
	tr, ok := r.Translations[langcode]
	if !ok {
		return r, false
	}

	out := r
	out.Langcode = langcode
	if tr.Title != "" {
		out.Title = tr.Title
	}
	if tr.ScientificName != nil {
		out.ScientificName = tr.ScientificName
	}
	if tr.Gender != nil {
		out.Gender = tr.Gender
	}
	return out, true
}

func NodeTag(id int64) string {
	return "node:" + strconv.FormatInt(id, 10)
}

func TermTag(id int64) string {
	return "taxonomy_term:" + strconv.FormatInt(id, 10)
}

// Animal es la proyección pública. Los opcionales ausentes se omiten del JSON.
type Animal struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	ScientificName *string  `json:"scientific_name,omitempty"`
	Foto           *string  `json:"foto,omitempty"`
	Habitat        []string `json:"habitat"`
	Gender         *string  `json:"gender,omitempty"`
	Age            *int     `json:"age,omitempty"`
	BirthDate      *string  `json:"birth_date,omitempty"`
}

// Stats es derivado, no se guarda. AverageAge es null si ningún animal tiene edad.
type Stats struct {
	CountTotal     int            `json:"count_total"`
	CountByHabitat map[string]int `json:"count_by_habitat"`
	AverageAge     *float64       `json:"average_age"`
}
