package memory

import (
	"fmt"
	"os"
	"time"

	"my-zoo/internal/domain/animals"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Terms   []seedTerm   `yaml:"terms"`
	Animals []seedAnimal `yaml:"animals"`
}

type seedTerm struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type seedTranslation struct {
	Title          string  `yaml:"title"`
	ScientificName *string `yaml:"scientific_name"`
	Gender         *string `yaml:"gender"`
}

type seedAnimal struct {
	ID             int64     `yaml:"id"`
	Published      *bool     `yaml:"published"`
	Title          string    `yaml:"title"`
	ScientificName *string   `yaml:"scientific_name"`
	Gender         *string   `yaml:"gender"`
	Age            *int      `yaml:"age"`
	BirthDate      string    `yaml:"birth_date"`
	Photo          string    `yaml:"photo"`
	PhotoID        int64     `yaml:"photo_id"`
	Habitats       []string  `yaml:"habitats"`
	Owner          string    `yaml:"owner"`
	Langcode       string    `yaml:"langcode"`
	Created        time.Time `yaml:"created"`
	Changed        time.Time `yaml:"changed"`

	Translations map[string]seedTranslation `yaml:"translations"`
}

// LoadSeedFile carga términos y animales desde un YAML. Los animales
// referencian hábitats por nombre.
func (r *AnimalsRepo) LoadSeedFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return r.LoadSeed(b)
}

func (r *AnimalsRepo) LoadSeed(data []byte) (int, error) {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}

	byName := make(map[string]animals.HabitatTerm, len(sf.Terms))
	for _, st := range sf.Terms {
		t := animals.HabitatTerm{ID: st.ID, Vocabulary: animals.VocabularyHabitat, Name: st.Name}
		if err := r.PutTerm(t); err != nil {
			return 0, fmt.Errorf("term %q: %w", st.Name, err)
		}
		byName[st.Name] = t
	}

	for _, sa := range sf.Animals {
		rec, err := sa.record(byName)
		if err != nil {
			return 0, fmt.Errorf("animal %d: %w", sa.ID, err)
		}
		if err := r.Put(rec); err != nil {
			return 0, fmt.Errorf("animal %d: %w", sa.ID, err)
		}
	}

	return len(sf.Animals), nil
}

func (sa seedAnimal) record(terms map[string]animals.HabitatTerm) (animals.Record, error) {
	rec := animals.Record{
		ID:             sa.ID,
		Type:           animals.BundleAnimals,
		Published:      sa.Published == nil || *sa.Published,
		Title:          sa.Title,
		ScientificName: sa.ScientificName,
		Gender:         sa.Gender,
		Age:            sa.Age,
		OwnerUserID:    sa.Owner,
		Langcode:       sa.Langcode,
		CreatedAt:      sa.Created.UTC(),
		ChangedAt:      sa.Changed.UTC(),
	}
	if rec.Langcode == "" {
		rec.Langcode = "en"
	}
	if rec.ChangedAt.IsZero() {
		rec.ChangedAt = rec.CreatedAt
	}

	if sa.BirthDate != "" {
		bd, err := time.Parse(time.DateOnly, sa.BirthDate)
		if err != nil {
			bd, err = time.Parse(time.RFC3339, sa.BirthDate)
			if err != nil {
				return animals.Record{}, fmt.Errorf("birth_date: %w", err)
			}
		}
		rec.BirthDate = &bd
	}

	if sa.Photo != "" {
		id := sa.PhotoID
		if id == 0 {
			id = sa.ID
		}
		rec.Photo = &animals.FileRef{ID: id, URI: sa.Photo}
	}

	for _, name := range sa.Habitats {
		t, ok := terms[name]
		if !ok {
			return animals.Record{}, fmt.Errorf("unknown habitat %q", name)
		}
		rec.Habitats = append(rec.Habitats, t)
	}

	if len(sa.Translations) > 0 {
		rec.Translations = make(map[string]animals.Translation, len(sa.Translations))
		for lang, tr := range sa.Translations {
			rec.Translations[lang] = animals.Translation{
				Langcode:       lang,
				Title:          tr.Title,
				ScientificName: tr.ScientificName,
				Gender:         tr.Gender,
			}
		}
	}

	return rec, nil
}
