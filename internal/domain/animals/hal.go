package animals

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const HALContentType = "application/hal+json; charset=UTF-8"

type halLink struct {
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

type halLinks struct {
	Self       halLink   `json:"self"`
	Type       halLink   `json:"type"`
	Collection halLink   `json:"collection"`
	Habitat    []halLink `json:"habitat"`
	Foto       *halLink  `json:"foto,omitempty"`
}

type halTerm struct {
	Links      map[string]halLink `json:"_links"`
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Vocabulary string             `json:"vocabulary"`
}

type halEmbedded struct {
	Habitat []halTerm `json:"habitat"`
}

// HALDocument es la representación hal+json de un animal.
type HALDocument struct {
	Links halLinks `json:"_links"`

	Animal

	Langcode string `json:"langcode"`
	Status   bool   `json:"status"`
	Created  string `json:"created"`
	Changed  string `json:"changed"`

	Embedded halEmbedded `json:"_embedded"`
}

// HAL arma el documento HAL con links absolutos a la API.
func (s *Service) HAL(ctx context.Context, rec Record) HALDocument {
	base := ""
	if s.files != nil {
		base = s.files.BaseURL(ctx)
	}
	a := s.MapAnimal(ctx, rec)

	doc := HALDocument{
		Links: halLinks{
			Self:       halLink{Href: base + "/api/my_animals/" + strconv.FormatInt(rec.ID, 10) + "/hal"},
			Type:       halLink{Href: base + "/rest/type/node/" + BundleAnimals},
			Collection: halLink{Href: base + "/api/my_animals"},
			Habitat:    make([]halLink, 0, len(rec.Habitats)),
		},
		Animal:   a,
		Langcode: rec.Langcode,
		Status:   rec.Published,
		Created:  formatTime(rec.CreatedAt),
		Changed:  formatTime(rec.ChangedAt),
		Embedded: halEmbedded{Habitat: make([]halTerm, 0, len(rec.Habitats))},
	}

	if a.Foto != nil {
		doc.Links.Foto = &halLink{Href: *a.Foto}
	}

	for _, t := range habitatTerms(rec) {
		doc.Links.Habitat = append(doc.Links.Habitat, halLink{
			Href:  base + "/api/my_animals?habitat=" + url.QueryEscape(t.Name),
			Title: t.Name,
		})
		doc.Embedded.Habitat = append(doc.Embedded.Habitat, halTerm{
			Links: map[string]halLink{
				"self": {Href: base + "/taxonomy/term/" + strconv.FormatInt(t.ID, 10)},
			},
			ID:         t.ID,
			Name:       t.Name,
			Vocabulary: VocabularyHabitat,
		})
	}

	return doc
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
