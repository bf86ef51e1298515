package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"my-zoo/internal/middleware"
	"my-zoo/internal/platform/cache"
	"my-zoo/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	listMaxAge  = 3600
	itemMaxAge  = 3600
	statsMaxAge = 600
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/my_animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc, log))

		// "stats" es ruta estática: chi la resuelve antes que {id}
		ar.Get("/stats", statsHandler(svc, log))

		ar.Get("/{id:[0-9]+}", getAnimalHandler(svc, log))
		ar.Get("/{id:[0-9]+}/hal", getAnimalHALHandler(svc, log))
	})
}

type listResponse struct {
	Items []Animal `json:"items"`
}

type statsResponse struct {
	Items []Stats `json:"items"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista los animales publicados, del más reciente al más antiguo. Con `habitat` filtra por nombre de término; un hábitat inexistente devuelve lista vacía.
// @Tags animals
// @Produce json
// @Param habitat query string false "Nombre del hábitat (p.ej. Forest)"
// @Param Accept-Language header string false "Idioma de contenido"
// @Success 200 {object} listResponse
// @Failure 500 {string} string "internal error"
// @Router /api/my_animals [get]
func listAnimalsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		habitat := r.URL.Query().Get("habitat")

		ids, err := svc.ListAnimalIDs(ctx, habitat)
		if err != nil {
			internalError(w, r, log, err)
			return
		}

		recs, err := svc.LoadAnimals(ctx, ids)
		if err != nil {
			internalError(w, r, log, err)
			return
		}

		meta := cache.New(listMaxAge).
			WithContexts(ContextQueryHabitat, ContextLanguage).
			WithContexts(svc.LinkContexts()...).
			WithTags(TagNodeList, TagHabitatVocabulary)

		// mismo orden que la query de ids (created DESC)
		items := make([]Animal, 0, len(ids))
		for _, id := range ids {
			rec, ok := recs[id]
			if !ok {
				continue
			}
			items = append(items, svc.MapAnimal(ctx, rec))
			meta = meta.AddDependency(rec)
		}

		writeCacheable(w, http.StatusOK, "application/json", listResponse{Items: items}, meta)
	}
}

// getAnimalHandler godoc
// @Summary Obtener un animal
// @Description Devuelve un animal por id. Si existe traducción para el idioma negociado, se usa.
// @Tags animals
// @Produce json
// @Param id path int true "ID del animal"
// @Param Accept-Language header string false "Idioma de contenido"
// @Success 200 {object} listResponse
// @Failure 404 {string} string "not found"
// @Failure 500 {string} string "internal error"
// @Router /api/my_animals/{id} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadForRequest(w, r, svc, log)
		if !ok {
			return
		}

		claims, _ := middleware.GetClaims(r.Context())
		access := CheckViewAccess(rec, claims)

		meta := cache.New(itemMaxAge).
			WithTags(NodeTag(rec.ID)).
			WithContexts(ContextLanguage).
			WithContexts(svc.LinkContexts()...).
			AddDependency(rec).
			AddDependency(access)

		writeCacheable(w, http.StatusOK, "application/json", listResponse{Items: []Animal{svc.MapAnimal(r.Context(), rec)}}, meta)
	}
}

// getAnimalHALHandler godoc
// @Summary Obtener un animal (HAL)
// @Description Devuelve un animal en formato hal+json. Si el usuario no puede verlo responde 404 (no 403), igual que si no existiera. Autenticación: `X-Debug-User-ID` / `X-Debug-Permissions` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags animals
// @Produce application/hal+json
// @Param id path int true "ID del animal"
// @Param Accept-Language header string false "Idioma de contenido"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Permissions header string false "Solo en modo dev, permisos separados por coma"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} HALDocument
// @Failure 404 {string} string "not found"
// @Failure 500 {string} string "internal error"
// @Router /api/my_animals/{id}/hal [get]
func getAnimalHALHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := loadForRequest(w, r, svc, log)
		if !ok {
			return
		}

		claims, _ := middleware.GetClaims(r.Context())
		access := CheckViewAccess(rec, claims)
		if !access.Allowed {
			// no revelar la existencia del registro
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		meta := cache.New(itemMaxAge).
			WithTags(NodeTag(rec.ID)).
			WithContexts(ContextLanguage).
			WithContexts(svc.LinkContexts()...).
			AddDependency(rec).
			AddDependency(access)

		writeCacheable(w, http.StatusOK, HALContentType, svc.HAL(r.Context(), rec), meta)
	}
}

// statsHandler godoc
// @Summary Estadísticas de animales
// @Description Total de animales publicados, conteo por hábitat y edad promedio (null si ningún animal tiene edad).
// @Tags animals
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 500 {string} string "internal error"
// @Router /api/my_animals/stats [get]
func statsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, deps, err := svc.ComputeStats(r.Context())
		if err != nil {
			internalError(w, r, log, err)
			return
		}

		meta := cache.New(statsMaxAge).
			WithTags(TagNodeList, TagTermList).
			Merge(deps)

		writeCacheable(w, http.StatusOK, "application/json", statsResponse{Items: []Stats{st}}, meta)
	}
}

// loadForRequest resuelve {id} y el idioma, y escribe 404/500 si corresponde.
func loadForRequest(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (Record, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "not found", http.StatusNotFound)
		return Record{}, false
	}

	rec, err := svc.GetAnimal(r.Context(), id, middleware.GetLanguage(r.Context()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return Record{}, false
		}
		internalError(w, r, log, err)
		return Record{}, false
	}
	return rec, true
}

func internalError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	log.Error("animals request failed", map[string]any{
		"request_id": middleware.GetRequestID(r.Context()),
		"path":       r.URL.Path,
		"error":      err.Error(),
	})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// writeCacheable escribe el body con los headers de cache de meta.
func writeCacheable(w http.ResponseWriter, status int, contentType string, v any, meta cache.Metadata) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if !strings.Contains(contentType, "charset") && strings.HasPrefix(contentType, "application/json") {
		w.Header().Set("Content-Type", contentType+"; charset=UTF-8")
	}
	meta.ApplyHeaders(w.Header())
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
