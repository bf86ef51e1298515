package router

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"my-zoo/internal/middleware"
	"my-zoo/internal/platform/cache"
	"my-zoo/internal/platform/logger"
)

type invalidateRequest struct {
	Tags []string `json:"tags"`
}

// invalidateHandler godoc
// @Summary Invalidar cache por tags
// @Description Invalida todas las respuestas cacheadas que llevan alguno de los tags. Requiere `X-Admin-Token`.
// @Tags admin
// @Accept json
// @Param X-Admin-Token header string true "Token de administración"
// @Param body body invalidateRequest true "Tags a invalidar"
// @Success 204
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Router /admin/cache/invalidate [post]
func invalidateHandler(pc *cache.PageCache, token string, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var in invalidateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tags := make([]string, 0, len(in.Tags))
		for _, t := range in.Tags {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		if len(tags) == 0 {
			http.Error(w, "tags required", http.StatusBadRequest)
			return
		}

		if err := pc.Invalidate(r.Context(), tags...); err != nil {
			log.Error("cache invalidation failed", map[string]any{
				"request_id": middleware.GetRequestID(r.Context()),
				"tags":       tags,
				"error":      err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Info("cache invalidated", map[string]any{"tags": tags})
		w.WriteHeader(http.StatusNoContent)
	}
}
