package router

import (
	"database/sql"
	"net/http"
	"sort"
	"strings"

	_ "my-zoo/docs"
	mem "my-zoo/internal/adapters/storage/memory"
	pg "my-zoo/internal/adapters/storage/postgres"
	"my-zoo/internal/config"
	"my-zoo/internal/domain/animals"
	"my-zoo/internal/middleware"
	"my-zoo/internal/platform/cache"
	"my-zoo/internal/platform/files"
	"my-zoo/internal/platform/logger"
	"my-zoo/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Store: Repo si viene; si no, Postgres con DB; si no, in-memory vacío.
	Repo animals.Repository
	DB   *sql.DB

	// Opcional: si viene, el page cache vive en Redis. Si no, in-memory.
	Redis redis.UniversalClient

	Logger logger.Logger

	Public config.PublicConfig
	Cache  config.CacheConfig
	Limits config.LimitsConfig
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	repo := opts.Repo
	if repo == nil {
		if opts.DB != nil {
			repo = pg.NewAnimalsRepo(opts.DB)
		} else {
			repo = mem.NewAnimalsRepo()
		}
	}

	var backend cache.Backend
	if opts.Redis != nil {
		backend = cache.NewRedisBackend(opts.Redis)
	} else {
		backend = cache.NewMemoryBackend()
	}

	pageCache := cache.NewPageCache(backend, newContextResolver(), cache.PageCacheOptions{
		DefaultTTL: opts.Cache.DefaultTTL,
		Logger:     log,
	})

	svc := animals.NewService(repo, files.NewResolver(opts.Public.BaseURL, opts.Public.FilesPath))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Metrics)
	r.Use(middleware.RateLimit(opts.Limits.RPS, opts.Limits.Burst))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.Cache.AdminToken != "" {
		r.Post("/admin/cache/invalidate", invalidateHandler(pageCache, opts.Cache.AdminToken, log))
	}

	r.Group(func(api chi.Router) {
		api.Use(middleware.BaseURL)
		api.Use(middleware.Language(opts.Public.Languages))
		api.Use(middleware.AuthContext(opts.AuthVerifier))
		api.Use(pageCache.Middleware)

		animals.RegisterRoutes(api, svc, log)
	})

	return r
}

// newContextResolver registra los contextos de cache que usan los handlers.
func newContextResolver() *cache.ContextResolver {
	res := cache.NewContextResolver()

	res.Register(animals.ContextLanguage, func(r *http.Request) string {
		return middleware.GetLanguage(r.Context())
	})
	res.Register(animals.ContextSite, func(r *http.Request) string {
		return files.BaseURLFrom(r.Context())
	})
	res.Register(animals.ContextUser, func(r *http.Request) string {
		claims, _ := middleware.GetClaims(r.Context())
		return claims.UserID
	})
	res.Register(animals.ContextPermissions, func(r *http.Request) string {
		claims, _ := middleware.GetClaims(r.Context())
		perms := append([]string(nil), claims.Permissions...)
		sort.Strings(perms)
		return strings.Join(perms, ",")
	})

	return res
}
