package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"my-zoo/internal/adapters/auth/odin"
	mem "my-zoo/internal/adapters/storage/memory"
	pg "my-zoo/internal/adapters/storage/postgres"
	"my-zoo/internal/config"
	"my-zoo/internal/domain/animals"
	"my-zoo/internal/platform/logger"
	"my-zoo/internal/ports/auth"
	"my-zoo/internal/router"

	"github.com/redis/go-redis/v9"
)

// @title my-zoo API
// @version 1.0
// @description API de solo lectura de animales (my_animals) con metadatos de cache.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.App.LogLevel),
		Format: logger.ParseFormat(cfg.App.LogFormat),
		App:    cfg.App.Name,
	})

	opts := router.Options{
		Logger: log,
		Public: cfg.Public,
		Cache:  cfg.Cache,
		Limits: cfg.Limits,
	}

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		log.Error("odin client", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	opts.AuthVerifier = verifier // nil => modo dev (X-Debug-*)

	if cfg.Database.DSN != "" {
		db, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if cfg.Database.Migrate {
			if err := pg.Migrate(context.Background(), db); err != nil {
				log.Error("postgres migrate failed", map[string]any{"error": err.Error()})
				os.Exit(1)
			}
		}
		opts.DB = db
	} else {
		repo, err := newMemoryRepo(cfg.App.SeedFile, log)
		if err != nil {
			log.Error("seed load failed", map[string]any{"file": cfg.App.SeedFile, "error": err.Error()})
			os.Exit(1)
		}
		opts.Repo = repo
	}

	if cfg.Redis.Addr != "" {
		rdb, err := openRedis(cfg.Redis)
		if err != nil {
			log.Error("redis open failed", map[string]any{"addr": cfg.Redis.Addr, "error": err.Error()})
			os.Exit(1)
		}
		defer rdb.Close()
		opts.Redis = rdb
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.NewRouter(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "postgres": opts.DB != nil, "redis": opts.Redis != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", map[string]any{"error": err.Error()})
		return
	}
	log.Info("server stopped", nil)
}

func newVerifier(cfg config.AuthConfig) (auth.AuthVerifier, error) {
	if cfg.OdinBaseURL == "" || cfg.OdinAPIKey == "" {
		return nil, nil
	}
	client, err := odin.NewClient(odin.Config{BaseURL: cfg.OdinBaseURL, APIKey: cfg.OdinAPIKey})
	if err != nil {
		return nil, err
	}
	return odin.NewVerifier(client), nil
}

func newMemoryRepo(seedFile string, log logger.Logger) (animals.Repository, error) {
	repo := mem.NewAnimalsRepo()
	if seedFile == "" {
		return repo, nil
	}
	n, err := repo.LoadSeedFile(seedFile)
	if err != nil {
		return nil, err
	}
	log.Info("seed loaded", map[string]any{"file": seedFile, "animals": n})
	return repo, nil
}

func openRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
