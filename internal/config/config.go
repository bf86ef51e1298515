package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	App      AppConfig
	Public   PublicConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	DSN     string // vacío => store in-memory
	Migrate bool
}

type RedisConfig struct {
	Addr     string // vacío => cache in-memory
	Password string
	DB       int
}

type AppConfig struct {
	Name      string
	LogLevel  string
	LogFormat string
	SeedFile  string // fixtures YAML para el store in-memory (opcional)
}

type PublicConfig struct {
	BaseURL   string // p.ej. https://zoo.example.org; vacío => se deriva del request
	FilesPath string
	Languages []string
}

type AuthConfig struct {
	OdinBaseURL string
	OdinAPIKey  string
}

type CacheConfig struct {
	AdminToken string
	DefaultTTL time.Duration
}

type LimitsConfig struct {
	RPS   float64 // 0 => sin límite
	Burst int
}

func Load() (*Config, error) {
	// .env es opcional (en prod vienen del entorno)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN:     getEnv("DB_DSN", ""),
			Migrate: getEnvAsBool("DB_MIGRATE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Name:      getEnv("APP_NAME", "my-zoo"),
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "text"),
			SeedFile:  getEnv("SEED_FILE", ""),
		},
		Public: PublicConfig{
			BaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
			FilesPath: getEnv("FILES_PUBLIC_PATH", "/sites/default/files"),
			Languages: splitList(getEnv("LANGUAGES", "en")),
		},
		Auth: AuthConfig{
			OdinBaseURL: getEnv("ODIN_BASE_URL", ""),
			OdinAPIKey:  getEnv("ODIN_API_KEY", ""),
		},
		Cache: CacheConfig{
			AdminToken: getEnv("CACHE_ADMIN_TOKEN", ""),
			DefaultTTL: getEnvAsDuration("CACHE_DEFAULT_TTL", time.Hour),
		},
		Limits: LimitsConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Public.BaseURL != "" {
		u, err := url.ParseRequestURI(c.Public.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL must be an absolute url")
		}
	}

	if len(c.Public.Languages) == 0 {
		return fmt.Errorf("LANGUAGES must list at least one language")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
