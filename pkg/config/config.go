package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis   RedisConfig
	Reports ReportsConfig
	Exports ExportsConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Log     LogConfig
	Catalog CatalogConfig
	Demo    DemoConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ReportsConfig controls caching of the rendered school report.
type ReportsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExportsConfig tunes asynchronous report exports.
type ExportsConfig struct {
	Dir             string
	SigningSecret   string
	URLTTL          time.Duration
	ResultTTL       time.Duration
	CleanupInterval time.Duration
	Workers         int
	MaxRetries      int
}

// AuthConfig gates mutating endpoints behind an admin login.
type AuthConfig struct {
	Enabled           bool
	Secret            string
	Expiration        time.Duration
	Issuer            string
	AdminEmail        string
	AdminPasswordHash string
}

// CatalogConfig points at an optional HCL course catalog used to seed courses.
type CatalogConfig struct {
	File string
}

// DemoConfig drives the scripted demonstration run.
type DemoConfig struct {
	Seed     int64
	Students int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Reports = ReportsConfig{
		CacheEnabled: v.GetBool("ENABLE_REPORT_CACHE"),
		CacheTTL:     parseDuration(v.GetString("REPORT_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Exports = ExportsConfig{
		Dir:             v.GetString("EXPORT_DIR"),
		SigningSecret:   v.GetString("EXPORT_SIGNING_SECRET"),
		URLTTL:          parseDuration(v.GetString("EXPORT_URL_TTL"), time.Hour),
		ResultTTL:       parseDuration(v.GetString("EXPORT_RESULT_TTL"), 24*time.Hour),
		CleanupInterval: parseDuration(v.GetString("EXPORT_CLEANUP_INTERVAL"), time.Hour),
		Workers:         v.GetInt("EXPORT_WORKERS"),
		MaxRetries:      v.GetInt("EXPORT_MAX_RETRIES"),
	}

	cfg.Auth = AuthConfig{
		Enabled:           v.GetBool("ENABLE_AUTH"),
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 8*time.Hour),
		Issuer:            v.GetString("JWT_ISSUER"),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Catalog = CatalogConfig{File: v.GetString("CATALOG_FILE")}

	cfg.Demo = DemoConfig{
		Seed:     v.GetInt64("DEMO_SEED"),
		Students: v.GetInt("DEMO_STUDENTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_REPORT_CACHE", false)
	v.SetDefault("REPORT_CACHE_TTL", "5m")

	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_SIGNING_SECRET", "dev_export_secret")
	v.SetDefault("EXPORT_URL_TTL", "1h")
	v.SetDefault("EXPORT_RESULT_TTL", "24h")
	v.SetDefault("EXPORT_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORT_WORKERS", 2)
	v.SetDefault("EXPORT_MAX_RETRIES", 3)

	v.SetDefault("ENABLE_AUTH", false)
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "8h")
	v.SetDefault("JWT_ISSUER", "school-records")
	v.SetDefault("ADMIN_EMAIL", "admin@school.local")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("DEMO_SEED", 1)
	v.SetDefault("DEMO_STUDENTS", 10)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
