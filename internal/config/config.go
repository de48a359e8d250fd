package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Salary    SalaryConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Type       string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// RedisConfig enables the shared breakdown cache. When disabled an
// in-process cache is used instead.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimitConfig struct {
	// Rate in limiter notation, e.g. "60-M". Empty disables limiting.
	Rate string
}

type SalaryConfig struct {
	DefaultPayScaleID string
	BatchConcurrency  int
	CacheTTL          time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded, using process environment", "error", err)
	}

	config := &Config{}
	var err error

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "salary-calculation"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "salary"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Storage = StorageConfig{
		Type:       strings.ToLower(getEnv("STORAGE_TYPE", StoragePostgres)),
		SQLitePath: getEnv("SQLITE_PATH", "salary.db"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Redis configuration
	redisPort, err := getEnvInt("REDIS_PORT", 6379)
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	config.Redis = RedisConfig{
		Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     redisPort,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	config.RateLimit = RateLimitConfig{
		Rate: getEnv("RATE_LIMIT", "60-M"),
	}

	// Salary configuration
	concurrency, err := getEnvInt("SALARY_BATCH_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := time.ParseDuration(getEnv("SALARY_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SALARY_CACHE_TTL: %w", err)
	}

	config.Salary = SalaryConfig{
		DefaultPayScaleID: getEnv("DEFAULT_PAY_SCALE_ID", "default"),
		BatchConcurrency:  concurrency,
		CacheTTL:          cacheTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Type {
	case StoragePostgres:
		if c.Database.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required"))
		}
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_TYPE %q", c.Storage.Type))
	}

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		errs = append(errs, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err))
	}
	if c.Salary.DefaultPayScaleID == "" {
		errs = append(errs, errors.New("DEFAULT_PAY_SCALE_ID is required"))
	}
	if c.Salary.CacheTTL <= 0 {
		errs = append(errs, errors.New("SALARY_CACHE_TTL must be positive"))
	}
	if c.Salary.BatchConcurrency < 1 {
		errs = append(errs, errors.New("SALARY_BATCH_CONCURRENCY must be at least 1"))
	}

	return errors.Join(errs...)
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
