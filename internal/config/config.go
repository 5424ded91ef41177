package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest HMAC secret accepted for signing tokens.
const MinJWTSecretLength = 32

type Config struct {
	App struct {
		Name     string
		Env      string
		LogLevel string
	}

	API struct {
		Host string
		Port string
	}

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Cache struct {
		Enabled   bool
		LessonTTL time.Duration
	}

	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		RefreshTTL time.Duration
	}

	Pagination struct {
		PerPage int
	}

	Transform struct {
		MaxWorkers int
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "lessons-api")
	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_lessons")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// Lesson cache
	cfg.Cache.Enabled = getBool("CACHE_ENABLED", true)
	cfg.Cache.LessonTTL = getDuration("CACHE_LESSON_TTL", 10*time.Minute)

	// Auth
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.Auth.TokenTTL = getDuration("JWT_TTL", 60*time.Minute)
	cfg.Auth.RefreshTTL = getDuration("JWT_REFRESH_TTL", 14*24*time.Hour)

	// Pagination
	cfg.Pagination.PerPage = getInt("LESSONS_PER_PAGE", 10)

	// Collection transforms
	cfg.Transform.MaxWorkers = getInt("TRANSFORM_MAX_WORKERS", 4)

	return cfg
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < MinJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", MinJWTSecretLength))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Auth.RefreshTTL < c.Auth.TokenTTL {
		errs = append(errs, errors.New("JWT_REFRESH_TTL must not be shorter than JWT_TTL"))
	}
	if c.Pagination.PerPage <= 0 {
		errs = append(errs, errors.New("LESSONS_PER_PAGE must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return isTruthy(v)
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.API.Host, c.API.Port)
}
