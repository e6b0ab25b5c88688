package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pet-care-log/internal/platform/logger"
)

// Storage selecciona el backend de repositorios.
type Storage string

const (
	StorageMemory   Storage = "memory"
	StorageSQLite   Storage = "sqlite"
	StoragePostgres Storage = "postgres"
)

type Config struct {
	HTTPPort string
	Env      string

	// TimeZone es la zona "local" del usuario. Todo el bucketing por día pasa por ella.
	TimeZone string

	Storage Storage
	DB      DBConfig
	API     APIConfig
	Log     LogConfig
}

type DBConfig struct {
	DSN             string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort: getEnv("HTTP_PORT", getEnv("PORT", "8080")),
		Env:      getEnv("ENV", "development"),
		TimeZone: getEnv("TIMEZONE", getEnv("TZ", "Local")),
		Storage:  Storage(strings.ToLower(getEnv("STORAGE", string(StorageSQLite)))),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "petlog.sqlite3"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", ""),
			Timeout: getEnvDuration("API_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			App:    getEnv("APP_NAME", "pet-care-log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("config: STORAGE=postgres requires DB_DSN")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE %q", c.Storage)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resuelve TimeZone. "Local" usa la zona del host.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.TimeZone)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func (c Config) Logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(c.Log.Level),
		Format: logger.ParseFormat(c.Log.Format),
		App:    c.Log.App,
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
