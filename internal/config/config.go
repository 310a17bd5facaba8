package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды хранения слотов и записей
const (
	BackendScript   = "script"
	BackendPostgres = "postgres"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	Environment   string `mapstructure:"ENV"`

	Backend        string `mapstructure:"BACKEND"`
	ScriptURL      string `mapstructure:"SCRIPT_URL"`
	DBDSN          string `mapstructure:"DB_DSN"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	Timezone        *time.Location
	BackendTimeout  time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	RefreshInterval time.Duration `mapstructure:"SLOTS_REFRESH_INTERVAL"`

	AdminSecretHash string  `mapstructure:"ADMIN_SECRET_HASH"`
	AdminIDs        []int64 `mapstructure:"ADMIN_IDS"`

	HTTPAddr      string        `mapstructure:"HTTP_ADDR"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	AdminTokenTTL time.Duration `mapstructure:"ADMIN_TOKEN_TTL"`
	CORSOrigins   []string      `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфиг из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		Environment:     getEnv("ENV", "development"),
		Backend:         strings.ToLower(getEnv("BACKEND", BackendScript)),
		ScriptURL:       os.Getenv("SCRIPT_URL"),
		DBDSN:           os.Getenv("DB_DSN"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		AdminSecretHash: os.Getenv("ADMIN_SECRET_HASH"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
	}

	var err error

	cfg.Timezone, err = time.LoadLocation(getEnv("TIMEZONE", "Europe/Moscow"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	if cfg.BackendTimeout, err = getDuration("BACKEND_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getDuration("SLOTS_REFRESH_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AdminTokenTTL, err = getDuration("ADMIN_TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AdminIDs, err = ParseAdminIDs(os.Getenv("ADMIN_IDS")); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Printf("Config loaded (backend=%s, env=%s)\n", cfg.Backend, cfg.Environment)

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendScript:
		if c.ScriptURL == "" {
			return fmt.Errorf("SCRIPT_URL is required for script backend")
		}
	case BackendPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for postgres backend")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}

	if c.HTTPAddr != "" && c.AdminSecretHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when HTTP API admin is enabled")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// APIEnabled сообщает что нужно поднять HTTP API
func (c *Config) APIEnabled() bool {
	return c.HTTPAddr != ""
}

// ParseAdminIDs разбирает список Telegram ID через запятую
func ParseAdminIDs(value string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(value) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_IDS: invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
