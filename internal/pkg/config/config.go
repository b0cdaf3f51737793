package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	JWTSecret     string        `env:"JWT_SECRET,     default=change-me"`
	SessionSecret string        `env:"SESSION_SECRET, default=change-me-too"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,      default=24h"`

	API       APIConfig
	Dashboard DashboardConfig
	MockAPI   MockAPIConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

// APIConfig points at the remote REST resource server.
type APIConfig struct {
	BaseURL string `env:"API_BASE_URL, default=http://localhost:3000"`
	// Timeout of 0 leaves requests bound only by the caller's context.
	Timeout time.Duration `env:"API_TIMEOUT, default=0s"`
}

type DashboardConfig struct {
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE, default=500ms"`
	ActionDelay    time.Duration `env:"ACTION_DELAY,    default=0s"`
	Workers        int           `env:"MUTATION_WORKERS, default=8"`
}

// MockAPIConfig drives cmd/mockapi. Store is "memory" or "mongo".
type MockAPIConfig struct {
	Port  string `env:"MOCKAPI_PORT,  default=3000"`
	Store string `env:"MOCKAPI_STORE, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=schoolhub"`
}

// RedisConfig is optional: an empty address keeps generation counters in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// IsDevelopment reports whether pretty logging and verbose errors apply.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads a .env file from the working directory when one exists and then
// processes the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return FromLookuper(ctx, envconfig.OsLookuper())
}

// FromLookuper processes configuration from an arbitrary source.
func FromLookuper(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err)
	}
	return cfg
}
