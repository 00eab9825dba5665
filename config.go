package tradesummit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Desarso/tradesummit/actions"
	"github.com/Desarso/tradesummit/resolvers"
	"github.com/Desarso/tradesummit/stores"
)

// Remote providers.
const (
	ProviderLocal      = "local"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type ServerConfig struct {
	Addr      string  `yaml:"addr"`
	RateRPS   float64 `yaml:"rate_rps"`   // per client; 0 disables limiting
	RateBurst int     `yaml:"rate_burst"` // tokens
}

type RemoteSettings struct {
	Provider     string        `yaml:"provider"` // "", "local", "gemini", "openrouter"
	APIKey       string        `yaml:"-"`
	Model        string        `yaml:"model"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	HistoryLimit int           `yaml:"history_limit"`
}

type WidgetSettings struct {
	ActionDelay  time.Duration `yaml:"action_delay"`
	AtlasDelay   time.Duration `yaml:"atlas_delay"` // artificial thinking time of the local admin agent
	IdleTTL      time.Duration `yaml:"idle_ttl"`
	ReapSchedule string        `yaml:"reap_schedule"`
}

type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json|console
}

// Config holds everything the service needs at startup.
type Config struct {
	Server          ServerConfig               `yaml:"server"`
	Remote          RemoteSettings             `yaml:"remote"`
	Store           stores.StoreConfig         `yaml:"store"`
	Widgets         WidgetSettings             `yaml:"widgets"`
	Logging         LogSettings                `yaml:"logging"`
	PlatformMetrics *resolvers.PlatformMetrics `yaml:"platform_metrics"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080", RateRPS: 10, RateBurst: 20},
		Remote: RemoteSettings{
			Timeout:      resolvers.DefaultRemoteTimeout,
			HistoryLimit: resolvers.DefaultHistoryLimit,
		},
		Store: stores.StoreConfig{Type: "sqlite", Connection: "tradesummit.sqlite", Options: map[string]string{}},
		Widgets: WidgetSettings{
			ActionDelay:  actions.DefaultDelay,
			AtlasDelay:   2 * time.Second,
			IdleTTL:      30 * time.Minute,
			ReapSchedule: "@every 1m",
		},
		Logging: LogSettings{Level: "info", Format: "json"},
	}
}

// WithAddr sets the listen address
func (c *Config) WithAddr(addr string) *Config {
	c.Server.Addr = addr
	return c
}

// WithRemote selects a remote provider and its credential
func (c *Config) WithRemote(provider, apiKey, model string) *Config {
	c.Remote.Provider = provider
	c.Remote.APIKey = apiKey
	c.Remote.Model = model
	return c
}

// WithRemoteTimeout bounds each remote call
func (c *Config) WithRemoteTimeout(d time.Duration) *Config {
	c.Remote.Timeout = d
	return c
}

// WithSQLiteStore archives to a SQLite file
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	c.Store = *stores.NewStoreConfig("sqlite", dbPath)
	return c
}

// WithPostgresStore archives to PostgreSQL
func (c *Config) WithPostgresStore(dsn string) *Config {
	c.Store = *stores.NewStoreConfig("postgres", dsn)
	return c
}

// WithPostgresServer archives to PostgreSQL, building the DSN from its parts
func (c *Config) WithPostgresServer(host, user, password, dbname string, port int) *Config {
	return c.WithPostgresStore(stores.PostgresDSN(host, user, password, dbname, port))
}

// WithStoreOption sets a driver option such as "log_sql" or "max_open_conns"
func (c *Config) WithStoreOption(key, value string) *Config {
	c.Store.WithOption(key, value)
	return c
}

// WithoutStore disables the conversation archive
func (c *Config) WithoutStore() *Config {
	c.Store = stores.StoreConfig{Type: "none"}
	return c
}

// WithDelays sets the action effect delay and the local admin thinking time
func (c *Config) WithDelays(action, atlas time.Duration) *Config {
	c.Widgets.ActionDelay = action
	c.Widgets.AtlasDelay = atlas
	return c
}

// WithPlatformMetrics overrides the canned admin figures
func (c *Config) WithPlatformMetrics(m resolvers.PlatformMetrics) *Config {
	c.PlatformMetrics = &m
	return c
}

// LoadConfig reads .env (if present), then the YAML file at path (if
// non-empty), then environment overrides.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := NewConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("TRADESUMMIT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("TRADESUMMIT_PROVIDER"); v != "" {
		c.Remote.Provider = v
	}
	if v := getenv("TRADESUMMIT_MODEL"); v != "" {
		c.Remote.Model = v
	}
	if v := getenv("TRADESUMMIT_BASE_URL"); v != "" {
		c.Remote.BaseURL = v
	}
	if v := getenv("TRADESUMMIT_REMOTE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TRADESUMMIT_REMOTE_TIMEOUT: %w", err)
		}
		c.Remote.Timeout = d
	}
	if v := getenv("TRADESUMMIT_RATE_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TRADESUMMIT_RATE_RPS: %w", err)
		}
		c.Server.RateRPS = rps
	}
	if v := getenv("TRADESUMMIT_STORE_TYPE"); v != "" {
		c.Store.Type = v
	}
	if v := getenv("TRADESUMMIT_STORE_DSN"); v != "" {
		c.Store.Connection = v
	}
	if host := getenv("TRADESUMMIT_PG_HOST"); host != "" {
		port := 5432
		if v := getenv("TRADESUMMIT_PG_PORT"); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("TRADESUMMIT_PG_PORT: %w", err)
			}
			port = p
		}
		c.WithPostgresServer(host, getenv("TRADESUMMIT_PG_USER"), getenv("TRADESUMMIT_PG_PASSWORD"), getenv("TRADESUMMIT_PG_DATABASE"), port)
	}
	if v := getenv("TRADESUMMIT_LOG_SQL"); v != "" {
		c.WithStoreOption("log_sql", v)
	}
	if v := getenv("TRADESUMMIT_STORE_MAX_CONNS"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("TRADESUMMIT_STORE_MAX_CONNS: %w", err)
		}
		c.WithStoreOption("max_open_conns", v)
	}
	if v := getenv("TRADESUMMIT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	gemini, openrouter := getenv("GEMINI_API_KEY"), getenv("OPENROUTER_API_KEY")
	if openrouter == "" {
		openrouter = getenv("OPENAI_API_KEY")
	}
	switch c.Remote.Provider {
	case "":
		if gemini != "" {
			c.Remote.Provider, c.Remote.APIKey = ProviderGemini, gemini
		} else if openrouter != "" {
			c.Remote.Provider, c.Remote.APIKey = ProviderOpenRouter, openrouter
		}
	case ProviderGemini:
		c.Remote.APIKey = gemini
	case ProviderOpenRouter:
		c.Remote.APIKey = openrouter
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Remote.Provider {
	case "", ProviderLocal, ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown remote provider %q", c.Remote.Provider)
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("remote timeout must be positive, got %s", c.Remote.Timeout)
	}
	if c.Widgets.ActionDelay < 0 || c.Widgets.AtlasDelay < 0 {
		return fmt.Errorf("widget delays must not be negative")
	}
	if c.Server.RateRPS < 0 {
		return fmt.Errorf("rate_rps must not be negative")
	}
	return nil
}
