package tradesummit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.Remote.Timeout != 15*time.Second {
		t.Errorf("expected 15s remote timeout, got %v", cfg.Remote.Timeout)
	}
	if cfg.Remote.HistoryLimit != 6 {
		t.Errorf("expected history limit 6, got %d", cfg.Remote.HistoryLimit)
	}
	if cfg.Widgets.ActionDelay != time.Second || cfg.Widgets.AtlasDelay != 2*time.Second {
		t.Errorf("expected 1s/2s delays, got %v/%v", cfg.Widgets.ActionDelay, cfg.Widgets.AtlasDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestApplyEnvSelectsProvider(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.applyEnv(envMap(map[string]string{"OPENAI_API_KEY": "sk-test"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Remote.Provider != ProviderOpenRouter || cfg.Remote.APIKey != "sk-test" {
		t.Errorf("expected openrouter with key, got %q/%q", cfg.Remote.Provider, cfg.Remote.APIKey)
	}

	cfg = NewConfig()
	cfg.applyEnv(envMap(map[string]string{"GEMINI_API_KEY": "g-key", "OPENROUTER_API_KEY": "o-key"}))
	if cfg.Remote.Provider != ProviderGemini || cfg.Remote.APIKey != "g-key" {
		t.Errorf("expected gemini to win, got %q/%q", cfg.Remote.Provider, cfg.Remote.APIKey)
	}

	cfg = NewConfig()
	cfg.applyEnv(envMap(map[string]string{"TRADESUMMIT_PROVIDER": "local", "GEMINI_API_KEY": "g-key"}))
	if cfg.Remote.Provider != ProviderLocal || cfg.Remote.APIKey != "" {
		t.Errorf("expected explicit local provider without a key, got %q/%q", cfg.Remote.Provider, cfg.Remote.APIKey)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewConfig()
	err := cfg.applyEnv(envMap(map[string]string{
		"TRADESUMMIT_ADDR":           ":9090",
		"TRADESUMMIT_REMOTE_TIMEOUT": "3s",
		"TRADESUMMIT_RATE_RPS":       "2.5",
		"TRADESUMMIT_STORE_TYPE":     "postgres",
		"TRADESUMMIT_STORE_DSN":      "host=db",
		"TRADESUMMIT_LOG_LEVEL":      "debug",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9090" || cfg.Remote.Timeout != 3*time.Second || cfg.Server.RateRPS != 2.5 {
		t.Errorf("expected overrides applied, got %+v %+v", cfg.Server, cfg.Remote)
	}
	if cfg.Store.Type != "postgres" || cfg.Store.Connection != "host=db" || cfg.Logging.Level != "debug" {
		t.Errorf("expected store and log overrides, got %+v %+v", cfg.Store, cfg.Logging)
	}

	if err := NewConfig().applyEnv(envMap(map[string]string{"TRADESUMMIT_REMOTE_TIMEOUT": "soon"})); err == nil {
		t.Errorf("expected an error for a bad duration")
	}
}

func TestApplyEnvPostgresServer(t *testing.T) {
	cfg := NewConfig()
	err := cfg.applyEnv(envMap(map[string]string{
		"TRADESUMMIT_PG_HOST":         "db",
		"TRADESUMMIT_PG_USER":         "app",
		"TRADESUMMIT_PG_PASSWORD":     "secret",
		"TRADESUMMIT_PG_DATABASE":     "tradesummit",
		"TRADESUMMIT_LOG_SQL":         "true",
		"TRADESUMMIT_STORE_MAX_CONNS": "4",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Type != "postgres" {
		t.Errorf("expected postgres store, got %q", cfg.Store.Type)
	}
	want := "host=db user=app password=secret dbname=tradesummit port=5432 sslmode=disable"
	if cfg.Store.Connection != want {
		t.Errorf("expected %q, got %q", want, cfg.Store.Connection)
	}
	if cfg.Store.Options["log_sql"] != "true" || cfg.Store.Options["max_open_conns"] != "4" {
		t.Errorf("expected store options, got %v", cfg.Store.Options)
	}

	if err := NewConfig().applyEnv(envMap(map[string]string{"TRADESUMMIT_PG_HOST": "db", "TRADESUMMIT_PG_PORT": "x"})); err == nil {
		t.Errorf("expected an error for a bad port")
	}
	if err := NewConfig().applyEnv(envMap(map[string]string{"TRADESUMMIT_STORE_MAX_CONNS": "many"})); err == nil {
		t.Errorf("expected an error for a bad connection limit")
	}
}

func TestWithStoreOptionAfterWithoutStore(t *testing.T) {
	cfg := NewConfig().WithoutStore().WithStoreOption("log_sql", "true")
	if cfg.Store.Options["log_sql"] != "true" {
		t.Errorf("expected option set on an empty store config, got %v", cfg.Store.Options)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.Remote.Provider = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Errorf("expected an error for an unknown provider")
	}
	if err := NewConfig().WithRemoteTimeout(0).Validate(); err == nil {
		t.Errorf("expected an error for a zero timeout")
	}
	if err := NewConfig().WithDelays(-time.Second, 0).Validate(); err == nil {
		t.Errorf("expected an error for a negative delay")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tradesummit.yaml")
	data := `
server:
  addr: ":7070"
remote:
  timeout: 5s
widgets:
  atlas_delay: 0s
store:
  type: none
platform_metrics:
  overdue_payments: 9
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRADESUMMIT_ADDR", "")
	t.Setenv("TRADESUMMIT_PROVIDER", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Addr != ":7070" || cfg.Remote.Timeout != 5*time.Second {
		t.Errorf("expected YAML values, got %+v %+v", cfg.Server, cfg.Remote)
	}
	if cfg.Widgets.AtlasDelay != 0 || cfg.Widgets.ActionDelay != time.Second {
		t.Errorf("expected atlas delay cleared and action delay kept, got %+v", cfg.Widgets)
	}
	if cfg.Store.Type != "none" {
		t.Errorf("expected store disabled, got %q", cfg.Store.Type)
	}
	if cfg.PlatformMetrics == nil || cfg.PlatformMetrics.OverduePayments != 9 {
		t.Errorf("expected platform metrics override, got %+v", cfg.PlatformMetrics)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := NewLogger(LogSettings{Level: "debug", Format: "console"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := NewLogger(LogSettings{Level: "loud"}); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
