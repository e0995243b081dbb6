package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
store:
  driver: "sqlite"
  path: "/var/lib/ruendict/dictionary.db"

search:
  limit: 50
  gloss_length: 80

article:
  sense_lead_window: 32
  loader_wait: "5ms"
  loader_batch: 20

render:
  max_markup_bytes: 65536
  width: 100

prefs:
  path: "/tmp/prefs.db"
  recents_limit: 10

server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Store
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverSQLite)
	}
	if cfg.Store.Path != "/var/lib/ruendict/dictionary.db" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}

	// Search
	if cfg.Search.Limit != 50 {
		t.Errorf("search.limit = %d, want 50", cfg.Search.Limit)
	}
	if cfg.Search.GlossLength != 80 {
		t.Errorf("search.gloss_length = %d, want 80", cfg.Search.GlossLength)
	}

	// Article
	if cfg.Article.SenseLeadWindow != 32 {
		t.Errorf("article.sense_lead_window = %d, want 32", cfg.Article.SenseLeadWindow)
	}
	if cfg.Article.LoaderWait != 5*time.Millisecond {
		t.Errorf("article.loader_wait = %v, want 5ms", cfg.Article.LoaderWait)
	}
	if cfg.Article.LoaderBatch != 20 {
		t.Errorf("article.loader_batch = %d, want 20", cfg.Article.LoaderBatch)
	}

	// Render
	if cfg.Render.MaxMarkupBytes != 65536 {
		t.Errorf("render.max_markup_bytes = %d, want 65536", cfg.Render.MaxMarkupBytes)
	}
	if cfg.Render.Width != 100 {
		t.Errorf("render.width = %d, want 100", cfg.Render.Width)
	}

	// Prefs
	if cfg.Prefs.RecentsLimit != 10 {
		t.Errorf("prefs.recents_limit = %d, want 10", cfg.Prefs.RecentsLimit)
	}

	// Server
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SEARCH_LIMIT", "25")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Search.Limit != 25 {
		t.Errorf("search.limit = %d, want 25 (ENV override)", cfg.Search.Limit)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("store.driver = %q, want sqlite (default)", cfg.Store.Driver)
	}
	if cfg.Search.Limit != 100 {
		t.Errorf("search.limit = %d, want 100 (default)", cfg.Search.Limit)
	}
	if cfg.Search.GlossLength != 100 {
		t.Errorf("search.gloss_length = %d, want 100 (default)", cfg.Search.GlossLength)
	}
	if cfg.Article.SenseLeadWindow != 48 {
		t.Errorf("article.sense_lead_window = %d, want 48 (default)", cfg.Article.SenseLeadWindow)
	}
	if cfg.Article.LoaderWait != 2*time.Millisecond {
		t.Errorf("article.loader_wait = %v, want 2ms (default)", cfg.Article.LoaderWait)
	}
	if cfg.Prefs.RecentsLimit != 20 {
		t.Errorf("prefs.recents_limit = %d, want 20 (default)", cfg.Prefs.RecentsLimit)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_PostgresWithoutDSN(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "store:\n  driver: postgres\n")
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATABASE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for postgres driver without dsn")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DriverNormalized(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = " SQLite "

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("store.driver = %q, want %q", cfg.Store.Driver, DriverSQLite)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }},
		{"sqlite without path", func(c *Config) { c.Store.Path = "" }},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres }},
		{"zero search limit", func(c *Config) { c.Search.Limit = 0 }},
		{"negative gloss length", func(c *Config) { c.Search.GlossLength = -1 }},
		{"zero sense window", func(c *Config) { c.Article.SenseLeadWindow = 0 }},
		{"negative loader wait", func(c *Config) { c.Article.LoaderWait = -time.Millisecond }},
		{"zero loader batch", func(c *Config) { c.Article.LoaderBatch = 0 }},
		{"zero markup limit", func(c *Config) { c.Render.MaxMarkupBytes = 0 }},
		{"zero recents limit", func(c *Config) { c.Prefs.RecentsLimit = 0 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_PostgresWithDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Store.Driver = DriverPostgres
	cfg.Database.DSN = "postgres://u:p@localhost:5432/dict"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func validConfig() Config {
	return Config{
		Store:   StoreConfig{Driver: DriverSQLite, Path: "dictionary.db"},
		Search:  SearchConfig{Limit: 100, GlossLength: 100},
		Article: ArticleConfig{SenseLeadWindow: 48, LoaderWait: 2 * time.Millisecond, LoaderBatch: 100},
		Render:  RenderConfig{MaxMarkupBytes: 1 << 20, Width: 80},
		Prefs:   PrefsConfig{Path: "prefs.db", RecentsLimit: 20},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
}
