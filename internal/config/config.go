package config

import "time"

// Config is the root application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Article  ArticleConfig  `yaml:"article"`
	Render   RenderConfig   `yaml:"render"`
	Prefs    PrefsConfig    `yaml:"prefs"`
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
}

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StoreConfig selects the dictionary backend.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"sqlite"`
	// Path is the SQLite dictionary file. It is opened read-only.
	Path string `yaml:"path" env:"STORE_PATH" env-default:"./dictionary.db"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used when
// store.driver is "postgres".
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SearchConfig holds prefix search settings.
type SearchConfig struct {
	Limit       int `yaml:"limit"        env:"SEARCH_LIMIT"        env-default:"100"`
	GlossLength int `yaml:"gloss_length" env:"SEARCH_GLOSS_LENGTH" env-default:"100"`
}

// ArticleConfig holds article resolution settings.
type ArticleConfig struct {
	SenseLeadWindow int           `yaml:"sense_lead_window" env:"ARTICLE_SENSE_LEAD_WINDOW" env-default:"48"`
	LoaderWait      time.Duration `yaml:"loader_wait"       env:"ARTICLE_LOADER_WAIT"       env-default:"2ms"`
	LoaderBatch     int           `yaml:"loader_batch"      env:"ARTICLE_LOADER_BATCH"      env-default:"100"`
}

// RenderConfig holds document rendering settings.
type RenderConfig struct {
	MaxMarkupBytes int `yaml:"max_markup_bytes" env:"RENDER_MAX_MARKUP_BYTES" env-default:"1048576"`
	Width          int `yaml:"width"            env:"RENDER_WIDTH"            env-default:"80"`
}

// PrefsConfig holds the local preferences store settings.
type PrefsConfig struct {
	Path         string `yaml:"path"          env:"PREFS_PATH"          env-default:"./prefs.db"`
	RecentsLimit int    `yaml:"recents_limit" env:"PREFS_RECENTS_LIMIT" env-default:"20"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
