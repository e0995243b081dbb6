package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.Store.Driver == DriverPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required when store.driver is %q", DriverPostgres)
	}

	if c.Search.Limit <= 0 {
		return fmt.Errorf("search.limit must be > 0 (got %d)", c.Search.Limit)
	}
	if c.Search.GlossLength <= 0 {
		return fmt.Errorf("search.gloss_length must be > 0 (got %d)", c.Search.GlossLength)
	}

	if err := c.Article.validate(); err != nil {
		return fmt.Errorf("article: %w", err)
	}

	if c.Render.MaxMarkupBytes <= 0 {
		return fmt.Errorf("render.max_markup_bytes must be > 0 (got %d)", c.Render.MaxMarkupBytes)
	}
	if c.Prefs.RecentsLimit <= 0 {
		return fmt.Errorf("prefs.recents_limit must be > 0 (got %d)", c.Prefs.RecentsLimit)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case DriverSQLite:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("path is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", s.Driver, DriverSQLite, DriverPostgres)
	}
	return nil
}

func (a *ArticleConfig) validate() error {
	if a.SenseLeadWindow <= 0 {
		return fmt.Errorf("sense_lead_window must be > 0 (got %d)", a.SenseLeadWindow)
	}
	if a.LoaderWait < 0 {
		return fmt.Errorf("loader_wait must be >= 0 (got %v)", a.LoaderWait)
	}
	if a.LoaderBatch <= 0 {
		return fmt.Errorf("loader_batch must be > 0 (got %d)", a.LoaderBatch)
	}
	return nil
}
