package db

import (
	"strconv"
	"time"

	"titan-market/internal/config"
)

// LoadConfig reads config from SQLite. Missing keys keep their defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["language"]; ok && v != "" {
		cfg.Language = v
	}
	if v, ok := m["debug_price_cache"]; ok {
		cfg.DebugPriceCache, _ = strconv.ParseBool(v)
	}
	if v, ok := m["price_refresh_every"]; ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.PriceRefreshEvery = time.Duration(secs) * time.Second
		}
	}
	if v, ok := m["refresh_cooldown"]; ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RefreshCooldown = time.Duration(secs) * time.Second
		}
	}
	if v, ok := m["catalog_max_age"]; ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.CatalogMaxAge = time.Duration(secs) * time.Second
		}
	}
	if v, ok := m["feed_base_url"]; ok && v != "" {
		cfg.FeedBaseURL = v
	}
	if v, ok := m["feed_timeout"]; ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.FeedTimeout = time.Duration(secs) * time.Second
		}
	}
	if v, ok := m["max_concurrent_fetch"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxConcurrentFetch = n
		}
	}

	return cfg
}

// SaveConfig writes the full config to SQLite as key/value rows.
func (d *DB) SaveConfig(cfg *config.Config) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	set := func(k, v string) {
		if err == nil {
			_, err = tx.Exec(
				"INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
				k, v)
		}
	}

	set("language", cfg.Language)
	set("debug_price_cache", strconv.FormatBool(cfg.DebugPriceCache))
	set("price_refresh_every", strconv.Itoa(int(cfg.PriceRefreshEvery/time.Second)))
	set("refresh_cooldown", strconv.Itoa(int(cfg.RefreshCooldown/time.Second)))
	set("catalog_max_age", strconv.Itoa(int(cfg.CatalogMaxAge/time.Second)))
	set("feed_base_url", cfg.FeedBaseURL)
	set("feed_timeout", strconv.Itoa(int(cfg.FeedTimeout/time.Second)))
	set("max_concurrent_fetch", strconv.Itoa(cfg.MaxConcurrentFetch))
	if err != nil {
		return err
	}

	return tx.Commit()
}
