package config

import "time"

// Config holds application settings (in-memory representation).
// Persistence is handled by internal/db package.
type Config struct {
	Language           string        `json:"language"`
	DebugPriceCache    bool          `json:"debug_price_cache"`
	PriceRefreshEvery  time.Duration `json:"price_refresh_every"`
	RefreshCooldown    time.Duration `json:"refresh_cooldown"`
	CatalogMaxAge      time.Duration `json:"catalog_max_age"`
	FeedBaseURL        string        `json:"feed_base_url"`
	FeedTimeout        time.Duration `json:"feed_timeout"`
	MaxConcurrentFetch int           `json:"max_concurrent_fetch"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Language:           "en",
		DebugPriceCache:    false,
		PriceRefreshEvery:  330 * time.Second,
		RefreshCooldown:    5 * time.Minute,
		CatalogMaxAge:      24 * time.Hour,
		FeedBaseURL:        "https://smartytitans.com",
		FeedTimeout:        30 * time.Second,
		MaxConcurrentFetch: 4,
	}
}
