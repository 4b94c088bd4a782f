package market

import (
	"context"
	"fmt"
	"sort"
	"time"

	"titan-market/internal/feed"
	"titan-market/internal/logger"

	"golang.org/x/sync/errgroup"
)

// FeedSource provides the three game feeds. Implemented by feed.Client.
type FeedSource interface {
	FetchItems(ctx context.Context) (map[string]feed.ItemDefinition, error)
	FetchTexts(ctx context.Context, language string) (map[string]string, error)
	FetchLive(ctx context.Context) ([]feed.TradeRecord, error)
}

const catalogCachePrefix = "catalog.items."

// CatalogBuilder produces the full graded listing set for a language and
// owns the catalog cache lane.
type CatalogBuilder struct {
	feeds  FeedSource
	cache  CacheStore
	maxAge time.Duration
	now    func() time.Time
}

// NewCatalogBuilder creates a builder with the given freshness window.
func NewCatalogBuilder(feeds FeedSource, cache CacheStore, maxAge time.Duration) *CatalogBuilder {
	return &CatalogBuilder{
		feeds:  feeds,
		cache:  cache,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// Build returns the ordered listing set for a language.
//
// A cache entry younger than the freshness window is served without touching
// the network. On miss or expiry both feeds are fetched — all or nothing —
// and the rebuilt set overwrites the cache. The returned slice is never
// mutated afterwards and is safe to share.
func (b *CatalogBuilder) Build(ctx context.Context, language string) ([]Listing, error) {
	key := catalogCachePrefix + language

	if payload, writtenAt, ok := b.cache.GetCache(key); ok {
		if b.now().Sub(writtenAt) < b.maxAge {
			var listings []Listing
			if err := decodeSnapshot(payload, &listings); err == nil {
				return listings, nil
			}
			// Corrupt cache entry: rebuild from the feeds.
			logger.Warn("Catalog", fmt.Sprintf("Discarding unreadable cache entry %s", key))
		}
	}

	var items map[string]feed.ItemDefinition
	var texts map[string]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = b.feeds.FetchItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		texts, err = b.feeds.FetchTexts(gctx, language)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	listings := buildListings(items, texts)

	payload, err := encodeSnapshot(listings)
	if err != nil {
		return nil, err
	}
	if err := b.cache.SetCache(key, payload, b.now()); err != nil {
		// A failed cache write degrades future latency, not correctness.
		logger.Warn("Catalog", fmt.Sprintf("Cache write failed: %v", err))
	}

	return listings, nil
}

// buildListings expands every tradeable item and sorts the result by
// (tier desc, value desc). Items whose translated name is missing are
// dropped.
func buildListings(items map[string]feed.ItemDefinition, texts map[string]string) []Listing {
	listings := make([]Listing, 0, len(items))
	for uid, def := range items {
		if texts[uid+"_name"] == "" {
			continue
		}
		listings = append(listings, ExpandItem(uid, def, texts)...)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].Tier != listings[j].Tier {
			return listings[i].Tier > listings[j].Tier
		}
		return listings[i].Value > listings[j].Value
	})

	return listings
}
