package market

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"titan-market/internal/config"
	"titan-market/internal/logger"
)

const priceCacheKey = "market.prices"

// CooldownError reports a manual refresh rejected because too little time
// has passed since the data was last loaded.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("refresh throttled: wait %s", e.Remaining)
}

// RemainingMinutes is the remaining wait rounded up to whole minutes, the
// granularity shown to users.
func (e *CooldownError) RemainingMinutes() int {
	return int((e.Remaining + time.Minute - 1) / time.Minute)
}

// CatalogSnapshot is an immutable listing set for one language.
type CatalogSnapshot struct {
	Language string
	Listings []Listing
	Index    map[string]int // referenceId -> position in Listings
	BuiltAt  time.Time
}

// OrderBookSnapshot is an immutable order book produced by one trade-feed
// ingestion. LastUpdatedAt is the maximum record timestamp seen; FetchedAt
// is when this snapshot was ingested.
type OrderBookSnapshot struct {
	Entries       map[string]*OrderBookEntry `json:"entries"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
	FetchedAt     time.Time                  `json:"fetchedAt"`
}

// Status summarizes the engine's published snapshots.
type Status struct {
	Ready           bool      `json:"ready"`
	Language        string    `json:"language"`
	Listings        int       `json:"listings"`
	BookEntries     int       `json:"bookEntries"`
	CatalogBuiltAt  time.Time `json:"catalogBuiltAt"`
	CatalogStale    bool      `json:"catalogStale"`
	PricesFetchedAt time.Time `json:"pricesFetchedAt"`
	LastUpdatedAt   time.Time `json:"lastUpdatedAt"`
}

// Engine owns the catalog and order-book snapshots and the refresh schedule.
//
// Snapshots are immutable once built and swapped atomically: readers always
// see either the old or the new snapshot, never a partial one. The price
// refresh runs on its own ticker, decoupled from request handling.
type Engine struct {
	feeds   FeedSource
	cache   CacheStore
	builder *CatalogBuilder
	now     func() time.Time

	language    string
	debugPrices bool
	interval    time.Duration
	cooldown    time.Duration
	maxAge      time.Duration
	feedTimeout time.Duration

	catalog atomic.Pointer[CatalogSnapshot]
	book    atomic.Pointer[OrderBookSnapshot]

	// mu guards lastLoadedAt and the reconfigurable settings
	// (language, debugPrices, cooldown).
	mu           sync.Mutex
	lastLoadedAt time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an engine over the given feeds and cache store.
func NewEngine(feeds FeedSource, cache CacheStore, cfg *config.Config) *Engine {
	return &Engine{
		feeds:       feeds,
		cache:       cache,
		builder:     NewCatalogBuilder(feeds, cache, cfg.CatalogMaxAge),
		now:         time.Now,
		language:    cfg.Language,
		debugPrices: cfg.DebugPriceCache,
		interval:    cfg.PriceRefreshEvery,
		cooldown:    cfg.RefreshCooldown,
		maxAge:      cfg.CatalogMaxAge,
		feedTimeout: cfg.FeedTimeout,
	}
}

// Reconfigure applies updated settings to a running engine. The price poll
// interval, feed wiring and cache windows are fixed at construction and only
// change on restart.
func (e *Engine) Reconfigure(cfg *config.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.language = cfg.Language
	e.debugPrices = cfg.DebugPriceCache
	e.cooldown = cfg.RefreshCooldown
}

// Start loads the initial snapshots and begins the periodic price refresh.
// The catalog load failing is not fatal: the refresh loop still runs and a
// later Catalog call retries the build.
func (e *Engine) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	if _, err := e.Catalog(runCtx, e.language); err != nil {
		logger.Warn("Engine", fmt.Sprintf("Initial catalog build failed: %v", err))
	}

	e.wg.Add(1)
	go e.run(runCtx)

	logger.Info("Engine", fmt.Sprintf("Price refresh every %s", e.interval))
}

// Stop shuts down the refresh loop, waiting at most until ctx is done.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the ticker loop. It polls immediately on start.
func (e *Engine) run(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.refreshOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.refreshOnce(ctx)
		}
	}
}

// refreshOnce runs one price ingestion cycle with a per-cycle timeout.
// A failed cycle preserves the previously published snapshot.
func (e *Engine) refreshOnce(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, e.feedTimeout)
	defer cancel()

	if err := e.loadBook(cycleCtx); err != nil {
		logger.Warn("Engine", fmt.Sprintf("Price refresh failed: %v", err))
	}
}

// loadBook produces and publishes a new order-book snapshot.
//
// In debug/offline mode a persisted snapshot short-circuits the live feed;
// otherwise the live feed is fetched and, in debug mode, persisted so later
// offline runs can replay it.
func (e *Engine) loadBook(ctx context.Context) error {
	e.mu.Lock()
	debugPrices := e.debugPrices
	e.mu.Unlock()

	if debugPrices {
		if payload, _, ok := e.cache.GetCache(priceCacheKey); ok {
			var snap OrderBookSnapshot
			if err := decodeSnapshot(payload, &snap); err == nil {
				snap.FetchedAt = e.now()
				e.publishBook(&snap)
				return nil
			}
			logger.Warn("Engine", "Discarding unreadable price snapshot cache")
		}
	}

	records, err := e.feeds.FetchLive(ctx)
	if err != nil {
		return err
	}

	entries, lastUpdatedAt := FoldTrades(records)
	snap := &OrderBookSnapshot{
		Entries:       entries,
		LastUpdatedAt: lastUpdatedAt,
		FetchedAt:     e.now(),
	}
	e.publishBook(snap)

	if debugPrices {
		if payload, err := encodeSnapshot(snap); err == nil {
			if err := e.cache.SetCache(priceCacheKey, payload, snap.FetchedAt); err != nil {
				logger.Warn("Engine", fmt.Sprintf("Price snapshot cache write failed: %v", err))
			}
		}
	}

	return nil
}

// publishBook swaps in a snapshot unless a newer one has already been
// published (last-snapshot-wins for superseded refreshes).
func (e *Engine) publishBook(snap *OrderBookSnapshot) {
	for {
		old := e.book.Load()
		if old != nil && old.FetchedAt.After(snap.FetchedAt) {
			return
		}
		if e.book.CompareAndSwap(old, snap) {
			break
		}
	}

	e.mu.Lock()
	if snap.FetchedAt.After(e.lastLoadedAt) {
		e.lastLoadedAt = snap.FetchedAt
	}
	e.mu.Unlock()
}

// Catalog returns the listing set for a language, building (or reading the
// cache) as needed, and publishes it as the current catalog snapshot.
func (e *Engine) Catalog(ctx context.Context, language string) ([]Listing, error) {
	if language == "" {
		e.mu.Lock()
		language = e.language
		e.mu.Unlock()
	}

	if snap := e.catalog.Load(); snap != nil && snap.Language == language {
		if e.now().Sub(snap.BuiltAt) < e.maxAge {
			return snap.Listings, nil
		}
	}

	buildCtx, cancel := context.WithTimeout(ctx, e.feedTimeout)
	defer cancel()

	listings, err := e.builder.Build(buildCtx, language)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(listings))
	for i := range listings {
		index[listings[i].ReferenceID] = i
	}
	e.catalog.Store(&CatalogSnapshot{
		Language: language,
		Listings: listings,
		Index:    index,
		BuiltAt:  e.now(),
	})

	return listings, nil
}

// CatalogView returns the currently published catalog snapshot, which may
// be nil before the first successful build.
func (e *Engine) CatalogView() *CatalogSnapshot {
	return e.catalog.Load()
}

// OrderBook returns the current order book and the maximum record timestamp
// it was built from. The map is shared and must not be mutated.
func (e *Engine) OrderBook() (map[string]*OrderBookEntry, time.Time) {
	snap := e.book.Load()
	if snap == nil {
		return map[string]*OrderBookEntry{}, time.Time{}
	}
	return snap.Entries, snap.LastUpdatedAt
}

// Refresh re-ingests the trade feed on demand.
//
// Unless forced, a request within the cooldown window of the last successful
// load is rejected synchronously with a *CooldownError carrying the
// remaining wait; it is never queued or retried automatically.
func (e *Engine) Refresh(force bool) error {
	if !force {
		e.mu.Lock()
		elapsed := e.now().Sub(e.lastLoadedAt)
		cooldown := e.cooldown
		e.mu.Unlock()
		if elapsed < cooldown {
			return &CooldownError{Remaining: cooldown - elapsed}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.feedTimeout)
	defer cancel()
	return e.loadBook(ctx)
}

// Status reports the state of the published snapshots. A stale catalog is
// informational only; consumers decide whether to surface it.
func (e *Engine) Status() Status {
	e.mu.Lock()
	st := Status{Language: e.language}
	e.mu.Unlock()

	if snap := e.catalog.Load(); snap != nil {
		st.Listings = len(snap.Listings)
		st.CatalogBuiltAt = snap.BuiltAt
		st.CatalogStale = e.now().Sub(snap.BuiltAt) >= e.maxAge
		st.Language = snap.Language
	}
	if snap := e.book.Load(); snap != nil {
		st.BookEntries = len(snap.Entries)
		st.PricesFetchedAt = snap.FetchedAt
		st.LastUpdatedAt = snap.LastUpdatedAt
	}
	st.Ready = st.Listings > 0 && st.BookEntries > 0

	return st
}
