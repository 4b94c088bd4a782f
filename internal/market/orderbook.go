package market

import (
	"time"

	"titan-market/internal/feed"
)

// PriceQuote is the best-known quote for one side of a listing's market.
// Prices are nullable in the feed and stay pointers; quantities are
// normalized so a missing quantity reads as 0.
type PriceQuote struct {
	GoldPrice *float64  `json:"goldPrice"`
	GoldQty   int64     `json:"goldQty"`
	GemsPrice *float64  `json:"gemsPrice"`
	GemsQty   int64     `json:"gemsQty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderBookEntry holds the most recently updated offer (sell side) and
// request (buy side) seen for one referenceId.
type OrderBookEntry struct {
	Offer   *PriceQuote `json:"offer,omitempty"`
	Request *PriceQuote `json:"request,omitempty"`
}

// FoldTrades reduces a flat list of trade records into a per-listing order
// book, keyed by referenceId, and reports the maximum updatedAt seen across
// all records.
//
// Each side keeps the record with the newest updatedAt; an equal timestamp
// is resolved in favor of the most recently processed record. Records with
// an unparseable timestamp are dropped; a nil or empty record list yields an
// empty book, not an error.
func FoldTrades(records []feed.TradeRecord) (map[string]*OrderBookEntry, time.Time) {
	book := make(map[string]*OrderBookEntry, len(records))
	var lastUpdatedAt time.Time

	for _, rec := range records {
		updatedAt, err := time.Parse(time.RFC3339, rec.UpdatedAt)
		if err != nil {
			continue
		}
		if updatedAt.After(lastUpdatedAt) {
			lastUpdatedAt = updatedAt
		}

		grade := "normal"
		if rec.Tag1 != nil && *rec.Tag1 != "" {
			grade = *rec.Tag1
		}
		referenceID := rec.UID + "." + grade

		if rec.TType != "o" && rec.TType != "r" {
			// Unknown side tag: drop the record, keep processing.
			continue
		}

		quote := &PriceQuote{
			GoldPrice: rec.GoldPrice,
			GemsPrice: rec.GemsPrice,
			UpdatedAt: updatedAt,
		}
		if rec.GoldQty != nil {
			quote.GoldQty = *rec.GoldQty
		}
		if rec.GemsQty != nil {
			quote.GemsQty = *rec.GemsQty
		}

		entry := book[referenceID]
		if entry == nil {
			entry = &OrderBookEntry{}
			book[referenceID] = entry
		}

		if rec.TType == "o" {
			if entry.Offer == nil || !updatedAt.Before(entry.Offer.UpdatedAt) {
				entry.Offer = quote
			}
		} else {
			if entry.Request == nil || !updatedAt.Before(entry.Request.UpdatedAt) {
				entry.Request = quote
			}
		}
	}

	return book, lastUpdatedAt
}
