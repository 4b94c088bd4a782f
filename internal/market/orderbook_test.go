package market

import (
	"testing"
	"time"

	"titan-market/internal/feed"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int64) *int64     { return &v }
func sptr(v string) *string   { return &v }

func tradeRecord(uid string, tag1 *string, tType string, goldPrice float64, updatedAt string) feed.TradeRecord {
	return feed.TradeRecord{
		UID:       uid,
		Tag1:      tag1,
		TType:     tType,
		GoldPrice: fptr(goldPrice),
		GoldQty:   iptr(1),
		GemsQty:   iptr(1),
		UpdatedAt: updatedAt,
	}
}

func TestFoldTradesMergeDeterminism(t *testing.T) {
	records := []feed.TradeRecord{
		tradeRecord("a", nil, "o", 100, "2024-03-01T00:00:01Z"),
		tradeRecord("a", nil, "o", 300, "2024-03-01T00:00:03Z"),
		tradeRecord("a", nil, "o", 200, "2024-03-01T00:00:02Z"),
	}

	// The newest record must win regardless of input order.
	permutations := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, perm := range permutations {
		shuffled := make([]feed.TradeRecord, len(records))
		for i, idx := range perm {
			shuffled[i] = records[idx]
		}

		book, lastUpdatedAt := FoldTrades(shuffled)
		entry := book["a.normal"]
		if entry == nil || entry.Offer == nil {
			t.Fatalf("permutation %v: missing offer", perm)
		}
		if *entry.Offer.GoldPrice != 300 {
			t.Fatalf("permutation %v: offer price = %v, want 300", perm, *entry.Offer.GoldPrice)
		}
		want := time.Date(2024, 3, 1, 0, 0, 3, 0, time.UTC)
		if !lastUpdatedAt.Equal(want) {
			t.Fatalf("permutation %v: lastUpdatedAt = %v, want %v", perm, lastUpdatedAt, want)
		}
	}
}

func TestFoldTradesEqualTimestampKeepsNewestProcessed(t *testing.T) {
	ts := "2024-03-01T00:00:01Z"
	book, _ := FoldTrades([]feed.TradeRecord{
		tradeRecord("a", nil, "o", 100, ts),
		tradeRecord("a", nil, "o", 200, ts),
	})
	if got := *book["a.normal"].Offer.GoldPrice; got != 200 {
		t.Fatalf("tie resolved to price %v, want 200 (most recently processed)", got)
	}
}

func TestFoldTradesKeepsSidesIndependent(t *testing.T) {
	book, _ := FoldTrades([]feed.TradeRecord{
		tradeRecord("a", nil, "o", 100, "2024-03-01T00:00:05Z"),
		tradeRecord("a", nil, "r", 90, "2024-03-01T00:00:01Z"),
	})
	entry := book["a.normal"]
	if entry.Offer == nil || entry.Request == nil {
		t.Fatalf("entry should hold both sides: %+v", entry)
	}
	if *entry.Offer.GoldPrice != 100 || *entry.Request.GoldPrice != 90 {
		t.Fatalf("offer/request = %v/%v", *entry.Offer.GoldPrice, *entry.Request.GoldPrice)
	}
}

func TestFoldTradesGradeSuffix(t *testing.T) {
	book, _ := FoldTrades([]feed.TradeRecord{
		tradeRecord("a", sptr("legendary"), "o", 100, "2024-03-01T00:00:01Z"),
		tradeRecord("a", nil, "o", 10, "2024-03-01T00:00:01Z"),
		tradeRecord("a", sptr(""), "r", 5, "2024-03-01T00:00:01Z"),
	})
	if book["a.legendary"] == nil || book["a.legendary"].Offer == nil {
		t.Fatal("tagged record should key under its grade suffix")
	}
	entry := book["a.normal"]
	if entry == nil || entry.Offer == nil || entry.Request == nil {
		t.Fatal("nil and empty tags should both key under normal")
	}
}

func TestFoldTradesNormalizesQuantities(t *testing.T) {
	book, _ := FoldTrades([]feed.TradeRecord{{
		UID:       "a",
		TType:     "o",
		GoldPrice: fptr(100),
		UpdatedAt: "2024-03-01T00:00:01Z",
	}})
	offer := book["a.normal"].Offer
	if offer.GoldQty != 0 || offer.GemsQty != 0 {
		t.Fatalf("missing quantities should read 0, got %d/%d", offer.GoldQty, offer.GemsQty)
	}
	if offer.GemsPrice != nil {
		t.Fatal("missing gems price should stay nil")
	}
}

func TestFoldTradesEmptyPayload(t *testing.T) {
	book, lastUpdatedAt := FoldTrades(nil)
	if book == nil {
		t.Fatal("nil payload should yield an empty map, not nil")
	}
	if len(book) != 0 || !lastUpdatedAt.IsZero() {
		t.Fatalf("empty fold = %d entries, lastUpdatedAt %v", len(book), lastUpdatedAt)
	}
}

func TestFoldTradesDropsMalformedRecords(t *testing.T) {
	book, lastUpdatedAt := FoldTrades([]feed.TradeRecord{
		tradeRecord("a", nil, "o", 100, "not-a-timestamp"),
		tradeRecord("a", nil, "x", 100, "2024-03-01T00:00:09Z"), // unknown side
		tradeRecord("b", nil, "r", 50, "2024-03-01T00:00:02Z"),
	})
	if _, ok := book["a.normal"]; ok {
		t.Fatal("malformed records should not create entries")
	}
	if book["b.normal"] == nil || book["b.normal"].Request == nil {
		t.Fatal("valid records after malformed ones should still be processed")
	}
	want := time.Date(2024, 3, 1, 0, 0, 9, 0, time.UTC)
	if !lastUpdatedAt.Equal(want) {
		t.Fatalf("lastUpdatedAt = %v, want %v", lastUpdatedAt, want)
	}
}
