package market

import (
	"testing"
	"time"
)

func quote(goldPrice float64, goldQty int64, gemsPrice float64, gemsQty int64) *PriceQuote {
	return &PriceQuote{
		GoldPrice: fptr(goldPrice),
		GoldQty:   goldQty,
		GemsPrice: fptr(gemsPrice),
		GemsQty:   gemsQty,
		UpdatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestShopArbitrage(t *testing.T) {
	listing := Listing{Value: 150}

	if _, ok := ShopArbitrage(listing, nil); ok {
		t.Fatal("nil entry should not be applicable")
	}
	if _, ok := ShopArbitrage(listing, &OrderBookEntry{Request: quote(100, 1, 0, 0)}); ok {
		t.Fatal("entry without offer should not be applicable")
	}
	if _, ok := ShopArbitrage(listing, &OrderBookEntry{Offer: quote(100, 0, 0, 0)}); ok {
		t.Fatal("zero gold quantity must read as not applicable, never 0 profit")
	}

	got, ok := ShopArbitrage(listing, &OrderBookEntry{Offer: quote(100, 3, 0, 0)})
	if !ok || got != 50 {
		t.Fatalf("shop arbitrage = %v, %v, want 50, true", got, ok)
	}

	// A missing gold price reads as 0, leaving the full intrinsic value.
	offer := quote(0, 3, 0, 0)
	offer.GoldPrice = nil
	got, ok = ShopArbitrage(listing, &OrderBookEntry{Offer: offer})
	if !ok || got != 150 {
		t.Fatalf("shop arbitrage with nil price = %v, %v, want 150, true", got, ok)
	}
}

func TestMarketArbitrage(t *testing.T) {
	if _, ok := MarketArbitrage(nil); ok {
		t.Fatal("nil entry should not be applicable")
	}
	if _, ok := MarketArbitrage(&OrderBookEntry{Offer: quote(100, 1, 0, 0)}); ok {
		t.Fatal("missing request side should not be applicable")
	}

	offer := quote(100, 1, 0, 0)
	request := quote(120, 1, 0, 0)
	got, ok := MarketArbitrage(&OrderBookEntry{Offer: offer, Request: request})
	if !ok || got != 20 {
		t.Fatalf("market arbitrage = %v, %v, want 20, true", got, ok)
	}

	nullPriced := quote(0, 1, 0, 0)
	nullPriced.GoldPrice = nil
	if _, ok := MarketArbitrage(&OrderBookEntry{Offer: nullPriced, Request: request}); ok {
		t.Fatal("null offer gold price should not be applicable")
	}
	if _, ok := MarketArbitrage(&OrderBookEntry{Offer: offer, Request: nullPriced}); ok {
		t.Fatal("null request gold price should not be applicable")
	}

	// A zero spread is a real signal, distinct from not applicable.
	got, ok = MarketArbitrage(&OrderBookEntry{Offer: quote(100, 1, 0, 0), Request: quote(100, 1, 0, 0)})
	if !ok || got != 0 {
		t.Fatalf("zero spread = %v, %v, want 0, true", got, ok)
	}
}

func TestFusionArbitrageGating(t *testing.T) {
	entry := &OrderBookEntry{Request: quote(0, 0, 120, 1)}

	// Five units of the lower grade are required to fuse one of this grade.
	starved := &OrderBookEntry{Offer: quote(0, 0, 20, 4)}
	if _, ok := FusionArbitrage(entry, starved); ok {
		t.Fatal("comparison offer with 4 units should not be applicable")
	}

	sufficient := &OrderBookEntry{Offer: quote(0, 0, 20, 5)}
	got, ok := FusionArbitrage(entry, sufficient)
	if !ok || got != 20 {
		t.Fatalf("fusion arbitrage = %v, %v, want 20, true", got, ok)
	}

	if _, ok := FusionArbitrage(nil, sufficient); ok {
		t.Fatal("entry without either side should not be applicable")
	}
	if _, ok := FusionArbitrage(&OrderBookEntry{}, sufficient); ok {
		t.Fatal("empty entry should not be applicable")
	}
	if _, ok := FusionArbitrage(entry, nil); ok {
		t.Fatal("missing comparison entry should not be applicable")
	}
	if _, ok := FusionArbitrage(entry, &OrderBookEntry{Request: quote(0, 0, 20, 9)}); ok {
		t.Fatal("comparison without offer should not be applicable")
	}
}

func TestFusionArbitragePriceFallback(t *testing.T) {
	comparison := &OrderBookEntry{Offer: quote(0, 0, 10, 5)}

	// Request price preferred over offer price.
	both := &OrderBookEntry{
		Request: quote(0, 0, 100, 1),
		Offer:   quote(0, 0, 80, 1),
	}
	if got, _ := FusionArbitrage(both, comparison); got != 50 {
		t.Fatalf("request-priced fusion = %v, want 50", got)
	}

	// Null request gems price falls back to the offer's.
	nullRequest := quote(0, 0, 0, 1)
	nullRequest.GemsPrice = nil
	fallback := &OrderBookEntry{
		Request: nullRequest,
		Offer:   quote(0, 0, 80, 1),
	}
	if got, _ := FusionArbitrage(fallback, comparison); got != 30 {
		t.Fatalf("offer-priced fusion = %v, want 30", got)
	}

	// Both null: the gem price reads as 0.
	nullOffer := quote(0, 0, 0, 1)
	nullOffer.GemsPrice = nil
	neither := &OrderBookEntry{Request: nullRequest, Offer: nullOffer}
	if got, _ := FusionArbitrage(neither, comparison); got != -50 {
		t.Fatalf("unpriced fusion = %v, want -50", got)
	}
}

func TestComputeArbitrage(t *testing.T) {
	listing := Listing{UID: "a", Grade: Superior, Value: 150}
	entry := &OrderBookEntry{
		Offer:   quote(100, 2, 40, 1),
		Request: quote(120, 1, 55, 1),
	}
	comparison := &OrderBookEntry{Offer: quote(10, 1, 8, 6)}

	set := ComputeArbitrage(listing, entry, comparison)
	if set.Shop == nil || *set.Shop != 50 {
		t.Fatalf("shop = %v", set.Shop)
	}
	if set.Market == nil || *set.Market != 20 {
		t.Fatalf("market = %v", set.Market)
	}
	if set.Fusion == nil || *set.Fusion != 15 {
		t.Fatalf("fusion = %v", set.Fusion)
	}

	// Normal listings never have a fusion signal.
	normal := Listing{UID: "a", Grade: Normal, Value: 150}
	set = ComputeArbitrage(normal, entry, comparison)
	if set.Fusion != nil {
		t.Fatalf("normal-grade fusion = %v, want nil", *set.Fusion)
	}

	// No quotes at all: every signal is not applicable.
	set = ComputeArbitrage(listing, nil, nil)
	if set.Shop != nil || set.Market != nil || set.Fusion != nil {
		t.Fatalf("signals without quotes = %+v", set)
	}
}
