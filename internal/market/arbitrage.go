package market

// Arbitrage functions are pure and stateless. Each returns (value, ok):
// ok reports whether the inputs are sufficient for the signal at all, so a
// true 0 profit stays distinguishable from "not applicable".

// ShopArbitrage is the profit from buying a listing at its market offer
// price versus the game's intrinsic shop value. Not applicable without a
// gold offer.
func ShopArbitrage(listing Listing, entry *OrderBookEntry) (float64, bool) {
	if entry == nil || entry.Offer == nil || entry.Offer.GoldQty == 0 {
		return 0, false
	}
	offerPrice := 0.0
	if entry.Offer.GoldPrice != nil {
		offerPrice = *entry.Offer.GoldPrice
	}
	return listing.Value - offerPrice, true
}

// MarketArbitrage is the spread between the buy and sell quotes of one
// listing. Not applicable unless both sides exist with known gold prices.
func MarketArbitrage(entry *OrderBookEntry) (float64, bool) {
	if entry == nil || entry.Offer == nil || entry.Request == nil {
		return 0, false
	}
	if entry.Offer.GoldPrice == nil || entry.Request.GoldPrice == nil {
		return 0, false
	}
	return *entry.Request.GoldPrice - *entry.Offer.GoldPrice, true
}

// FusionArbitrage is the profit from buying five units of the next-lower
// grade (to fuse upward) versus trading the target grade directly.
// comparison is the order-book entry of the grade one step below; fusion
// needs at least 5 units on its gem offer.
func FusionArbitrage(entry, comparison *OrderBookEntry) (float64, bool) {
	if entry == nil || (entry.Offer == nil && entry.Request == nil) {
		return 0, false
	}
	if comparison == nil || comparison.Offer == nil {
		return 0, false
	}
	if comparison.Offer.GemsQty < 5 {
		return 0, false
	}

	comparisonPrice := 0.0
	if comparison.Offer.GemsPrice != nil {
		comparisonPrice = *comparison.Offer.GemsPrice
	}

	price := 0.0
	switch {
	case entry.Request != nil && entry.Request.GemsPrice != nil:
		price = *entry.Request.GemsPrice
	case entry.Offer != nil && entry.Offer.GemsPrice != nil:
		price = *entry.Offer.GemsPrice
	}

	return price - comparisonPrice*5, true
}

// ArbitrageSet holds the computed signals for one listing. Nil means the
// signal is not applicable for the listing's current quotes.
type ArbitrageSet struct {
	Shop   *float64 `json:"shop,omitempty"`
	Market *float64 `json:"market,omitempty"`
	Fusion *float64 `json:"fusion,omitempty"`
}

// ComputeArbitrage derives all three signals for a listing. comparison is
// the entry for the same uid one grade below and may be nil; normal-grade
// listings never have a fusion signal.
func ComputeArbitrage(listing Listing, entry, comparison *OrderBookEntry) ArbitrageSet {
	var set ArbitrageSet
	if v, ok := ShopArbitrage(listing, entry); ok {
		set.Shop = &v
	}
	if v, ok := MarketArbitrage(entry); ok {
		set.Market = &v
	}
	if _, ok := listing.Grade.FusesFrom(); ok {
		if v, ok := FusionArbitrage(entry, comparison); ok {
			set.Fusion = &v
		}
	}
	return set
}
