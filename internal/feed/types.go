package feed

// ItemDefinition mirrors one entry of the catalog feed's items.json.
// Only the fields the engine consumes are decoded; the feed carries many more.
type ItemDefinition struct {
	UID     string `json:"uid"`
	Type    string `json:"type"`
	Level   int    `json:"level"`
	Tier    int    `json:"tier"`
	Subtier int    `json:"subtier"`
	Value   int    `json:"value"`
	XP      int    `json:"xp"`
	CraftXP int    `json:"craftXp"`

	Atk  float64 `json:"atk"`
	Def  float64 `json:"def"`
	HP   float64 `json:"hp"`
	Eva  float64 `json:"eva"`
	Crit float64 `json:"crit"`

	// Two semicolon-separated groups of 5 comma-separated integers:
	// min per grade, then max per grade. Empty means not tradeable.
	TradeMinMaxValue string `json:"tradeMinMaxValue"`

	Worker1 string `json:"worker1"`
	Worker2 string `json:"worker2"`
	Worker3 string `json:"worker3"`

	Resource1 string `json:"resource1"`
	R1Qty     int    `json:"r1Qty"`
	Resource2 string `json:"resource2"`
	R2Qty     int    `json:"r2Qty"`
	Resource3 string `json:"resource3"`
	R3Qty     int    `json:"r3Qty"`

	Component1 string `json:"component1"`
	C1Qty      int    `json:"c1Qty"`
	Component2 string `json:"component2"`
	C2Qty      int    `json:"c2Qty"`
}

// TradeRecord mirrors one entry of the trade feed's data array.
// Prices are nullable in the feed and stay pointers; quantities are
// normalized to 0 by the ingestor.
type TradeRecord struct {
	UID       string   `json:"uid"`
	Tag1      *string  `json:"tag1"`
	TType     string   `json:"tType"` // "o" = offer (sell side), "r" = request (buy side)
	GoldPrice *float64 `json:"goldPrice"`
	GoldQty   *int64   `json:"goldQty"`
	GemsPrice *float64 `json:"gemsPrice"`
	GemsQty   *int64   `json:"gemsQty"`
	UpdatedAt string   `json:"updatedAt"`
}
