package market

// CombatStats carries the hero-equipment stats of a listing, copied
// unchanged from the normal-grade baseline.
type CombatStats struct {
	Atk  float64 `json:"atk"`
	Def  float64 `json:"def"`
	HP   float64 `json:"hp"`
	Eva  float64 `json:"eva"`
	Crit float64 `json:"crit"`
}

// Listing is one (item, grade) tradeable entity with computed stats.
// Exactly one Listing exists per (uid, grade) pair present in the catalog.
type Listing struct {
	ReferenceID string  `json:"referenceId"` // uid + "." + grade
	UID         string  `json:"uid"`
	Grade       Grade   `json:"grade"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	TypeName    string  `json:"typeName"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Level       int     `json:"level"`
	Tier        int     `json:"tier"`
	Subtier     int     `json:"subtier"`
	Value       float64 `json:"value"`
	XP          float64 `json:"xp"`
	CraftXP     int     `json:"craftXp"`

	Combat CombatStats `json:"combat"`

	MinPrice int `json:"minPrice"`
	MaxPrice int `json:"maxPrice"`
}

// ComparisonReferenceID is the referenceId of the same item one grade below,
// whose offers feed the fusion arbitrage comparison. Normal-grade listings
// have none.
func (l Listing) ComparisonReferenceID() (string, bool) {
	lower, ok := l.Grade.FusesFrom()
	if !ok {
		return "", false
	}
	return l.UID + "." + lower.String(), true
}
