package market

import (
	"fmt"
	"strconv"
	"strings"

	"titan-market/internal/feed"
)

// typeNames maps an item type code to its display name.
var typeNames = map[string]string{
	// Weapons
	"ws": "Sword",
	"wa": "Axe",
	"wd": "Dagger",
	"wm": "Mace",
	"wp": "Spear",
	"wb": "Bow",
	"ww": "Wand",
	"wt": "Staff",
	"wg": "Gun",
	"wc": "Crossbow",
	"wi": "Instrument",

	// Armour
	"ah": "Heavy Armour",
	"am": "Light Armour",
	"al": "Clothes",
	"hh": "Helmet",
	"hm": "Rogue Hat",
	"hl": "Magician Hat",
	"gh": "Gauntlets",
	"gl": "Gloves",
	"bh": "Heavy Footwear",
	"bl": "Light Footwear",

	// Accessories
	"uh": "Herbal Medicine",
	"up": "Potion",
	"us": "Spell",
	"xs": "Shield",
	"xr": "Ring",
	"xa": "Amulet",
	"xc": "Cloak",
	"xf": "Familiar",
	"xx": "Aurasong",
	"fm": "Meal",
	"fd": "Dessert",

	// Stones
	"xu": "Runestone",
	"xm": "Moonstone",

	// Enchantments
	"fire":   "Fire",
	"water":  "Water",
	"earth":  "Earth",
	"air":    "Air",
	"light":  "Light",
	"dark":   "Dark",
	"gold":   "Gold",
	"spirit": "Spirit",
}

// typeCategories maps an item type code to its market category.
var typeCategories = buildTypeCategories()

func buildTypeCategories() map[string]string {
	groups := map[string][]string{
		"weapons":      {"ws", "wa", "wd", "wm", "wp", "wb", "ww", "wt", "wg", "wc", "wi"},
		"armor":        {"ah", "am", "al", "hh", "hm", "hl", "gh", "gl", "bh", "bl"},
		"accessories":  {"uh", "up", "us", "xs", "xr", "xa", "xc", "xf", "xx", "fm", "fd"},
		"stones":       {"xu", "xm"},
		"enchantments": {"fire", "water", "earth", "air", "light", "dark", "gold", "spirit"},
	}
	m := make(map[string]string)
	for category, codes := range groups {
		for _, code := range codes {
			m[code] = category
		}
	}
	return m
}

// tradeBounds holds the per-grade min/max listing prices parsed from an
// item's tradeMinMaxValue string.
type tradeBounds struct {
	min [gradeCount]int
	max [gradeCount]int
}

// parseTradeBounds parses "minN,minS,minF,minE,minL;maxN,maxS,maxF,maxE,maxL".
func parseTradeBounds(s string) (tradeBounds, error) {
	var b tradeBounds
	groups := strings.Split(s, ";")
	if len(groups) != 2 {
		return b, fmt.Errorf("trade bounds %q: want 2 groups, got %d", s, len(groups))
	}
	for gi, group := range groups {
		parts := strings.Split(group, ",")
		if len(parts) != int(gradeCount) {
			return b, fmt.Errorf("trade bounds %q: group %d has %d entries", s, gi, len(parts))
		}
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return b, fmt.Errorf("trade bounds %q: %w", s, err)
			}
			if gi == 0 {
				b.min[i] = n
			} else {
				b.max[i] = n
			}
		}
	}
	return b, nil
}

// ExpandItem turns one item definition into its graded listings.
//
// Items without trade bounds are not tradeable and return nil; so do items
// whose type code has no known category/display name, and items whose bounds
// fail to parse (per-item failures never abort a catalog build). The uid is
// the item's key in the catalog feed.
func ExpandItem(uid string, def feed.ItemDefinition, texts map[string]string) []Listing {
	if def.TradeMinMaxValue == "" {
		return nil
	}
	typeName := typeNames[def.Type]
	category := typeCategories[def.Type]
	if typeName == "" || category == "" {
		return nil
	}
	bounds, err := parseTradeBounds(def.TradeMinMaxValue)
	if err != nil {
		return nil
	}

	name := texts[uid+"_name"]
	description := texts[uid+"_desc"]

	listings := make([]Listing, 0, gradeCount)
	for _, grade := range Grades() {
		l := Listing{
			ReferenceID: uid + "." + grade.String(),
			UID:         uid,
			Grade:       grade,
			Type:        def.Type,
			Category:    category,
			TypeName:    typeName,
			Name:        name,
			Description: description,
			Level:       def.Level,
			Tier:        def.Tier,
			Subtier:     def.Subtier,
			Value:       float64(def.Value),
			XP:          float64(def.XP),
			CraftXP:     def.CraftXP,
			Combat: CombatStats{
				Atk:  def.Atk,
				Def:  def.Def,
				HP:   def.HP,
				Eva:  def.Eva,
				Crit: def.Crit,
			},
			MinPrice: bounds.min[grade],
			MaxPrice: bounds.max[grade],
		}
		if grade != Normal {
			l.Value = RoundStep(float64(def.Value) * grade.Multiplier())
			l.XP = RoundStep(float64(def.XP) * grade.Multiplier())
		}
		listings = append(listings, l)
	}
	return listings
}
