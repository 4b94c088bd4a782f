package market

import (
	"fmt"
	"math"
)

// Grade is an item quality tier. Grades are totally ordered low→high.
type Grade int

const (
	Normal Grade = iota
	Superior
	Flawless
	Epic
	Legendary
	gradeCount
)

var gradeNames = [gradeCount]string{"normal", "superior", "flawless", "epic", "legendary"}

// gradeValueMultipliers scales value and xp relative to the normal-grade
// baseline. Normal is the baseline and stays unscaled.
var gradeValueMultipliers = [gradeCount]float64{1, 1.25, 1.5, 2, 3}

// Grades lists all grades in ascending order.
func Grades() [gradeCount]Grade {
	return [gradeCount]Grade{Normal, Superior, Flawless, Epic, Legendary}
}

func (g Grade) String() string {
	if g < 0 || g >= gradeCount {
		return fmt.Sprintf("Grade(%d)", int(g))
	}
	return gradeNames[g]
}

// Multiplier returns the value/xp multiplier for the grade.
func (g Grade) Multiplier() float64 {
	return gradeValueMultipliers[g]
}

// FusesFrom returns the grade one step below, five units of which fuse into
// one unit of g. Normal has no lower grade.
func (g Grade) FusesFrom() (Grade, bool) {
	if g == Normal {
		return Normal, false
	}
	return g - 1, true
}

// ParseGrade maps a grade name to its Grade.
func ParseGrade(s string) (Grade, bool) {
	for g, name := range gradeNames {
		if s == name {
			return Grade(g), true
		}
	}
	return Normal, false
}

// MarshalJSON encodes a Grade as its lowercase name.
func (g Grade) MarshalJSON() ([]byte, error) {
	if g < 0 || g >= gradeCount {
		return nil, fmt.Errorf("invalid grade %d", int(g))
	}
	return []byte(`"` + gradeNames[g] + `"`), nil
}

// UnmarshalJSON decodes a Grade from its lowercase name.
func (g *Grade) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid grade %s", string(data))
	}
	parsed, ok := ParseGrade(string(data[1 : len(data)-1]))
	if !ok {
		return fmt.Errorf("unknown grade %s", string(data))
	}
	*g = parsed
	return nil
}

// RoundStep rounds a value to the nearest multiple of a step that grows with
// magnitude, matching the game's displayed item values:
//
//	< 10       unrounded
//	< 50       nearest 5
//	< 1,000    nearest 10
//	< 10,000   nearest 50
//	< 100,000  nearest 500
//	< 1,000,000 nearest 5,000
//	otherwise  nearest 50,000
//
// Values below 10 pass through unrounded, fractions included.
func RoundStep(value float64) float64 {
	switch {
	case value < 10:
		return value
	case value < 50:
		return math.Round(value/5) * 5
	case value < 1000:
		return math.Round(value/10) * 10
	case value < 10000:
		return math.Round(value/50) * 50
	case value < 100000:
		return math.Round(value/500) * 500
	case value < 1000000:
		return math.Round(value/5000) * 5000
	default:
		return math.Round(value/50000) * 50000
	}
}
