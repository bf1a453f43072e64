package models

import (
	"fmt"
	"math"
)

// TirednessLevel is the three-bucket display class of a tiredness score.
type TirednessLevel int

const (
	TirednessLow TirednessLevel = iota
	TirednessMedium
	TirednessHigh
)

// Bucket boundaries, inclusive on the upper side.
const (
	LowUpperBound    = 0.3
	MediumUpperBound = 0.7
)

// LevelOf maps a score to exactly one level: s <= 0.3 is low,
// 0.3 < s <= 0.7 is medium, anything above is high.
func LevelOf(score float64) TirednessLevel {
	switch {
	case score <= LowUpperBound:
		return TirednessLow
	case score <= MediumUpperBound:
		return TirednessMedium
	default:
		return TirednessHigh
	}
}

func (l TirednessLevel) String() string {
	switch l {
	case TirednessLow:
		return "Low"
	case TirednessMedium:
		return "Medium"
	case TirednessHigh:
		return "High"
	default:
		return fmt.Sprintf("TirednessLevel(%d)", int(l))
	}
}

// Levels lists the buckets in display order.
func Levels() []TirednessLevel {
	return []TirednessLevel{TirednessLow, TirednessMedium, TirednessHigh}
}

// Percent renders a score as a whole percentage, e.g. 0.456 -> "46%".
func Percent(score float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(score*100))
}
