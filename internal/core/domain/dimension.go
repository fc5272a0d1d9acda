package domain

import "errors"

var ErrInvalidDimension = errors.New("invalid wellness dimension")

// Dimension is one of the eight user-facing wellness categories used to tag
// goals, habits, and routine tasks.
type Dimension string

const (
	DimensionPhysical      Dimension = "physical"
	DimensionMental        Dimension = "mental"
	DimensionEnvironmental Dimension = "environmental"
	DimensionFinancial     Dimension = "financial"
	DimensionIntellectual  Dimension = "intellectual"
	DimensionOccupational  Dimension = "occupational"
	DimensionSocial        Dimension = "social"
	DimensionSpiritual     Dimension = "spiritual"
)

var allDimensions = []Dimension{
	DimensionPhysical,
	DimensionMental,
	DimensionEnvironmental,
	DimensionFinancial,
	DimensionIntellectual,
	DimensionOccupational,
	DimensionSocial,
	DimensionSpiritual,
}

func Dimensions() []Dimension {
	out := make([]Dimension, len(allDimensions))
	copy(out, allDimensions)
	return out
}

func (d Dimension) Valid() bool {
	for _, known := range allDimensions {
		if d == known {
			return true
		}
	}
	return false
}
