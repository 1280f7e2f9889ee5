package input

import "github.com/banshee-data/flatland/internal/units"

// Limits bounds the values accepted from the input text.
type Limits struct {
	AngleMin    float64
	AngleMax    float64
	CountMin    int
	CountMax    int
	PositionMin float64
	PositionMax float64
	HeightMin   float64
	HeightMax   float64

	// AngleUnits is the unit the header angle is written in. The angle is
	// converted to degrees before it is checked against AngleMin/AngleMax.
	AngleUnits string
}

// DefaultLimits returns the bounds of the classic problem statement.
func DefaultLimits() Limits {
	return Limits{
		AngleMin:    10,
		AngleMax:    80,
		CountMin:    1,
		CountMax:    100_000,
		PositionMin: 0,
		PositionMax: 300_000,
		HeightMin:   1,
		HeightMax:   1000,
		AngleUnits:  units.Degrees,
	}
}

// inRange rejects NaN as well as values outside [lo, hi].
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
