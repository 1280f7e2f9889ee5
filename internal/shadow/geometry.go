package shadow

import (
	"math"

	"github.com/banshee-data/flatland/internal/units"
)

// Tangent returns the tangent of an angle given in degrees.
// The result is only meaningful away from odd multiples of 90 degrees.
func Tangent(angleDegrees float64) float64 {
	return math.Tan(units.DegreesToRadians(angleDegrees))
}

// ShadowLength returns how far a flatlander of the given height throws its
// shadow along the ground when the sun is angleDegrees above the horizon.
func ShadowLength(height, angleDegrees float64) float64 {
	return height / Tangent(angleDegrees)
}
