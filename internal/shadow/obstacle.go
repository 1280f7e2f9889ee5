// Package shadow computes the ground covered by the shadows of flatlanders
// standing on a line and lit by the sun at a fixed elevation angle.
package shadow

// Obstacle is a flatlander standing on the ground line.
// Position and Height are expected to be validated by the caller.
type Obstacle struct {
	Position float64 `json:"position"`
	Height   float64 `json:"height"`
}

// NewObstacle returns an Obstacle at position x with height h.
func NewObstacle(x, h float64) Obstacle {
	return Obstacle{Position: x, Height: h}
}
