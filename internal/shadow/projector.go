package shadow

// Project maps each obstacle to the interval its shadow covers, in input
// order. The shadow starts at the obstacle's position and extends away
// from the sun by ShadowLength.
func Project(obstacles []Obstacle, angleDegrees float64) []Interval {
	shadows := make([]Interval, 0, len(obstacles))
	for _, o := range obstacles {
		shadows = append(shadows, NewInterval(o.Position, o.Position+ShadowLength(o.Height, angleDegrees)))
	}
	return shadows
}
