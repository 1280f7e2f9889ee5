package shadow

import "fmt"

// Interval is a closed range [Left, Right] on the ground line.
// Left <= Right holds for every Interval built with NewInterval.
type Interval struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// NewInterval builds the interval spanning a and b in either order.
// The ground has no direction, so reversed endpoints are swapped.
// NaN or infinite endpoints are not supported.
func NewInterval(a, b float64) Interval {
	if a <= b {
		return Interval{Left: a, Right: b}
	}
	return Interval{Left: b, Right: a}
}

// Length returns Right - Left.
func (iv Interval) Length() float64 {
	return iv.Right - iv.Left
}

// Overlaps reports whether the two intervals share at least one point.
// Intervals that only touch at an endpoint overlap, so adjacent shadows
// merge without a gap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Left <= other.Right && other.Left <= iv.Right
}

// Contains reports whether x lies inside the closed interval.
func (iv Interval) Contains(x float64) bool {
	return iv.Left <= x && x <= iv.Right
}

// UnionWith widens iv to cover other as well. It does not check for
// overlap: on disjoint intervals the result is the bounding interval,
// gap included.
func (iv *Interval) UnionWith(other Interval) {
	if other.Left < iv.Left {
		iv.Left = other.Left
	}
	if other.Right > iv.Right {
		iv.Right = other.Right
	}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%g, %g]", iv.Left, iv.Right)
}
