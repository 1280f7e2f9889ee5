package shadow

import "sort"

// Merge returns the disjoint spans covered by the given intervals in
// ascending order. Intervals that overlap or touch collapse into one span.
// The input slice is left untouched.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Left < sorted[j].Left
	})

	var spans []Interval
	current := sorted[0]
	for _, next := range sorted[1:] {
		// touching counts as overlapping
		if next.Left <= current.Right {
			current.UnionWith(next)
			continue
		}
		spans = append(spans, current)
		current = next
	}
	return append(spans, current)
}

// TotalUnionLength returns the length of ground covered by at least one of
// the intervals, counting overlapping stretches once. No rounding is applied.
func TotalUnionLength(intervals []Interval) float64 {
	total := 0.0
	for _, span := range Merge(intervals) {
		total += span.Length()
	}
	return total
}
