// Package report turns a computed set of shadows into human-facing
// artefacts: the printed total, summary statistics, a PNG coverage plot and
// an HTML chart of the merged spans.
package report

import (
	"fmt"
	"strconv"

	"github.com/banshee-data/flatland/internal/shadow"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPrecision is the number of decimal digits printed for the total.
const DefaultPrecision = 13

// FormatTotal renders the union length with a fixed number of decimals,
// e.g. 15 -> "15.0000000000000" at the default precision.
func FormatTotal(total float64, precision int) string {
	return strconv.FormatFloat(total, 'f', precision, 64)
}

// Summary describes how the shadows of one run cover the ground.
type Summary struct {
	Obstacles int               `json:"obstacles"`
	Spans     []shadow.Interval `json:"spans"`

	// TotalLength is the union length, as returned by shadow.TotalUnionLength.
	TotalLength float64 `json:"total_length"`
	// RawLength sums every shadow on its own, overlaps counted repeatedly.
	RawLength float64 `json:"raw_length"`
	// OverlapLength is RawLength - TotalLength.
	OverlapLength float64 `json:"overlap_length"`

	Extent   shadow.Interval `json:"extent"`
	Coverage float64         `json:"coverage"` // TotalLength / Extent.Length()

	MeanShadow float64 `json:"mean_shadow"`
	MaxShadow  float64 `json:"max_shadow"`
}

// Summarize computes the Summary of a run's shadows.
func Summarize(shadows []shadow.Interval) Summary {
	s := Summary{
		Obstacles: len(shadows),
		Spans:     shadow.Merge(shadows),
	}
	if len(shadows) == 0 {
		return s
	}

	// same order and arithmetic as shadow.TotalUnionLength
	for _, span := range s.Spans {
		s.TotalLength += span.Length()
	}

	lengths := make([]float64, len(shadows))
	for i, iv := range shadows {
		lengths[i] = iv.Length()
	}
	s.RawLength = floats.Sum(lengths)
	s.OverlapLength = s.RawLength - s.TotalLength
	s.MeanShadow = stat.Mean(lengths, nil)
	s.MaxShadow = floats.Max(lengths)

	s.Extent = s.Spans[0]
	s.Extent.UnionWith(s.Spans[len(s.Spans)-1])
	if l := s.Extent.Length(); l > 0 {
		s.Coverage = s.TotalLength / l
	}
	return s
}

// String renders the summary on one line for logs.
func (s Summary) String() string {
	return fmt.Sprintf(
		"obstacles=%d spans=%d total=%g raw=%g overlap=%g extent=%v coverage=%.4f mean_shadow=%g max_shadow=%g",
		s.Obstacles, len(s.Spans), s.TotalLength, s.RawLength, s.OverlapLength,
		s.Extent, s.Coverage, s.MeanShadow, s.MaxShadow,
	)
}
