package report

import (
	"fmt"

	"github.com/banshee-data/flatland/internal/fsutil"
	"github.com/banshee-data/flatland/internal/shadow"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders an HTML bar chart with one bar per merged span.
func WriteChart(fsys fsutil.FileSystem, path string, merged []shadow.Interval) error {
	labels := make([]string, 0, len(merged))
	data := make([]opts.BarData, 0, len(merged))
	total := 0.0
	for _, iv := range merged {
		labels = append(labels, fmt.Sprintf("[%.2f, %.2f]", iv.Left, iv.Right))
		data = append(data, opts.BarData{Value: iv.Length()})
		total += iv.Length()
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Shadow spans", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Merged shadow spans", Subtitle: fmt.Sprintf("spans=%d total=%s", len(merged), FormatTotal(total, 4))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "span", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "length", NameLocation: "middle", NameGap: 40}),
	)
	bar.SetXAxis(labels).AddSeries("length", data)

	w, err := fsutil.CreateAll(fsys, path)
	if err != nil {
		return err
	}
	if err := bar.Render(w); err != nil {
		w.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return w.Close()
}
