package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"sliceareaplot/pkg/aggregate"
)

// RenderHTML writes an interactive line chart of the series set to w.
func RenderHTML(w io.Writer, set *aggregate.SegmentSeriesSet, title string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("axis=%s slices=%d segments=%d", set.Axis, set.NumSlices, set.Len())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Slice", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Area (mm²)", NameLocation: "middle", NameGap: 50}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	line.SetXAxis(set.Index)
	for _, id := range set.IDs {
		series := set.Series[id]
		data := make([]opts.LineData, len(series))
		for i, v := range series {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(set.Name(id), data)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render area chart: %w", err)
	}
	return nil
}
