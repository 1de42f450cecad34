package viz

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

const chartHeight = 6

// frameTime maps a frame index onto the chart's time axis, one second per frame.
func frameTime(i int) time.Time { return time.Unix(int64(i), 0) }

// SaturationChart plots the saturated fraction per frame as a braille line.
// It returns "" until there are two samples.
func SaturationChart(hist []float64, width int, style lipgloss.Style) string {
	if len(hist) < 2 || width < 8 {
		return ""
	}
	start, end := frameTime(0), frameTime(len(hist)-1)

	chart := tslc.New(width, chartHeight)
	chart.SetStyle(style)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(0, 1)
	chart.SetViewYRange(0, 1)
	chart.Model.XLabelFormatter = frameLabel(len(hist) - 1)
	chart.Model.YLabelFormatter = percentLabel

	for i, v := range hist {
		chart.Push(tslc.TimePoint{Time: frameTime(i), Value: v})
	}
	chart.DrawBraille()
	return chart.View()
}

// frameLabel labels the x axis in frames before the newest sample.
func frameLabel(last int) linechart.LabelFormatter {
	return func(_ int, v float64) string {
		age := last - int(v)
		if age == 0 {
			return "now"
		}
		return fmt.Sprintf("-%d", age)
	}
}

func percentLabel(_ int, v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
