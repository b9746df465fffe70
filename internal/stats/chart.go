package stats

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tartampluch/go-cumplebot/internal/config"
	"github.com/wcharczuk/go-chart/v2"
)

// Chart layout constants.
const (
	chartWidth  = 1000
	chartHeight = 400
	chartTitle  = "Actividad diaria de comandos"

	// 24 bars at width+spacing must fit inside chartWidth.
	chartBarWidth   = 28
	chartBarSpacing = 12
)

// RenderChart writes the 0-23 hourly activity bar chart as a PNG file.
// It returns the written path, or an error when rendering fails.
func RenderChart(s Summary, path string) (string, error) {
	bars := make([]chart.Value, 0, HoursPerDay)
	for hour := 0; hour < HoursPerDay; hour++ {
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(hour),
			Value: float64(s.Hourly[hour]),
		})
	}

	graph := chart.BarChart{
		Title:      chartTitle,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		Bars:       bars,
		YAxis: chart.YAxis{
			ValueFormatter: chart.IntValueFormatter,
		},
	}

	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrChartRender, err)
	}
	defer func() { _ = f.Close() }()

	if err := graph.Render(chart.PNG, f); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrChartRender, err)
	}
	return path, nil
}
