/* chart.go
 * Contains the rendering backend that draws a RenderConfig as a PNG line chart using go-chart
 */

package rating

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartStyle holds the colours and size of the rendered chart. Colours are hex strings such as "#1f77b4".
type ChartStyle struct {
	Width      int
	Height     int
	Title      string
	Line       string
	Dot        string
	Background string
	Text       string
}

// DefaultChartStyle returns the style used when no configuration overrides it
func DefaultChartStyle() ChartStyle {
	return ChartStyle{
		Width:      900,
		Height:     450,
		Title:      "DWZ",
		Line:       "#2b6cb0",
		Dot:        "#dd6b20",
		Background: "#ffffff",
		Text:       "#1a202c",
	}
}

// RenderPNG draws the chart described by cfg
// Preconditions: Receives a RenderConfig with at least 2 values and a ChartStyle
// Postconditions: Returns the PNG bytes of the chart, or an error if the chart could not be rendered
func RenderPNG(cfg RenderConfig, style ChartStyle) ([]byte, error) {
	if len(cfg.Values) < 2 {
		return nil, fmt.Errorf("at least 2 values required to render a chart, received %d", len(cfg.Values))
	}
	if len(cfg.Labels) != len(cfg.Values) {
		return nil, fmt.Errorf("labels and values differ in length: %d != %d", len(cfg.Labels), len(cfg.Values))
	}

	xValues := make([]float64, len(cfg.Values))
	ticks := make([]chart.Tick, len(cfg.Values))
	for i := range cfg.Values {
		xValues[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: cfg.Labels[i]}
	}

	textColor := drawing.ColorFromHex(trimHash(style.Text))
	background := drawing.ColorFromHex(trimHash(style.Background))

	graph := chart.Chart{
		Title:  style.Title,
		Width:  style.Width,
		Height: style.Height,
		TitleStyle: chart.Style{
			FontColor: textColor,
		},
		Background: chart.Style{
			FillColor: background,
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Canvas: chart.Style{
			FillColor: background,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(cfg.Values) - 1)},
			Style: chart.Style{
				FontColor:           textColor,
				TextRotationDegrees: 45,
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: cfg.YMin, Max: cfg.YMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(math.Round(f)))
				}
				return ""
			},
			Style: chart.Style{
				FontColor: textColor,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    style.Title,
				XValues: xValues,
				YValues: cfg.Values,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(trimHash(style.Line)),
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    drawing.ColorFromHex(trimHash(style.Dot)),
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}
