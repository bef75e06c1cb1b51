/* render.go
 * Contains the chart render adapter which turns a series into the configuration handed to the rendering backend
 */

package rating

import "math"

// RenderConfig is everything the rendering backend needs to draw a rating chart
type RenderConfig struct {
	Labels []string
	Values []float64
	YMin   float64
	YMax   float64
}

// ToRenderConfig computes axis bounds for a series
// Preconditions: Receives a series with at least one point and the display limits
// Postconditions: Returns a RenderConfig whose y-axis is padded by the larger of the minimum padding and the padding
// fraction of the value range. The lower bound is never negative.
func ToRenderConfig(series Series, limits Limits) RenderConfig {
	cfg := RenderConfig{
		Labels: series.Labels(),
		Values: make([]float64, len(series.Points)),
	}
	if len(series.Points) == 0 {
		return cfg
	}

	low, high := math.Inf(1), math.Inf(-1)
	for i, p := range series.Points {
		value := float64(p.Value)
		cfg.Values[i] = value
		low = math.Min(low, value)
		high = math.Max(high, value)
	}

	padding := math.Max(limits.MinPadding, (high-low)*limits.PaddingFraction)
	cfg.YMin = math.Max(0, low-padding)
	cfg.YMax = high + padding
	return cfg
}
