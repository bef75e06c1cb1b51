/* series.go
 * Contains the series builder which turns normalized tournament records into the label/value pairs plotted on the
 * rating progression chart
 */

package rating

import "unicode/utf8"

// StartLabel is the label of the synthetic leading point holding the first known starting rating
const StartLabel = "Start"

const ellipsis = "..."

// Limits holds the display limits used when building and rendering a series
type Limits struct {
	MaxLabelLength  int
	MinPadding      float64
	PaddingFraction float64
}

// DefaultLimits returns the limits used when no configuration overrides them
func DefaultLimits() Limits {
	return Limits{
		MaxLabelLength:  20,
		MinPadding:      50,
		PaddingFraction: 0.1,
	}
}

// Point is a single plotted value on the rating chart
type Point struct {
	Label string
	Value int
}

// Series is an ordered list of chart points, oldest first
type Series struct {
	Points []Point
}

// Labels returns the point labels in series order
func (s Series) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	return labels
}

// Values returns the point values in series order
func (s Series) Values() []int {
	values := make([]int, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// HasStart reports whether the series begins with a synthetic starting point
func (s Series) HasStart() bool {
	return len(s.Points) > 0 && s.Points[0].Label == StartLabel
}

// BuildSeries builds the chart series for a player
// Preconditions: Receives records returned by Normalize (every record has a usable ending rating) and display limits
// Postconditions: Returns nil if there are fewer than 2 records. Otherwise returns a series that starts with a
// "Start" point at the first known starting rating followed by the records from that tournament onwards. If no record
// has a known starting rating, no starting point is invented and the series begins at the first ending rating.
func BuildSeries(normalized []NormalizedRecord, limits Limits) *Series {
	if len(normalized) < 2 {
		return nil
	}

	first := 0
	var points []Point
	for i, record := range normalized {
		if record.RatingBefore != nil {
			first = i
			points = append(points, Point{Label: StartLabel, Value: *record.RatingBefore})
			break
		}
	}

	for _, record := range normalized[first:] {
		points = append(points, Point{
			Label: truncateLabel(record.Name, limits.MaxLabelLength),
			Value: record.RatingAfter,
		})
	}
	return &Series{Points: points}
}

// truncateLabel shortens a label to at most maxLength runes, ending it with an ellipsis when cut.
// A non-positive maxLength disables truncation.
func truncateLabel(label string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(label) <= maxLength {
		return label
	}
	runes := []rune(label)
	keep := maxLength - len(ellipsis)
	if keep <= 0 {
		return string(runes[:maxLength])
	}
	return string(runes[:keep]) + ellipsis
}
