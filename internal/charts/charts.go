// Package charts builds Chart.js configuration documents from aggregated
// dataset values. The server returns these as JSON for clients to render;
// no image rasterization happens here.
package charts

import "sort"

// Point is one labeled value in a chart series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

var palette = []string{"#e74c3c", "#3498db", "#2ecc71", "#f1c40f", "#9b59b6", "#1abc9c"}

// FromTotals converts a label→total map into points sorted by label for
// stable output.
func FromTotals(totals map[string]float64) []Point {
	points := make([]Point, 0, len(totals))
	for label, v := range totals {
		points = append(points, Point{Label: label, Value: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

// BarConfig produces a Chart.js bar chart configuration.
func BarConfig(title, datasetLabel string, points []Point) map[string]any {
	labels, data := split(points)
	return map[string]any{
		"type": "bar",
		"data": map[string]any{
			"labels": labels,
			"datasets": []map[string]any{{
				"label":           orDefault(datasetLabel),
				"data":            data,
				"backgroundColor": colors(len(points)),
			}},
		},
		"options": options(title, true),
	}
}

// PieConfig produces a Chart.js pie chart configuration.
func PieConfig(title, datasetLabel string, points []Point) map[string]any {
	labels, data := split(points)
	return map[string]any{
		"type": "pie",
		"data": map[string]any{
			"labels": labels,
			"datasets": []map[string]any{{
				"label":           orDefault(datasetLabel),
				"data":            data,
				"backgroundColor": colors(len(points)),
			}},
		},
		"options": options(title, false),
	}
}

func split(points []Point) ([]string, []float64) {
	labels := make([]string, len(points))
	data := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		data[i] = p.Value
	}
	return labels, data
}

func colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func orDefault(label string) string {
	if label == "" {
		return "Dataset"
	}
	return label
}

func options(title string, scales bool) map[string]any {
	opts := map[string]any{
		"responsive": true,
	}
	if title != "" {
		opts["plugins"] = map[string]any{
			"title": map[string]any{"display": true, "text": title},
		}
	}
	if scales {
		opts["scales"] = map[string]any{
			"y": map[string]any{"beginAtZero": true},
		}
	}
	return opts
}
