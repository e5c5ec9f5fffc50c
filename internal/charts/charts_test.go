package charts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromTotalsSortsByLabel(t *testing.T) {
	points := FromTotals(map[string]float64{"travel": 2.5, "food": 15})
	require.Equal(t, []Point{{Label: "food", Value: 15}, {Label: "travel", Value: 2.5}}, points)
}

func TestBarConfig(t *testing.T) {
	cfg := BarConfig("Q1 Monthly Sales", "Sales", []Point{
		{Label: "Jan", Value: 45},
		{Label: "Feb", Value: 62},
		{Label: "Mar", Value: 58},
	})
	require.Equal(t, "bar", cfg["type"])

	data := cfg["data"].(map[string]any)
	require.Equal(t, []string{"Jan", "Feb", "Mar"}, data["labels"])

	ds := data["datasets"].([]map[string]any)[0]
	require.Equal(t, "Sales", ds["label"])
	require.Equal(t, []float64{45, 62, 58}, ds["data"])
	require.Len(t, ds["backgroundColor"], 3)

	opts := cfg["options"].(map[string]any)
	require.Contains(t, opts, "scales")
	require.Contains(t, opts, "plugins")
}

func TestPieConfigDefaultsLabel(t *testing.T) {
	cfg := PieConfig("", "", []Point{{Label: "a", Value: 1}})
	require.Equal(t, "pie", cfg["type"])

	ds := cfg["data"].(map[string]any)["datasets"].([]map[string]any)[0]
	require.Equal(t, "Dataset", ds["label"])

	opts := cfg["options"].(map[string]any)
	require.NotContains(t, opts, "scales")
	require.NotContains(t, opts, "plugins")
}
