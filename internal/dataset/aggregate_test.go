package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatisticsSkipsNonNumeric(t *testing.T) {
	ds := Dataset{
		{"amount": "10"},
		{"amount": "abc"},
		{"amount": "20"},
	}
	min, max, avg := Statistics(ds, "amount")
	require.Equal(t, 10.0, min)
	require.Equal(t, 20.0, max)
	require.Equal(t, 15.0, avg)
}

func TestStatisticsZeroQualifyingValues(t *testing.T) {
	cases := []struct {
		name string
		ds   Dataset
	}{
		{"empty dataset", Dataset{}},
		{"field absent", Dataset{{"other": "1"}, {"other": "2"}}},
		{"never numeric", Dataset{{"amount": "x"}, {"amount": ""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			min, max, avg := Statistics(tc.ds, "amount")
			require.Equal(t, 0.0, min)
			require.Equal(t, 0.0, max)
			require.Equal(t, 0.0, avg)
		})
	}
}

func TestStatisticsMixedPresence(t *testing.T) {
	ds := Dataset{
		{"amount": "5", "category": "a"},
		{"category": "b"},
		{"amount": "-5"},
	}
	min, max, avg := Statistics(ds, "amount")
	require.Equal(t, -5.0, min)
	require.Equal(t, 5.0, max)
	require.Equal(t, 0.0, avg)
}

func TestFilterByCategoryOrderAndExactMatch(t *testing.T) {
	ds := Dataset{
		{"cat": "a", "n": "1"},
		{"cat": "b", "n": "2"},
		{"cat": "a", "n": "3"},
	}
	got := FilterByCategory(ds, "cat", "a")
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0]["n"])
	require.Equal(t, "3", got[1]["n"])
	// input was not mutated
	require.Len(t, ds, 3)
}

func TestFilterByCategoryMissingFieldNeverMatches(t *testing.T) {
	ds := Dataset{
		{"cat": ""},
		{"other": "x"},
	}
	// Only the record literally carrying cat="" matches the empty value.
	got := FilterByCategory(ds, "cat", "")
	require.Len(t, got, 1)
	require.True(t, got[0].Has("cat"))
}

func TestFilterByCategoryNoMatches(t *testing.T) {
	ds := Dataset{{"cat": "a"}}
	got := FilterByCategory(ds, "cat", "z")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterByCategoryCaseSensitive(t *testing.T) {
	ds := Dataset{{"cat": "Food"}, {"cat": "food"}}
	got := FilterByCategory(ds, "cat", "food")
	require.Len(t, got, 1)
	require.Equal(t, "food", got[0]["cat"])
}

func TestDistinctValuesSortedWithDefault(t *testing.T) {
	ds := Dataset{
		{"category": "food"},
		{"category": "travel"},
		{"category": "food"},
		{"other": "x"}, // missing field contributes ""
	}
	require.Equal(t, []string{"", "food", "travel"}, DistinctValues(ds, "category"))
}

func TestTotalsByCategory(t *testing.T) {
	ds := Dataset{
		{"category": "food", "amount": "10"},
		{"category": "food", "amount": "5"},
		{"category": "travel", "amount": "2.5"},
		{"category": "travel", "amount": "bad"},
		{"amount": "1"},
	}
	acc := TotalsByCategory(ds, "category", "amount")
	require.Equal(t, 15.0, acc["food"])
	require.Equal(t, 2.5, acc["travel"])
	require.Equal(t, 1.0, acc["(empty)"])
}
