package dataset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// Statistics computes the minimum, maximum, and arithmetic mean of field
// across the dataset. Records where the field is absent or fails numeric
// coercion are skipped; they never contribute and never raise. When no value
// coerces, all three results are 0 so callers never divide by zero. No
// rounding is applied; presentation formatting is the caller's concern.
func Statistics(ds Dataset, field string) (min, max, avg float64) {
	values := NumericValues(ds, field)
	if len(values) == 0 {
		return 0, 0, 0
	}
	// stats errors only on empty input, which is guarded above.
	min, _ = stats.Min(values)
	max, _ = stats.Max(values)
	avg, _ = stats.Mean(values)
	return min, max, avg
}

// NumericValues returns, in record order, the values of field that coerce to
// a number. Records missing the field or failing coercion contribute nothing.
func NumericValues(ds Dataset, field string) []float64 {
	values := make([]float64, 0, len(ds))
	for _, rec := range ds {
		raw, ok := rec.Get(field)
		if !ok {
			continue
		}
		v, ok := coerceFloat(raw)
		if !ok {
			continue
		}
		values = append(values, v)
	}
	return values
}

// FilterByCategory returns a new Dataset holding, in original order, the
// records whose value at field exactly equals value. Comparison is
// case-sensitive string equality; a record missing the field never matches.
// The input dataset is left untouched.
func FilterByCategory(ds Dataset, field, value string) Dataset {
	out := Dataset{}
	for _, rec := range ds {
		if v, ok := rec.Get(field); ok && v == value {
			out = append(out, rec)
		}
	}
	return out
}

// DistinctValues returns the sorted set of distinct values observed at field.
// Records missing the field contribute the empty string.
func DistinctValues(ds Dataset, field string) []string {
	seen := make(map[string]struct{}, len(ds))
	for _, rec := range ds {
		seen[rec.GetDefault(field, "")] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// TotalsByCategory sums the coerced values of valueField grouped by the value
// of categoryField. Rows where the measure fails coercion are skipped; rows
// with a blank or missing category accumulate under "(empty)".
func TotalsByCategory(ds Dataset, categoryField, valueField string) map[string]float64 {
	acc := map[string]float64{}
	for _, rec := range ds {
		v, ok := coerceFloat(rec.GetDefault(valueField, ""))
		if !ok {
			continue
		}
		cat := rec.GetDefault(categoryField, "")
		if cat == "" {
			cat = "(empty)"
		}
		acc[cat] += v
	}
	return acc
}

// coerceFloat is the fallible numeric coercion used by aggregation. Failure
// is a normal outcome consumed locally to decide skip-vs-include, never an
// error surfaced to callers.
func coerceFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
