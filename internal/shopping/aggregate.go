// Package shopping builds a user's consolidated shopping list from the
// ingredient rows of every recipe in their cart and renders it as a
// downloadable document.
package shopping

import "sort"

// Usage is one ingredient line of one recipe in the cart.
type Usage struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// Item is one consolidated shopping-list line.
type Item struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

type itemKey struct {
	name string
	unit string
}

// Aggregate groups rows by (name, measurement unit) and sums the amounts.
// The result is ordered by name, then unit, using byte-wise comparison. An
// empty input yields an empty, non-nil slice.
func Aggregate(rows []Usage) []Item {
	out := make([]Item, 0, len(rows))
	index := make(map[itemKey]int, len(rows))

	for _, r := range rows {
		k := itemKey{name: r.Name, unit: r.MeasurementUnit}
		if i, ok := index[k]; ok {
			out[i].Amount += r.Amount
			continue
		}
		index[k] = len(out)
		out = append(out, Item{Name: r.Name, MeasurementUnit: r.MeasurementUnit, Amount: r.Amount})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].MeasurementUnit < out[j].MeasurementUnit
	})
	return out
}
