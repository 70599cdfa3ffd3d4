package shopping

import (
	"reflect"
	"testing"
)

func TestAggregate_SumsByNameAndUnit(t *testing.T) {
	rows := []Usage{
		{"Salt", "g", 5},
		{"Salt", "g", 3},
		{"Sugar", "g", 2},
	}
	got := Aggregate(rows)
	want := []Item{
		{Name: "Salt", MeasurementUnit: "g", Amount: 8},
		{Name: "Sugar", MeasurementUnit: "g", Amount: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Aggregate = %+v; want %+v", got, want)
	}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("Aggregate(nil) = %#v; want empty non-nil slice", got)
	}
}

func TestAggregate_DistinctUnitsStaySeparate(t *testing.T) {
	rows := []Usage{
		{"Milk", "ml", 200},
		{"Milk", "cup", 1},
		{"Milk", "ml", 50},
	}
	got := Aggregate(rows)
	want := []Item{
		{Name: "Milk", MeasurementUnit: "cup", Amount: 1},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 250},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Aggregate = %+v; want %+v", got, want)
	}
}

func TestAggregate_ByteOrderIsCaseSensitive(t *testing.T) {
	rows := []Usage{
		{"apple", "pcs", 1},
		{"Zucchini", "pcs", 1},
		{"Apple", "pcs", 2},
	}
	got := Aggregate(rows)
	names := make([]string, len(got))
	for i, it := range got {
		names[i] = it.Name
	}
	want := []string{"Apple", "Zucchini", "apple"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("order = %v; want %v", names, want)
	}
}

func TestAggregate_EachPairOnce(t *testing.T) {
	rows := make([]Usage, 0, 300)
	for i := 0; i < 100; i++ {
		rows = append(rows,
			Usage{"Flour", "g", 10},
			Usage{"Eggs", "pcs", 1},
			Usage{"Flour", "kg", 1},
		)
	}
	got := Aggregate(rows)
	if len(got) != 3 {
		t.Fatalf("expected 3 groups, got %d: %+v", len(got), got)
	}
	sums := map[string]int64{}
	for _, it := range got {
		sums[it.Name+"/"+it.MeasurementUnit] = it.Amount
	}
	if sums["Flour/g"] != 1000 || sums["Eggs/pcs"] != 100 || sums["Flour/kg"] != 100 {
		t.Fatalf("unexpected sums: %v", sums)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	rows := []Usage{{"B", "g", 1}, {"A", "g", 1}, {"B", "g", 1}}
	cp := append([]Usage(nil), rows...)
	_ = Aggregate(rows)
	if !reflect.DeepEqual(rows, cp) {
		t.Fatalf("input mutated: %+v", rows)
	}
}
