package model

import (
	"math"
	"testing"
)

func TestParseAlgorithm(t *testing.T) {
	for _, a := range Algorithms() {
		got, err := ParseAlgorithm(string(a))
		if err != nil {
			t.Errorf("ParseAlgorithm(%q) returned error: %v", a, err)
		}
		if got != a {
			t.Errorf("ParseAlgorithm(%q) = %q", a, got)
		}
	}

	got, err := ParseAlgorithm("  MaxRects-BSSF ")
	if err != nil || got != AlgorithmMaxRectsBSSF {
		t.Errorf("expected case-insensitive match, got %q, %v", got, err)
	}

	if _, err := ParseAlgorithm("tetris"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestParseSortOrderAndSearch(t *testing.T) {
	if s, err := ParseSortOrder(""); err != nil || s != SortNone {
		t.Errorf("empty sort should be none, got %q, %v", s, err)
	}
	if s, err := ParseSortOrder("Area"); err != nil || s != SortArea {
		t.Errorf("expected area, got %q, %v", s, err)
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Error("expected error for unknown sort order")
	}

	if s, err := ParseSearch(""); err != nil || s != SearchGreedy {
		t.Errorf("empty search should be greedy, got %q, %v", s, err)
	}
	if s, err := ParseSearch("GENETIC"); err != nil || s != SearchGenetic {
		t.Errorf("expected genetic, got %q, %v", s, err)
	}
	if _, err := ParseSearch("annealing"); err == nil {
		t.Error("expected error for unknown search")
	}
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	s.Algorithm = "unknown"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unknown algorithm")
	}

	s = DefaultSettings()
	s.Generations = -1
	if err := s.Validate(); err == nil {
		t.Error("expected error for negative generations")
	}
}

func TestNewItemAndBinAssignIDs(t *testing.T) {
	a := NewItem("A", 10, 20, 2)
	b := NewItem("B", 10, 20, 2)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.Rect() != (Rectangle{Width: 10, Height: 20}) {
		t.Errorf("unexpected rect %v", a.Rect())
	}

	bin := NewBin("Sheet", 100, 50, 1)
	if len(bin.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", bin.ID)
	}
}

func TestPlacedItemDimensions(t *testing.T) {
	p := PlacedItem{Item: Item{Width: 30, Height: 10}}
	if p.PlacedWidth() != 30 || p.PlacedHeight() != 10 {
		t.Errorf("unexpected unrotated dims %dx%d", p.PlacedWidth(), p.PlacedHeight())
	}
	p.Rotated = true
	if p.PlacedWidth() != 10 || p.PlacedHeight() != 30 {
		t.Errorf("unexpected rotated dims %dx%d", p.PlacedWidth(), p.PlacedHeight())
	}
}

func TestResultEfficiency(t *testing.T) {
	r := Result{
		Bins: []BinResult{
			{
				Bin: Bin{Width: 10, Height: 10},
				Placements: []PlacedItem{
					{Item: Item{Width: 5, Height: 10}},
				},
			},
			{
				Bin: Bin{Width: 10, Height: 10},
				Placements: []PlacedItem{
					{Item: Item{Width: 5, Height: 5}},
					{Item: Item{Width: 5, Height: 5}, X: 5},
				},
			},
		},
	}

	if r.PlacedCount() != 3 {
		t.Errorf("expected 3 placed, got %d", r.PlacedCount())
	}
	if math.Abs(r.Bins[0].Efficiency()-50) > 1e-9 {
		t.Errorf("expected 50%% efficiency, got %f", r.Bins[0].Efficiency())
	}
	if math.Abs(r.TotalEfficiency()-50) > 1e-9 {
		t.Errorf("expected 50%% total efficiency, got %f", r.TotalEfficiency())
	}

	var empty Result
	if empty.TotalEfficiency() != 0 {
		t.Error("empty result should have 0 efficiency")
	}
	if (BinResult{}).Efficiency() != 0 {
		t.Error("zero-area bin should have 0 efficiency")
	}
}

func TestNewJobDefaults(t *testing.T) {
	j := NewJob()
	if j.Name != "Untitled" {
		t.Errorf("expected Untitled, got %s", j.Name)
	}
	if j.Items == nil || j.Bins == nil {
		t.Error("items and bins should not be nil")
	}
	if j.Settings != DefaultSettings() {
		t.Error("expected default settings")
	}
}
