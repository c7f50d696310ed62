package engine

import (
	"cmp"
	"slices"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// Optimizer runs a packing job: quantity expansion, optional pre-sort and
// the configured search over the Packer.
type Optimizer struct {
	Settings model.Settings
}

func New(settings model.Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize takes items and bins, returns the packed layout. Items and bins
// with a Quantity above one are expanded into individual copies; bins are
// used in the given order.
func (o *Optimizer) Optimize(items []model.Item, bins []model.Bin) model.Result {
	if o.Settings.Search == model.SearchGenetic {
		return OptimizeGenetic(o.Settings, items, bins)
	}

	expanded := expandItems(items)
	sortItems(expanded, o.Settings.Sort)
	result := packInOrder(o.Settings, expanded, nil, expandBins(bins))

	klog.V(2).InfoS("Optimized job", "algorithm", o.Settings.Algorithm, "items", len(expanded),
		"bins", len(result.Bins), "unplaced", len(result.Unplaced), "efficiency", result.TotalEfficiency())
	return result
}

// expandItems expands items by quantity into individual placement candidates.
func expandItems(items []model.Item) []model.Item {
	var expanded []model.Item
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			cp := it
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// expandBins builds the ordered bin pool.
func expandBins(bins []model.Bin) []model.Bin {
	var pool []model.Bin
	for _, b := range bins {
		for i := 0; i < b.Quantity; i++ {
			cp := b
			cp.Quantity = 1
			pool = append(pool, cp)
		}
	}
	return pool
}

// sortKey returns the value items are ordered by, largest first.
func sortKey(it model.Item, order model.SortOrder) int {
	switch order {
	case model.SortArea:
		return it.Rect().Area()
	case model.SortPerimeter:
		return 2 * (it.Width + it.Height)
	case model.SortMaxSide:
		return max(it.Width, it.Height)
	case model.SortWidth:
		return it.Width
	case model.SortHeight:
		return it.Height
	}
	return 0
}

// sortItems orders items in place, descending and stable. SortNone keeps the
// input order.
func sortItems(items []model.Item, order model.SortOrder) {
	if order == model.SortNone || order == "" {
		return
	}
	slices.SortStableFunc(items, func(a, b model.Item) int {
		return cmp.Compare(sortKey(b, order), sortKey(a, order))
	})
}

// packInOrder runs the Packer over items in the given order. turned, when not
// nil, marks items fed to the Packer already rotated; the reported Rotated
// flag stays relative to the item as given.
func packInOrder(settings model.Settings, items []model.Item, turned []bool, bins []model.Bin) model.Result {
	pk := NewPacker()
	pk.SetAlgorithm(settings.Algorithm)
	pk.SetRotation(settings.AllowRotate)
	for i, it := range items {
		r := it.Rect()
		if turned != nil && turned[i] {
			r = r.Rotate()
		}
		pk.AddItem(r)
	}
	for _, b := range bins {
		pk.AddBin(b.Width, b.Height)
	}
	pk.Pack()

	byBin := make(map[int][]model.PlacedItem)
	for _, pr := range pk.Results() {
		rotated := pr.Rotated
		if turned != nil && turned[pr.ItemIndex] {
			rotated = !rotated
		}
		byBin[pr.BinID] = append(byBin[pr.BinID], model.PlacedItem{
			Item:    items[pr.ItemIndex],
			X:       pr.X,
			Y:       pr.Y,
			Rotated: rotated,
		})
	}

	result := model.Result{}
	for id, b := range bins {
		if placed := byBin[id]; len(placed) > 0 {
			result.Bins = append(result.Bins, model.BinResult{BinID: id, Bin: b, Placements: placed})
		}
	}
	for _, idx := range pk.Unplaced() {
		result.Unplaced = append(result.Unplaced, items[idx])
	}
	return result
}
