package engine

import (
	"slices"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// splitRule decides the direction of the cut through the leftover of a free
// rectangle. Horizontal cuts give the full width to the part above the item;
// vertical cuts give the full height to the part on its right.
type splitRule func(f freeRect, w, h int) (horizontal bool)

func splitHorizontal(freeRect, int, int) bool { return true }

func splitShorterAxis(f freeRect, _, _ int) bool { return f.w <= f.h }

// PlaceGuillotine places items in input order into the smallest free
// rectangle that holds them, then cuts the leftover into a right and an upper
// piece. Empty pieces are discarded.
func PlaceGuillotine(items []model.Rectangle, binWidth, binHeight int, allowRotate bool) []model.Placement {
	return placeGuillotine(items, binWidth, binHeight, allowRotate, scoreSmallestArea, splitHorizontal)
}

func placeGuillotine(items []model.Rectangle, binWidth, binHeight int, allowRotate bool, score scoreFunc, split splitRule) []model.Placement {
	free := []freeRect{{0, 0, binWidth, binHeight}}
	var placements []model.Placement

	for i, it := range items {
		if it.Degenerate() {
			klog.V(4).InfoS("Skipping degenerate item", "index", i, "size", it)
			continue
		}
		c, ok := chooseFree(free, it, allowRotate, score)
		if !ok {
			klog.V(4).InfoS("Item does not fit", "index", i, "size", it)
			continue
		}

		f := free[c.index]
		w, h := c.orient.w, c.orient.h
		placements = append(placements, model.Placement{
			Index:    i,
			Rect:     it,
			Position: model.Position{X: f.x, Y: f.y},
			Rotated:  c.orient.rotated,
		})

		var right, above freeRect
		if split(f, w, h) {
			right = freeRect{x: f.x + w, y: f.y, w: f.w - w, h: h}
			above = freeRect{x: f.x, y: f.y + h, w: f.w, h: f.h - h}
		} else {
			right = freeRect{x: f.x + w, y: f.y, w: f.w - w, h: f.h}
			above = freeRect{x: f.x, y: f.y + h, w: w, h: f.h - h}
		}

		free = slices.Delete(free, c.index, c.index+1)
		for _, r := range []freeRect{right, above} {
			if r.w > 0 && r.h > 0 {
				free = append(free, r)
			}
		}
	}
	return placements
}
