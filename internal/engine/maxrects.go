package engine

import (
	"slices"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// PlaceMaxRects places items in input order into the smallest free rectangle
// that holds them. The chosen free rectangle is replaced by the strip to the
// right of the item and the full-width strip above it.
func PlaceMaxRects(items []model.Rectangle, binWidth, binHeight int, allowRotate bool) []model.Placement {
	return placeMaxRects(items, binWidth, binHeight, allowRotate, scoreSmallestArea)
}

func placeMaxRects(items []model.Rectangle, binWidth, binHeight int, allowRotate bool, score scoreFunc) []model.Placement {
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
		placements = append(placements, model.Placement{
			Index:    i,
			Rect:     it,
			Position: model.Position{X: f.x, Y: f.y},
			Rotated:  c.orient.rotated,
		})

		free = slices.Delete(free, c.index, c.index+1)
		free = append(free,
			freeRect{x: f.x + c.orient.w, y: f.y, w: f.w - c.orient.w, h: c.orient.h},
			freeRect{x: f.x, y: f.y + c.orient.h, w: f.w, h: f.h - c.orient.h},
		)
	}
	return placements
}
