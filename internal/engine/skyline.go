package engine

import (
	"slices"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// skylineNode is one horizontal segment of the skyline: it spans [x, x+w)
// at height y.
type skylineNode struct {
	x, y, w int
}

// skylineRule ranks a feasible position; lower is better.
type skylineRule func(x, y, h int) fitScore

// skylineLowest prefers the lowest resting height, then the leftmost position.
func skylineLowest(x, y, _ int) fitScore { return fitScore{primary: y, secondary: x} }

// skylineBottomLeft prefers the lowest resulting top edge, then the leftmost position.
func skylineBottomLeft(x, y, h int) fitScore { return fitScore{primary: y + h, secondary: x} }

// PlaceSkyline places items in input order on top of a skyline that starts
// as the bin floor. Each item goes where it rests lowest, leftmost on ties.
func PlaceSkyline(items []model.Rectangle, binWidth, binHeight int, allowRotate bool) []model.Placement {
	return placeSkyline(items, binWidth, binHeight, allowRotate, skylineLowest)
}

func placeSkyline(items []model.Rectangle, binWidth, binHeight int, allowRotate bool, rule skylineRule) []model.Placement {
	if binWidth <= 0 || binHeight <= 0 {
		return nil
	}
	nodes := []skylineNode{{0, 0, binWidth}}
	var placements []model.Placement

	for i, it := range items {
		if it.Degenerate() {
			klog.V(4).InfoS("Skipping degenerate item", "index", i, "size", it)
			continue
		}

		var (
			bestIdx    int
			bestX      int
			bestY      int
			bestScore  fitScore
			bestOrient orientation
			found      bool
		)
		for _, o := range orientations(it, allowRotate) {
			for idx := range nodes {
				y, ok := skylineFit(nodes, idx, o.w, o.h, binWidth, binHeight)
				if !ok {
					continue
				}
				s := rule(nodes[idx].x, y, o.h)
				if !found || s.less(bestScore) {
					bestIdx, bestX, bestY, bestScore, bestOrient, found = idx, nodes[idx].x, y, s, o, true
				}
			}
		}
		if !found {
			klog.V(4).InfoS("Item does not fit", "index", i, "size", it)
			continue
		}

		placements = append(placements, model.Placement{
			Index:    i,
			Rect:     it,
			Position: model.Position{X: bestX, Y: bestY},
			Rotated:  bestOrient.rotated,
		})
		nodes = skylineAdd(nodes, bestIdx, bestX, bestY, bestOrient.w, bestOrient.h)
	}
	return placements
}

// skylineFit returns the height at which a w x h item starting at node idx
// rests, or false if it would stick out of the bin.
func skylineFit(nodes []skylineNode, idx, w, h, binWidth, binHeight int) (int, bool) {
	x := nodes[idx].x
	if x+w > binWidth {
		return 0, false
	}
	y := nodes[idx].y
	left := w
	for i := idx; left > 0; i++ {
		if i >= len(nodes) {
			return 0, false
		}
		y = max(y, nodes[i].y)
		if y+h > binHeight {
			return 0, false
		}
		left -= nodes[i].w
	}
	return y, true
}

// skylineAdd raises the skyline under a placed item and merges neighbours of
// equal height.
func skylineAdd(nodes []skylineNode, idx, x, y, w, h int) []skylineNode {
	nodes = slices.Insert(nodes, idx, skylineNode{x: x, y: y + h, w: w})

	for i := idx + 1; i < len(nodes); {
		prev := nodes[i-1]
		end := prev.x + prev.w
		if nodes[i].x >= end {
			break
		}
		shrink := end - nodes[i].x
		nodes[i].x += shrink
		nodes[i].w -= shrink
		if nodes[i].w > 0 {
			break
		}
		nodes = slices.Delete(nodes, i, i+1)
	}

	for i := 0; i < len(nodes)-1; {
		if nodes[i].y == nodes[i+1].y {
			nodes[i].w += nodes[i+1].w
			nodes = slices.Delete(nodes, i+1, i+2)
			continue
		}
		i++
	}
	return nodes
}
