package engine

import (
	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// blPoint is a candidate origin for the bottom-left placer.
type blPoint struct {
	x, y int
}

// PlaceBottomLeft places items in input order, each at the lowest (then
// leftmost) candidate point where it rests on the bin floor or a placed item
// and against the left wall or a placed item. Candidate points are the bin
// origin plus the bottom-right and top-left corners of every placed footprint.
func PlaceBottomLeft(items []model.Rectangle, binWidth, binHeight int, allowRotate bool) []model.Placement {
	var placements []model.Placement
	var occupied []freeRect
	points := []blPoint{{0, 0}}

	for i, it := range items {
		if it.Degenerate() {
			klog.V(4).InfoS("Skipping degenerate item", "index", i, "size", it)
			continue
		}

		var best blPoint
		var bestOrient orientation
		found := false
		for _, o := range orientations(it, allowRotate) {
			for _, p := range points {
				if !validBLPoint(p, o, occupied, binWidth, binHeight) {
					continue
				}
				if !found || p.y < best.y || (p.y == best.y && p.x < best.x) {
					best, bestOrient, found = p, o, true
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
			Position: model.Position{X: best.x, Y: best.y},
			Rotated:  bestOrient.rotated,
		})
		occupied = append(occupied, freeRect{x: best.x, y: best.y, w: bestOrient.w, h: bestOrient.h})
		points = addBLPoint(points, blPoint{best.x + bestOrient.w, best.y})
		points = addBLPoint(points, blPoint{best.x, best.y + bestOrient.h})
	}
	return placements
}

func addBLPoint(points []blPoint, p blPoint) []blPoint {
	for _, q := range points {
		if q == p {
			return points
		}
	}
	return append(points, p)
}

// validBLPoint reports whether o fits at p inside the bin, clear of every
// occupied footprint, with support from below and from the left.
func validBLPoint(p blPoint, o orientation, occupied []freeRect, binWidth, binHeight int) bool {
	if p.x < 0 || p.y < 0 || p.x+o.w > binWidth || p.y+o.h > binHeight {
		return false
	}
	for _, r := range occupied {
		if r.overlaps(p.x, p.y, o.w, o.h) {
			return false
		}
	}

	below := p.y == 0
	left := p.x == 0
	for _, r := range occupied {
		if !below && r.y+r.h == p.y && r.x <= p.x && p.x < r.x+r.w {
			below = true
		}
		if !left && r.x+r.w == p.x && r.y <= p.y && p.y < r.y+r.h {
			left = true
		}
	}
	return below && left
}
