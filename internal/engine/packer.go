package engine

import (
	"slices"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// PlaceFunc packs as many items as it can into one empty bin. Placement.Index
// refers to the position of the item in items.
type PlaceFunc func(items []model.Rectangle, binWidth, binHeight int, allowRotate bool) []model.Placement

// PlacerFor returns the single-bin placer for an algorithm. Unknown values
// fall back to MaxRects.
func PlacerFor(algo model.Algorithm) PlaceFunc {
	switch algo {
	case model.AlgorithmBottomLeft:
		return PlaceBottomLeft
	case model.AlgorithmMaxRectsBSSF:
		return func(items []model.Rectangle, w, h int, rot bool) []model.Placement {
			return placeMaxRects(items, w, h, rot, scoreBestShortSide)
		}
	case model.AlgorithmMaxRectsBAF:
		return func(items []model.Rectangle, w, h int, rot bool) []model.Placement {
			return placeMaxRects(items, w, h, rot, scoreBestArea)
		}
	case model.AlgorithmMaxRectsBLSF:
		return func(items []model.Rectangle, w, h int, rot bool) []model.Placement {
			return placeMaxRects(items, w, h, rot, scoreBestLongSide)
		}
	case model.AlgorithmSkyline:
		return PlaceSkyline
	case model.AlgorithmSkylineBL:
		return func(items []model.Rectangle, w, h int, rot bool) []model.Placement {
			return placeSkyline(items, w, h, rot, skylineBottomLeft)
		}
	case model.AlgorithmGuillotine:
		return PlaceGuillotine
	case model.AlgorithmGuillotineBSSFSAS:
		return func(items []model.Rectangle, w, h int, rot bool) []model.Placement {
			return placeGuillotine(items, w, h, rot, scoreBestShortSide, splitShorterAxis)
		}
	default:
		return PlaceMaxRects
	}
}

// Packer distributes items over an ordered list of bins. Each bin is filled
// by a fresh single-bin pass over the items still pending; later bins only see
// what earlier bins could not take.
type Packer struct {
	items       []model.Rectangle
	bins        []model.Rectangle
	algorithm   model.Algorithm
	allowRotate bool

	results  []model.PackedRect
	unplaced []int
}

func NewPacker() *Packer {
	return &Packer{algorithm: model.AlgorithmMaxRects}
}

// AddItem queues an item and returns its index, which later shows up as
// PackedRect.ItemIndex.
func (p *Packer) AddItem(r model.Rectangle) int {
	p.items = append(p.items, r)
	return len(p.items) - 1
}

// AddBin appends a bin; bins are consumed in the order they were added.
func (p *Packer) AddBin(width, height int) {
	p.bins = append(p.bins, model.Rectangle{Width: width, Height: height})
}

func (p *Packer) SetAlgorithm(algo model.Algorithm) {
	p.algorithm = algo
}

func (p *Packer) SetRotation(allow bool) {
	p.allowRotate = allow
}

// Pack discards the previous results and packs every queued item.
func (p *Packer) Pack() {
	p.results = nil
	place := PlacerFor(p.algorithm)

	pending := make([]int, len(p.items))
	for i := range pending {
		pending[i] = i
	}

	for binID, bin := range p.bins {
		if len(pending) == 0 {
			break
		}

		batch := make([]model.Rectangle, len(pending))
		for i, idx := range pending {
			batch[i] = p.items[idx]
		}

		taken := make([]bool, len(pending))
		placed := 0
		for _, pl := range place(batch, bin.Width, bin.Height, p.allowRotate) {
			if pl.Index < 0 || pl.Index >= len(pending) || taken[pl.Index] {
				continue
			}
			taken[pl.Index] = true
			placed++
			fp := pl.Footprint()
			p.results = append(p.results, model.PackedRect{
				X:         pl.Position.X,
				Y:         pl.Position.Y,
				Width:     fp.Width,
				Height:    fp.Height,
				Rotated:   pl.Rotated,
				BinID:     binID,
				ItemIndex: pending[pl.Index],
			})
		}

		remaining := pending[:0:0]
		for i, idx := range pending {
			if !taken[i] {
				remaining = append(remaining, idx)
			}
		}
		pending = remaining

		klog.V(2).InfoS("Packed bin", "bin", binID, "size", bin, "algorithm", p.algorithm,
			"placed", placed, "pending", len(pending))
	}

	p.unplaced = pending
}

// Results returns the placements from the last Pack, in bin order.
func (p *Packer) Results() []model.PackedRect {
	return slices.Clone(p.results)
}

// Unplaced returns the indices of items the last Pack could not place.
func (p *Packer) Unplaced() []int {
	return slices.Clone(p.unplaced)
}
