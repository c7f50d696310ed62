package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/binpack2d/internal/model"
)

func rects(sizes ...[2]int) []model.Rectangle {
	out := make([]model.Rectangle, len(sizes))
	for i, s := range sizes {
		out[i] = model.Rectangle{Width: s[0], Height: s[1]}
	}
	return out
}

// checkPlacements verifies the single-bin invariants: every placement refers
// to a distinct input item, keeps its size (turned only when allowed), stays
// inside the bin and overlaps no other placement.
func checkPlacements(t *testing.T, items []model.Rectangle, binW, binH int, allowRotate bool, placements []model.Placement) {
	t.Helper()
	seen := make(map[int]bool)
	var packed []model.PackedRect
	for _, p := range placements {
		require.True(t, p.Index >= 0 && p.Index < len(items), "index %d out of range", p.Index)
		require.False(t, seen[p.Index], "item %d placed twice", p.Index)
		seen[p.Index] = true

		assert.Equal(t, items[p.Index], p.Rect, "placement must report the item as given")
		if !allowRotate {
			assert.False(t, p.Rotated, "item %d rotated with rotation disabled", p.Index)
		}
		fp := p.Footprint()
		assert.True(t, p.Position.X >= 0 && p.Position.Y >= 0, "item %d at negative position", p.Index)
		assert.LessOrEqual(t, p.Position.X+fp.Width, binW, "item %d exceeds bin width", p.Index)
		assert.LessOrEqual(t, p.Position.Y+fp.Height, binH, "item %d exceeds bin height", p.Index)
		packed = append(packed, model.PackedRect{X: p.Position.X, Y: p.Position.Y, Width: fp.Width, Height: fp.Height, ItemIndex: p.Index})
	}
	assertNoOverlap(t, packed)
}

func assertNoOverlap(t *testing.T, packed []model.PackedRect) {
	t.Helper()
	for i := range packed {
		for j := i + 1; j < len(packed); j++ {
			if packed[i].BinID != packed[j].BinID {
				continue
			}
			assert.False(t, packed[i].Overlaps(packed[j]),
				"items %d and %d overlap in bin %d", packed[i].ItemIndex, packed[j].ItemIndex, packed[i].BinID)
		}
	}
}

// checkPacker verifies the multi-bin invariants on a packed Packer.
func checkPacker(t *testing.T, p *Packer) {
	t.Helper()
	results := p.Results()

	seen := make(map[int]bool)
	lastBin := 0
	for _, r := range results {
		require.True(t, r.ItemIndex >= 0 && r.ItemIndex < len(p.items), "item index %d out of range", r.ItemIndex)
		require.False(t, seen[r.ItemIndex], "item %d placed twice", r.ItemIndex)
		seen[r.ItemIndex] = true

		require.True(t, r.BinID >= 0 && r.BinID < len(p.bins), "bin %d out of range", r.BinID)
		assert.GreaterOrEqual(t, r.BinID, lastBin, "results must be grouped in bin order")
		lastBin = r.BinID

		item := p.items[r.ItemIndex]
		if r.Rotated {
			assert.True(t, p.allowRotate, "item %d rotated with rotation disabled", r.ItemIndex)
			assert.Equal(t, item.Rotate(), model.Rectangle{Width: r.Width, Height: r.Height})
		} else {
			assert.Equal(t, item, model.Rectangle{Width: r.Width, Height: r.Height})
		}

		bin := p.bins[r.BinID]
		assert.True(t, r.X >= 0 && r.Y >= 0)
		assert.LessOrEqual(t, r.X+r.Width, bin.Width)
		assert.LessOrEqual(t, r.Y+r.Height, bin.Height)
	}
	assertNoOverlap(t, results)

	for _, idx := range p.Unplaced() {
		assert.False(t, seen[idx], "item %d reported both placed and unplaced", idx)
		seen[idx] = true
	}
	assert.Len(t, seen, len(p.items), "every item is either placed or unplaced")
}
