package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/binpack2d/internal/model"
)

func newTestPacker(algo model.Algorithm, rotate bool, items []model.Rectangle, bins ...[2]int) *Packer {
	p := NewPacker()
	p.SetAlgorithm(algo)
	p.SetRotation(rotate)
	for _, it := range items {
		p.AddItem(it)
	}
	for _, b := range bins {
		p.AddBin(b[0], b[1])
	}
	return p
}

func TestNewPacker_Defaults(t *testing.T) {
	p := NewPacker()
	assert.Equal(t, model.AlgorithmMaxRects, p.algorithm)
	assert.False(t, p.allowRotate)
	assert.Empty(t, p.Results())
	assert.Empty(t, p.Unplaced())
}

func TestPacker_AddItemReturnsIndex(t *testing.T) {
	p := NewPacker()
	assert.Equal(t, 0, p.AddItem(model.Rectangle{Width: 1, Height: 1}))
	assert.Equal(t, 1, p.AddItem(model.Rectangle{Width: 1, Height: 1}))
	assert.Equal(t, 2, p.AddItem(model.Rectangle{Width: 3, Height: 2}))
}

func TestPacker_RotatesToFit(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, true, rects([2]int{20, 10}), [2]int{15, 25})
	p.Pack()

	results := p.Results()
	require.Len(t, results, 1)
	assert.True(t, results[0].Rotated)
	assert.Equal(t, 10, results[0].Width)
	assert.Equal(t, 20, results[0].Height)
	checkPacker(t, p)
}

func TestPacker_SpillsIntoNextBin(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, false, rects([2]int{50, 50}, [2]int{50, 50}), [2]int{60, 60}, [2]int{60, 60})
	p.Pack()

	results := p.Results()
	require.Len(t, results, 2)
	assert.NotEqual(t, results[0].BinID, results[1].BinID)
	assert.Empty(t, p.Unplaced())
	checkPacker(t, p)
}

func TestPacker_ExactFit(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, false, rects([2]int{10, 10}), [2]int{10, 10})
	p.Pack()

	results := p.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].X)
	assert.Equal(t, 0, results[0].Y)
	assert.Equal(t, 0, results[0].BinID)
}

func TestPacker_IdenticalItemsKeepIdentity(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, false, rects([2]int{5, 5}, [2]int{5, 5}, [2]int{5, 5}),
		[2]int{5, 5}, [2]int{5, 5}, [2]int{5, 5})
	p.Pack()

	results := p.Results()
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, i, r.BinID)
		assert.Equal(t, i, r.ItemIndex)
	}
	checkPacker(t, p)
}

func TestPacker_StopsWhenNothingPending(t *testing.T) {
	p := newTestPacker(model.AlgorithmSkyline, false, rects([2]int{2, 2}), [2]int{10, 10}, [2]int{10, 10})
	p.Pack()

	results := p.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].BinID)
}

func TestPacker_NoBins(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, false, rects([2]int{2, 2}, [2]int{3, 3}))
	p.Pack()

	assert.Empty(t, p.Results())
	assert.Equal(t, []int{0, 1}, p.Unplaced())
}

func TestPacker_UnplacedItems(t *testing.T) {
	p := newTestPacker(model.AlgorithmGuillotine, false, rects([2]int{4, 4}, [2]int{11, 1}, [2]int{0, 3}, [2]int{4, 4}),
		[2]int{10, 10})
	p.Pack()

	assert.Equal(t, []int{1, 2}, p.Unplaced())
	checkPacker(t, p)
}

func TestPacker_PackTwiceReplacesResults(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, true, rects([2]int{3, 4}, [2]int{4, 3}, [2]int{2, 2}), [2]int{5, 5}, [2]int{5, 5})
	p.Pack()
	first := p.Results()

	p.Pack()
	assert.Equal(t, first, p.Results())
	checkPacker(t, p)
}

func TestPacker_ResultsAreCopies(t *testing.T) {
	p := newTestPacker(model.AlgorithmMaxRects, false, rects([2]int{3, 3}), [2]int{5, 5})
	p.Pack()

	r := p.Results()
	r[0].X = 99
	assert.Equal(t, 0, p.Results()[0].X)
}

func TestPacker_UnknownAlgorithmFallsBackToMaxRects(t *testing.T) {
	items := rects([2]int{3, 2}, [2]int{1, 4}, [2]int{2, 2}, [2]int{4, 1})

	want := newTestPacker(model.AlgorithmMaxRects, true, items, [2]int{5, 5}, [2]int{5, 5})
	want.Pack()
	got := newTestPacker("tetris", true, items, [2]int{5, 5}, [2]int{5, 5})
	got.Pack()

	assert.Equal(t, want.Results(), got.Results())
}

func TestPacker_RotationNeverPlacesFewer(t *testing.T) {
	items := rects([2]int{20, 5}, [2]int{5, 20}, [2]int{15, 8})

	off := newTestPacker(model.AlgorithmMaxRects, false, items, [2]int{25, 25})
	off.Pack()
	on := newTestPacker(model.AlgorithmMaxRects, true, items, [2]int{25, 25})
	on.Pack()

	assert.GreaterOrEqual(t, len(on.Results()), len(off.Results()))
	checkPacker(t, off)
	checkPacker(t, on)
}

func TestPacker_AllAlgorithmsPackMostItems(t *testing.T) {
	items := make([]model.Rectangle, 50)
	for i := range items {
		items[i] = model.Rectangle{Width: i%10 + 5, Height: i%8 + 3}
	}

	for _, algo := range model.Algorithms() {
		t.Run(string(algo), func(t *testing.T) {
			p := newTestPacker(algo, true, items, [2]int{100, 100}, [2]int{100, 100})
			p.Pack()

			assert.GreaterOrEqual(t, len(p.Results()), 30)
			checkPacker(t, p)
		})
	}
}

func TestPacker_ManyItemsManyBins(t *testing.T) {
	items := make([]model.Rectangle, 100)
	for i := range items {
		items[i] = model.Rectangle{Width: i%15 + 2, Height: i%12 + 2}
	}
	bins := make([][2]int, 10)
	for i := range bins {
		bins[i] = [2]int{50, 50}
	}

	p := newTestPacker(model.AlgorithmMaxRects, true, items, bins...)
	p.Pack()

	assert.GreaterOrEqual(t, len(p.Results()), 80)
	checkPacker(t, p)
}

func TestPacker_RandomInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, algo := range model.Algorithms() {
		t.Run(string(algo), func(t *testing.T) {
			for round := 0; round < 10; round++ {
				p := NewPacker()
				p.SetAlgorithm(algo)
				p.SetRotation(round%2 == 0)
				for i := 0; i < 40; i++ {
					p.AddItem(model.Rectangle{Width: rng.Intn(20) - 1, Height: rng.Intn(20) - 1})
				}
				for i := 0; i < 3; i++ {
					p.AddBin(rng.Intn(30)+5, rng.Intn(30)+5)
				}
				p.Pack()
				checkPacker(t, p)
			}
		})
	}
}
