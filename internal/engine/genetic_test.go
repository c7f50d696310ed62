package engine

import (
	"testing"

	"github.com/piwi3910/binpack2d/internal/model"
)

func makeTestItems() []model.Item {
	return []model.Item{
		{ID: "p1", Label: "A", Width: 400, Height: 300, Quantity: 1},
		{ID: "p2", Label: "B", Width: 200, Height: 150, Quantity: 2},
		{ID: "p3", Label: "C", Width: 500, Height: 400, Quantity: 1},
	}
}

func makeTestBins() []model.Bin {
	return []model.Bin{
		{ID: "s1", Label: "Sheet", Width: 2440, Height: 1220, Quantity: 2},
	}
}

func makeTestSettings() model.Settings {
	s := model.DefaultSettings()
	s.Search = model.SearchGenetic
	s.Generations = 20
	s.PopulationSize = 20
	return s
}

func TestGeneticOptimizerPlacesAllItems(t *testing.T) {
	result := OptimizeGenetic(makeTestSettings(), makeTestItems(), makeTestBins())

	if result.PlacedCount() != 4 {
		t.Errorf("expected 4 items placed, got %d", result.PlacedCount())
	}
	if len(result.Unplaced) != 0 {
		t.Errorf("expected 0 unplaced items, got %d", len(result.Unplaced))
	}
	if len(result.Bins) != 1 {
		t.Errorf("expected 1 bin, got %d", len(result.Bins))
	}
}

func TestGeneticOptimizerDeterministic(t *testing.T) {
	settings := makeTestSettings()
	settings.AllowRotate = true

	a := OptimizeGenetic(settings, makeTestItems(), makeTestBins())
	b := OptimizeGenetic(settings, makeTestItems(), makeTestBins())

	if len(a.Bins) != len(b.Bins) {
		t.Fatalf("bin counts differ: %d vs %d", len(a.Bins), len(b.Bins))
	}
	for i := range a.Bins {
		if len(a.Bins[i].Placements) != len(b.Bins[i].Placements) {
			t.Fatalf("bin %d placement counts differ", i)
		}
		for j := range a.Bins[i].Placements {
			if a.Bins[i].Placements[j] != b.Bins[i].Placements[j] {
				t.Errorf("bin %d placement %d differs: %+v vs %+v", i, j, a.Bins[i].Placements[j], b.Bins[i].Placements[j])
			}
		}
	}
}

func TestGeneticOptimizerNoWorseThanGreedy(t *testing.T) {
	items := []model.Item{
		{Label: "A", Width: 30, Height: 20, Quantity: 3},
		{Label: "B", Width: 50, Height: 15, Quantity: 2},
		{Label: "C", Width: 10, Height: 45, Quantity: 4},
		{Label: "D", Width: 25, Height: 25, Quantity: 2},
	}
	bins := []model.Bin{{Label: "Board", Width: 60, Height: 60, Quantity: 4}}

	for _, algo := range []model.Algorithm{model.AlgorithmMaxRects, model.AlgorithmSkyline, model.AlgorithmBottomLeft} {
		greedySettings := model.DefaultSettings()
		greedySettings.Algorithm = algo
		greedySettings.Sort = model.SortArea
		greedy := New(greedySettings).Optimize(items, bins)

		gaSettings := makeTestSettings()
		gaSettings.Algorithm = algo
		ga := OptimizeGenetic(gaSettings, items, bins)

		if fitness(ga) < fitness(greedy) {
			t.Errorf("%s: genetic fitness %.4f below greedy %.4f", algo, fitness(ga), fitness(greedy))
		}
	}
}

func TestGeneticOptimizerRespectsRotation(t *testing.T) {
	settings := makeTestSettings()
	items := []model.Item{
		{Label: "Tall", Width: 10, Height: 50, Quantity: 4},
		{Label: "Wide", Width: 50, Height: 10, Quantity: 4},
	}
	bins := []model.Bin{{Label: "Board", Width: 60, Height: 60, Quantity: 3}}

	result := OptimizeGenetic(settings, items, bins)
	for _, br := range result.Bins {
		for _, p := range br.Placements {
			if p.Rotated {
				t.Errorf("item %s rotated with rotation disabled", p.Item.Label)
			}
		}
	}

	settings.AllowRotate = true
	result = OptimizeGenetic(settings, items, bins)
	if result.PlacedCount() != 8 {
		t.Errorf("expected 8 placed with rotation, got %d", result.PlacedCount())
	}
	assertResultValid(t, settings, result)
}

func TestGeneticOptimizerEmptyInput(t *testing.T) {
	settings := makeTestSettings()

	result := OptimizeGenetic(settings, nil, makeTestBins())
	if len(result.Bins) != 0 || len(result.Unplaced) != 0 {
		t.Errorf("expected empty result for no items, got %+v", result)
	}

	result = OptimizeGenetic(settings, makeTestItems(), nil)
	if len(result.Unplaced) != 4 {
		t.Errorf("expected all 4 items unplaced without bins, got %d", len(result.Unplaced))
	}
}

func TestOptimizeDispatchesGenetic(t *testing.T) {
	settings := makeTestSettings()
	result := New(settings).Optimize(makeTestItems(), makeTestBins())

	if result.PlacedCount() != 4 {
		t.Errorf("expected 4 items placed, got %d", result.PlacedCount())
	}
}

func TestOrderCrossoverPreservesPermutation(t *testing.T) {
	items := make([]model.Item, 10)
	for i := range items {
		items[i] = model.Item{Width: i + 1, Height: 1, Quantity: 1}
	}
	g := newGeneticOptimizer(makeTestSettings(), DefaultGeneticConfig(), items, makeTestBins(), 1)
	pop := g.initPopulation()

	for k := 0; k < 50; k++ {
		child := g.orderCrossover(pop[k%len(pop)], pop[(k+1)%len(pop)])
		g.mutate(&child)

		seen := make(map[int]bool)
		for _, gn := range child.genes {
			if seen[gn.itemIndex] {
				t.Fatalf("item %d appears twice in child", gn.itemIndex)
			}
			seen[gn.itemIndex] = true
		}
		if len(seen) != len(items) {
			t.Fatalf("child has %d distinct items, want %d", len(seen), len(items))
		}
	}
}

func TestGeneticConfigScaling(t *testing.T) {
	s := model.DefaultSettings()

	if c := geneticConfigFor(s, 10); c.Generations != 100 || c.PopulationSize != 50 {
		t.Errorf("unexpected config for 10 items: %+v", c)
	}
	if c := geneticConfigFor(s, 30); c.Generations != 150 {
		t.Errorf("expected 150 generations for 30 items, got %d", c.Generations)
	}
	if c := geneticConfigFor(s, 60); c.Generations != 200 || c.PopulationSize != 80 {
		t.Errorf("unexpected config for 60 items: %+v", c)
	}

	s.Generations = 7
	s.PopulationSize = 9
	if c := geneticConfigFor(s, 60); c.Generations != 7 || c.PopulationSize != 9 {
		t.Errorf("settings should override scaling: %+v", c)
	}
}

func TestChromosomeClone(t *testing.T) {
	orig := chromosome{genes: []gene{{itemIndex: 0}, {itemIndex: 1, turned: true}}, fitness: 0.5}
	cp := orig.clone()

	cp.genes[0].itemIndex = 7
	cp.genes[1].turned = false

	if orig.genes[0].itemIndex != 0 || !orig.genes[1].turned {
		t.Error("clone shares genes with the original")
	}
	if cp.fitness != orig.fitness {
		t.Errorf("expected fitness %v, got %v", orig.fitness, cp.fitness)
	}
}

func TestMutateTurnsOnlyWithRotation(t *testing.T) {
	items := make([]model.Item, 8)
	for i := range items {
		items[i] = model.Item{Width: i + 1, Height: 2, Quantity: 1}
	}
	config := DefaultGeneticConfig()
	config.MutationRate = 1

	settings := makeTestSettings()
	settings.AllowRotate = false
	g := newGeneticOptimizer(settings, config, items, makeTestBins(), 3)
	c := g.createGreedyChromosome()
	for k := 0; k < 100; k++ {
		g.mutate(&c)
		for _, gn := range c.genes {
			if gn.turned {
				t.Fatalf("gene for item %d turned with rotation disabled", gn.itemIndex)
			}
		}
	}

	settings.AllowRotate = true
	g = newGeneticOptimizer(settings, config, items, makeTestBins(), 3)
	c = g.createGreedyChromosome()
	turned := false
	for k := 0; k < 100 && !turned; k++ {
		g.mutate(&c)
		for _, gn := range c.genes {
			turned = turned || gn.turned
		}
	}
	if !turned {
		t.Error("expected at least one turned gene with rotation allowed")
	}
}
