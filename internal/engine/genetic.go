package engine

import (
	"math/rand"
	"slices"
	"sort"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/model"
)

// GeneticConfig holds parameters for the genetic order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
	}
}

// gene is one position in the insertion order.
type gene struct {
	itemIndex int  // Index into the expanded items slice
	turned    bool // Feed the item to the packer turned 90 degrees
}

// chromosome is a candidate insertion order.
type chromosome struct {
	genes   []gene
	fitness float64
}

type geneticOptimizer struct {
	settings model.Settings
	config   GeneticConfig
	items    []model.Item
	bins     []model.Bin
	rng      *rand.Rand
}

func newGeneticOptimizer(settings model.Settings, config GeneticConfig, items []model.Item, bins []model.Bin, seed int64) *geneticOptimizer {
	return &geneticOptimizer{
		settings: settings,
		config:   config,
		items:    items,
		bins:     bins,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// optimize runs the search and returns the best packing found.
func (g *geneticOptimizer) optimize() model.Result {
	if len(g.items) == 0 || len(g.bins) == 0 {
		return packInOrder(g.settings, g.items, nil, g.bins)
	}

	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		eliteCount := min(g.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, population[i].clone())
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
		if klog.V(4).Enabled() {
			klog.V(4).InfoS("Genetic generation", "generation", gen, "best", population[0].fitness)
		}
	}

	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})

	klog.V(2).InfoS("Genetic search finished", "generations", g.config.Generations,
		"population", g.config.PopulationSize, "fitness", population[0].fitness)
	return g.decode(population[0])
}

// initPopulation creates the random population. The first member is the
// area-descending greedy order so the search never does worse than it.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{
				itemIndex: perm[j],
				turned:    g.settings.AllowRotate && g.rng.Float64() < 0.5,
			}
		}
		population[i] = chromosome{genes: genes}
	}

	if g.config.PopulationSize > 0 {
		population[0] = g.createGreedyChromosome()
	}
	return population
}

// createGreedyChromosome orders items by area descending.
func (g *geneticOptimizer) createGreedyChromosome() chromosome {
	n := len(g.items)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return g.items[indices[i]].Rect().Area() > g.items[indices[j]].Rect().Area()
	})

	genes := make([]gene, n)
	for i, idx := range indices {
		genes[i] = gene{itemIndex: idx}
	}
	return chromosome{genes: genes}
}

// evaluate scores a chromosome by packing it and measuring efficiency.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	return fitness(g.decode(c))
}

func fitness(result model.Result) float64 {
	if len(result.Bins) == 0 {
		return 0
	}

	efficiency := result.TotalEfficiency() / 100.0

	// Unplaced items cost far more than an extra bin
	unplacedPenalty := float64(len(result.Unplaced)) * 0.1
	binPenalty := float64(len(result.Bins)-1) * 0.05

	f := efficiency - unplacedPenalty - binPenalty
	if f < 0 {
		f = 0
	}
	return f
}

// decode packs items in chromosome order through the Packer.
func (g *geneticOptimizer) decode(c chromosome) model.Result {
	ordered := make([]model.Item, len(c.genes))
	turned := make([]bool, len(c.genes))
	for i, gn := range c.genes {
		ordered[i] = g.items[gn.itemIndex]
		turned[i] = gn.turned && g.settings.AllowRotate
	}
	return packInOrder(g.settings, ordered, turned, g.bins)
}

// clone returns a chromosome that shares no genes with c.
func (c chromosome) clone() chromosome {
	return chromosome{genes: slices.Clone(c.genes), fitness: c.fitness}
}

// tournamentSelect returns the fittest of TournamentSize random draws. The
// result aliases the population; callers clone before modifying it.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for range max(g.config.TournamentSize-1, 0) {
		if c := population[g.rng.Intn(len(population))]; c.fitness > best.fitness {
			best = c
		}
	}
	return best
}

// orderCrossover keeps a random slice of the first parent in place and fills
// the remaining positions, starting after the slice and wrapping, with the
// missing items in the order the second parent lists them. Turn flags travel
// with their items.
func (g *geneticOptimizer) orderCrossover(first, second chromosome) chromosome {
	n := len(first.genes)
	if n <= 2 {
		return first.clone()
	}

	lo, hi := g.rng.Intn(n), g.rng.Intn(n)
	if lo > hi {
		lo, hi = hi, lo
	}

	genes := make([]gene, n)
	kept := make([]bool, n)
	copy(genes[lo:hi+1], first.genes[lo:hi+1])
	for _, gn := range genes[lo : hi+1] {
		kept[gn.itemIndex] = true
	}

	pos := (hi + 1) % n
	for _, gn := range second.genes {
		if kept[gn.itemIndex] {
			continue
		}
		genes[pos] = gn
		pos = (pos + 1) % n
	}
	return chromosome{genes: genes}
}

// mutate may swap two genes, flip one turn flag (only when rotation is
// allowed) and reverse a run of genes, each with its own probability.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}
	rate := g.config.MutationRate

	if g.rng.Float64() < rate {
		i, j := g.rng.Intn(n), g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}
	if g.settings.AllowRotate && g.rng.Float64() < rate {
		i := g.rng.Intn(n)
		c.genes[i].turned = !c.genes[i].turned
	}
	if g.rng.Float64() < rate/2 {
		i, j := g.rng.Intn(n), g.rng.Intn(n)
		slices.Reverse(c.genes[min(i, j) : max(i, j)+1])
	}
}

// geneticConfigFor scales the defaults with the number of items unless the
// settings pin them.
func geneticConfigFor(settings model.Settings, n int) GeneticConfig {
	config := DefaultGeneticConfig()
	if n > 20 {
		config.Generations = 150
	}
	if n > 50 {
		config.Generations = 200
		config.PopulationSize = 80
	}
	if settings.Generations > 0 {
		config.Generations = settings.Generations
	}
	if settings.PopulationSize > 0 {
		config.PopulationSize = settings.PopulationSize
	}
	return config
}

// OptimizeGenetic searches item insertion orders with a genetic algorithm and
// returns the best packing found. Each candidate order is packed with the
// configured algorithm, so the result obeys the same rules as a greedy run.
func OptimizeGenetic(settings model.Settings, items []model.Item, bins []model.Bin) model.Result {
	expanded := expandItems(items)
	pool := expandBins(bins)

	seed := settings.Seed
	if seed == 0 {
		seed = 42
	}
	ga := newGeneticOptimizer(settings, geneticConfigFor(settings, len(expanded)), expanded, pool, seed)
	return ga.optimize()
}
