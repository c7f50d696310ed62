package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/binpack2d/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the packing result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.Result
	BinsUsed      int
	PlacedCount   int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios packs the same job once per scenario, concurrently, and
// returns the results in scenario order. It stops early and returns the
// context error if ctx is cancelled.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, items []model.Item, bins []model.Bin) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, scenario := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := scenario.Settings.Validate(); err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}

			result := New(scenario.Settings).Optimize(items, bins)
			waste := 0.0
			if len(result.Bins) > 0 {
				waste = 100.0 - result.TotalEfficiency()
			}
			results[i] = ComparisonResult{
				Scenario:      scenario,
				Result:        result,
				BinsUsed:      len(result.Bins),
				PlacedCount:   result.PlacedCount(),
				WastePercent:  waste,
				UnplacedCount: len(result.Unplaced),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BuildDefaultScenarios generates what-if alternatives around the base
// settings: every other algorithm, and the base algorithm with rotation
// toggled.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Settings", Settings: base},
	}

	for _, algo := range model.Algorithms() {
		if algo == base.Algorithm {
			continue
		}
		alt := base
		alt.Algorithm = algo
		scenarios = append(scenarios, ComparisonScenario{
			Name:     string(algo),
			Settings: alt,
		})
	}

	toggled := base
	toggled.AllowRotate = !base.AllowRotate
	name := "Rotation On"
	if base.AllowRotate {
		name = "Rotation Off"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: toggled})

	return scenarios
}
