package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Item represents a rectangle requested by the user.
type Item struct {
	ID       string `json:"id" yaml:"id,omitempty"`
	Label    string `json:"label" yaml:"label"`
	Width    int    `json:"width" yaml:"width"`
	Height   int    `json:"height" yaml:"height"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

func NewItem(label string, w, h, qty int) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Rect returns the item's dimensions.
func (it Item) Rect() Rectangle {
	return Rectangle{Width: it.Width, Height: it.Height}
}

// Bin represents a container that items are packed into.
type Bin struct {
	ID       string `json:"id" yaml:"id,omitempty"`
	Label    string `json:"label" yaml:"label"`
	Width    int    `json:"width" yaml:"width"`
	Height   int    `json:"height" yaml:"height"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

func NewBin(label string, w, h, qty int) Bin {
	return Bin{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Rect returns the bin's dimensions.
func (b Bin) Rect() Rectangle {
	return Rectangle{Width: b.Width, Height: b.Height}
}

// Algorithm selects the placement heuristic and its tie-break policy.
type Algorithm string

const (
	AlgorithmBottomLeft        Algorithm = "bottom-left"
	AlgorithmMaxRects          Algorithm = "maxrects"            // Smallest free rectangle
	AlgorithmMaxRectsBSSF      Algorithm = "maxrects-bssf"       // Best short side fit
	AlgorithmMaxRectsBAF       Algorithm = "maxrects-baf"        // Best area fit
	AlgorithmMaxRectsBLSF      Algorithm = "maxrects-blsf"       // Best long side fit
	AlgorithmSkyline           Algorithm = "skyline"             // Lowest resting height
	AlgorithmSkylineBL         Algorithm = "skyline-bl"          // Lowest top edge
	AlgorithmGuillotine        Algorithm = "guillotine"          // Smallest free rectangle, horizontal split
	AlgorithmGuillotineBSSFSAS Algorithm = "guillotine-bssf-sas" // Best short side fit, shorter axis split
)

// Algorithms lists every supported algorithm in display order.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgorithmBottomLeft,
		AlgorithmMaxRects,
		AlgorithmMaxRectsBSSF,
		AlgorithmMaxRectsBAF,
		AlgorithmMaxRectsBLSF,
		AlgorithmSkyline,
		AlgorithmSkylineBL,
		AlgorithmGuillotine,
		AlgorithmGuillotineBSSFSAS,
	}
}

// ParseAlgorithm converts a case-insensitive name into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range Algorithms() {
		if a == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

// SortOrder controls how items are ordered before packing. All orders except
// SortNone are descending and stable.
type SortOrder string

const (
	SortNone      SortOrder = "none"
	SortArea      SortOrder = "area"
	SortPerimeter SortOrder = "perimeter"
	SortMaxSide   SortOrder = "max-side"
	SortWidth     SortOrder = "width"
	SortHeight    SortOrder = "height"
)

// ParseSortOrder converts a case-insensitive name into a SortOrder. An empty
// string means SortNone.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNone:
		return SortNone, nil
	case SortArea:
		return SortArea, nil
	case SortPerimeter:
		return SortPerimeter, nil
	case SortMaxSide:
		return SortMaxSide, nil
	case SortWidth:
		return SortWidth, nil
	case SortHeight:
		return SortHeight, nil
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// Search selects between a single greedy pass and a search over insertion orders.
type Search string

const (
	SearchGreedy  Search = "greedy"  // One pass in (optionally sorted) input order
	SearchGenetic Search = "genetic" // Genetic search over item orders (slower, often denser)
)

// ParseSearch converts a case-insensitive name into a Search. An empty string
// means SearchGreedy.
func ParseSearch(s string) (Search, error) {
	switch Search(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchGreedy:
		return SearchGreedy, nil
	case SearchGenetic:
		return SearchGenetic, nil
	}
	return "", fmt.Errorf("unknown search %q", s)
}

// Settings holds packing configuration.
type Settings struct {
	Algorithm   Algorithm `json:"algorithm" yaml:"algorithm"`
	AllowRotate bool      `json:"allow_rotate" yaml:"allow_rotate"`
	Sort        SortOrder `json:"sort" yaml:"sort"`
	Search      Search    `json:"search" yaml:"search"`

	// Genetic search parameters, used only with SearchGenetic
	Generations    int   `json:"generations,omitempty" yaml:"generations,omitempty"`         // 0 = scale with item count
	PopulationSize int   `json:"population_size,omitempty" yaml:"population_size,omitempty"` // 0 = scale with item count
	Seed           int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Algorithm:   AlgorithmMaxRects,
		AllowRotate: false,
		Sort:        SortNone,
		Search:      SearchGreedy,
		Seed:        42,
	}
}

// Validate checks that every enumerated field holds a known value.
func (s Settings) Validate() error {
	if _, err := ParseAlgorithm(string(s.Algorithm)); err != nil {
		return err
	}
	if _, err := ParseSortOrder(string(s.Sort)); err != nil {
		return err
	}
	if _, err := ParseSearch(string(s.Search)); err != nil {
		return err
	}
	if s.Generations < 0 || s.PopulationSize < 0 {
		return fmt.Errorf("generations and population size must not be negative")
	}
	return nil
}

// PlacedItem represents a single item placed in a bin.
type PlacedItem struct {
	Item    Item `json:"item"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Rotated bool `json:"rotated"` // Whether the item was turned 90°
}

// PlacedWidth returns the effective width considering rotation.
func (p PlacedItem) PlacedWidth() int {
	if p.Rotated {
		return p.Item.Height
	}
	return p.Item.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p PlacedItem) PlacedHeight() int {
	if p.Rotated {
		return p.Item.Width
	}
	return p.Item.Height
}

// BinResult represents one bin with its placed items. BinID is the index of
// the bin after quantity expansion.
type BinResult struct {
	BinID      int          `json:"bin_id"`
	Bin        Bin          `json:"bin"`
	Placements []PlacedItem `json:"placements"`
}

// UsedArea returns the total area covered by placed items.
func (br BinResult) UsedArea() int {
	total := 0
	for _, p := range br.Placements {
		total += p.PlacedWidth() * p.PlacedHeight()
	}
	return total
}

// TotalArea returns the bin area.
func (br BinResult) TotalArea() int {
	return br.Bin.Rect().Area()
}

// Efficiency returns the usage percentage.
func (br BinResult) Efficiency() float64 {
	ta := br.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(br.UsedArea()) / float64(ta) * 100.0
}

// Result holds the full solution.
type Result struct {
	Bins     []BinResult `json:"bins"`
	Unplaced []Item      `json:"unplaced"`
}

// PlacedCount returns the number of placed items across all bins.
func (r Result) PlacedCount() int {
	n := 0
	for _, b := range r.Bins {
		n += len(b.Placements)
	}
	return n
}

// TotalEfficiency returns overall usage percentage across the used bins.
func (r Result) TotalEfficiency() float64 {
	var used, total int
	for _, b := range r.Bins {
		used += b.UsedArea()
		total += b.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// Job ties items, bins and settings together for load/save.
type Job struct {
	Name     string   `json:"name" yaml:"name"`
	Items    []Item   `json:"items" yaml:"items"`
	Bins     []Bin    `json:"bins" yaml:"bins"`
	Settings Settings `json:"settings" yaml:"settings"`
}

func NewJob() Job {
	return Job{
		Name:     "Untitled",
		Items:    []Item{},
		Bins:     []Bin{},
		Settings: DefaultSettings(),
	}
}
