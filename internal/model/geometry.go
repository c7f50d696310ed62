package model

import "fmt"

// Rectangle is the size of an item or bin. Dimensions are integers; a rectangle
// with a zero or negative side is degenerate and can never be placed.
type Rectangle struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Area returns width * height, or 0 for degenerate rectangles.
func (r Rectangle) Area() int {
	if r.Degenerate() {
		return 0
	}
	return r.Width * r.Height
}

// Degenerate reports whether either side is less than 1.
func (r Rectangle) Degenerate() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Square reports whether both sides are equal.
func (r Rectangle) Square() bool {
	return r.Width == r.Height
}

// Rotate returns the rectangle turned by 90 degrees.
func (r Rectangle) Rotate() Rectangle {
	return Rectangle{Width: r.Height, Height: r.Width}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Position is a bin-local coordinate.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Placement is the output of a single-bin placer: the item as given, where its
// origin went, and whether it was turned. Index is the position of the item in
// the slice handed to the placer.
type Placement struct {
	Index    int       `json:"index"`
	Rect     Rectangle `json:"rect"`
	Position Position  `json:"position"`
	Rotated  bool      `json:"rotated"`
}

// Footprint returns the occupied size, which is Rect turned when Rotated is set.
func (p Placement) Footprint() Rectangle {
	if p.Rotated {
		return p.Rect.Rotate()
	}
	return p.Rect
}

// PackedRect is a final placement produced by the multi-bin packer.
// Width and Height are the footprint after rotation.
type PackedRect struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Rotated   bool `json:"rotated"`
	BinID     int  `json:"bin_id"`
	ItemIndex int  `json:"item_index"`
}

// Overlaps reports whether the two footprints share any area. Touching edges
// do not count.
func (p PackedRect) Overlaps(o PackedRect) bool {
	return p.X < o.X+o.Width && o.X < p.X+p.Width &&
		p.Y < o.Y+o.Height && o.Y < p.Y+p.Height
}
