package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/binpack2d/internal/model"
)

// point is a drawing coordinate.
type point struct {
	x, y float64
}

// segment is a straight piece of a LINE or a sampled ARC, chained into
// closed shapes.
type segment struct {
	start, end point
}

// shape is the outline of one closed DXF entity or chain.
type shape []point

// bounds returns the axis-aligned extent of the shape.
func (s shape) bounds() (w, h float64) {
	if len(s) == 0 {
		return 0, 0
	}
	minX, minY := s[0].x, s[0].y
	maxX, maxY := minX, minY
	for _, p := range s[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return maxX - minX, maxY - minY
}

// area is the absolute polygon area (shoelace formula).
func (s shape) area() float64 {
	if len(s) < 3 {
		return 0
	}
	var a float64
	for i := range s {
		j := (i + 1) % len(s)
		a += s[i].x*s[j].y - s[j].x*s[i].y
	}
	return math.Abs(a) / 2
}

// chainTolerance is the largest gap between endpoints that still connects them.
const chainTolerance = 0.01

// ImportDXF reads a DXF drawing and turns every closed shape (LWPOLYLINE,
// CIRCLE or chain of LINEs and ARCs) into an item the size of its bounding
// box, rounded up to whole units.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []shape
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			s := make(shape, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				s = append(s, point{v[0], v[1]})
			}
			if len(s) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			shapes = append(shapes, s)

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			shapes = append(shapes, shape{{cx - r, cy - r}, {cx + r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})

		case *entity.Arc:
			segments = append(segments, arcSegments(e, 32)...)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}

	shapes = append(shapes, chainSegments(segments, chainTolerance)...)
	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, s := range shapes {
		w, h := s.bounds()
		width, height := roundUp(w), roundUp(h)
		if width <= 0 || height <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		result.Items = append(result.Items, model.NewItem(fmt.Sprintf("DXF Item %d", i+1), width, height, 1))
	}

	return result
}

// roundUp converts a drawing length to whole units so the item is never
// smaller than the shape. Lengths within chainTolerance of a whole number
// snap to it.
func roundUp(v float64) int {
	if v < chainTolerance {
		return 0
	}
	return int(math.Ceil(v - chainTolerance))
}

// arcSegments samples an ARC into straight segments.
func arcSegments(a *entity.Arc, n int) []segment {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	at := func(i int) point {
		t := start + float64(i)/float64(n)*(end-start)
		return point{cx + r*math.Cos(t), cy + r*math.Sin(t)}
	}
	segs := make([]segment, 0, n)
	for i := 0; i < n; i++ {
		segs = append(segs, segment{start: at(i), end: at(i + 1)})
	}
	return segs
}

// chainSegments joins segments end to end into closed shapes, largest first.
// Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) []shape {
	used := make([]bool, len(segs))
	var shapes []shape

	for first := range segs {
		if used[first] {
			continue
		}
		used[first] = true
		chain := shape{segs[first].start, segs[first].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				var next point
				switch {
				case near(tail, seg.start, tolerance):
					next = seg.end
				case near(tail, seg.end, tolerance):
					next = seg.start
				default:
					continue
				}
				chain = append(chain, next)
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) >= 4 && near(chain[0], chain[len(chain)-1], tolerance) {
			shapes = append(shapes, chain[:len(chain)-1])
		}
	}

	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].area() > shapes[j].area()
	})
	return shapes
}

func near(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
