package engine

import "github.com/piwi3910/binpack2d/internal/model"

// orientation is one way an item can be laid down.
type orientation struct {
	w, h    int
	rotated bool
}

// orientations returns the upright orientation first, then the turned one when
// rotation is allowed and turning actually changes the footprint.
func orientations(r model.Rectangle, allowRotate bool) []orientation {
	out := []orientation{{w: r.Width, h: r.Height}}
	if allowRotate && !r.Square() {
		out = append(out, orientation{w: r.Height, h: r.Width, rotated: true})
	}
	return out
}

// freeRect is an empty region of a bin.
type freeRect struct {
	x, y, w, h int
}

func (f freeRect) area() int {
	return f.w * f.h
}

func (f freeRect) fits(w, h int) bool {
	return w <= f.w && h <= f.h
}

// overlaps reports whether a w x h footprint at (x, y) shares area with f.
func (f freeRect) overlaps(x, y, w, h int) bool {
	return x < f.x+f.w && f.x < x+w && y < f.y+f.h && f.y < y+h
}

// fitScore ranks a free rectangle for an orientation. Lower is better; the
// secondary value only breaks ties on the primary one.
type fitScore struct {
	primary, secondary int
}

func (s fitScore) less(o fitScore) bool {
	if s.primary != o.primary {
		return s.primary < o.primary
	}
	return s.secondary < o.secondary
}

type scoreFunc func(f freeRect, w, h int) fitScore

// scoreSmallestArea prefers the smallest containing free rectangle.
func scoreSmallestArea(f freeRect, w, h int) fitScore {
	return fitScore{primary: f.area()}
}

// scoreBestArea prefers the least leftover area, then the smaller short side leftover.
func scoreBestArea(f freeRect, w, h int) fitScore {
	return fitScore{
		primary:   f.area() - w*h,
		secondary: min(f.w-w, f.h-h),
	}
}

// scoreBestShortSide prefers the smaller short side leftover, then the long side.
func scoreBestShortSide(f freeRect, w, h int) fitScore {
	dw, dh := f.w-w, f.h-h
	return fitScore{primary: min(dw, dh), secondary: max(dw, dh)}
}

// scoreBestLongSide prefers the smaller long side leftover, then the short side.
func scoreBestLongSide(f freeRect, w, h int) fitScore {
	dw, dh := f.w-w, f.h-h
	return fitScore{primary: max(dw, dh), secondary: min(dw, dh)}
}

// freeChoice is the winning free rectangle for one item.
type freeChoice struct {
	index  int
	orient orientation
	score  fitScore
}

// chooseFree scans orientations, then free rectangles, keeping the first
// strictly better score. Returns false when nothing contains the item.
func chooseFree(free []freeRect, r model.Rectangle, allowRotate bool, score scoreFunc) (freeChoice, bool) {
	var best freeChoice
	found := false
	for _, o := range orientations(r, allowRotate) {
		for i, f := range free {
			if !f.fits(o.w, o.h) {
				continue
			}
			s := score(f, o.w, o.h)
			if !found || s.less(best.score) {
				best = freeChoice{index: i, orient: o, score: s}
				found = true
			}
		}
	}
	return best, found
}
