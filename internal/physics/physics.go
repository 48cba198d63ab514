// Package physics provides axis-aligned collision tests and clamping utilities.
package physics

// PointInBox checks if a point lies within the box of size w x h centered on (cx, cy).
// Edges count as inside.
func PointInBox(px, py, cx, cy, w, h float64) bool {
	return px >= cx-w/2 && px <= cx+w/2 &&
		py >= cy-h/2 && py <= cy+h/2
}

// BoxesOverlap checks if two centered boxes intersect.
// Boxes that only touch along an edge do not overlap.
func BoxesOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return abs(x1-x2)*2 < w1+w2 && abs(y1-y2)*2 < h1+h2
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
