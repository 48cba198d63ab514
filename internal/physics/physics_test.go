package physics

import "testing"

func TestPointInBoxIncludesEdges(t *testing.T) {
	if !PointInBox(10, 8, 0, 0, 20, 16) {
		t.Fatal("corner point should be inside")
	}
	if !PointInBox(0, 0, 0, 0, 20, 16) {
		t.Fatal("center point should be inside")
	}
	if PointInBox(10.01, 0, 0, 0, 20, 16) {
		t.Fatal("point right of box should be outside")
	}
	if PointInBox(0, -8.5, 0, 0, 20, 16) {
		t.Fatal("point above box should be outside")
	}
}

func TestBoxesOverlap(t *testing.T) {
	if !BoxesOverlap(0, 0, 20, 16, 10, 5, 18, 14) {
		t.Fatal("intersecting boxes should overlap")
	}
	if BoxesOverlap(0, 0, 20, 20, 20, 0, 20, 20) {
		t.Fatal("touching boxes should not overlap")
	}
	if BoxesOverlap(0, 0, 4, 4, 0, 100, 4, 4) {
		t.Fatal("distant boxes should not overlap")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("Clamp below = %v, want 0", got)
	}
	if got := Clamp(13, 0, 10); got != 10 {
		t.Fatalf("Clamp above = %v, want 10", got)
	}
	if got := Clamp(4.5, 0, 10); got != 4.5 {
		t.Fatalf("Clamp inside = %v, want 4.5", got)
	}
}
