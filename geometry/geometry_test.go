package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a, b := Point{0, 0}, Point{3, 4}
	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := DistanceSquared(a, b); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
	if got := Distance(b, b); got != 0 {
		t.Errorf("Distance to itself = %v", got)
	}
}

func TestRectsIntersect(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", NewRect(5, 5, 10, 10), true},
		{"inside", NewRect(2, 2, 1, 1), true},
		{"around", NewRect(-5, -5, 30, 30), true},
		{"touching edge", NewRect(10, 0, 5, 5), true},
		{"left", NewRect(-6, 0, 5, 5), false},
		{"right", NewRect(11, 0, 5, 5), false},
		{"above", NewRect(0, -6, 5, 5), false},
		{"below", NewRect(0, 11, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectsIntersect(base, tt.other); got != tt.want {
				t.Errorf("RectsIntersect(base, other) = %v, want %v", got, tt.want)
			}
			if got := RectsIntersect(tt.other, base); got != tt.want {
				t.Errorf("RectsIntersect(other, base) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCirclesIntersect(t *testing.T) {
	tests := []struct {
		name string
		c2   Point
		r2   float64
		want bool
	}{
		{"overlap", Point{3, 0}, 2, true},
		{"touching", Point{4, 0}, 2, true},
		{"apart", Point{5, 0}, 2, false},
		{"concentric", Point{0, 0}, 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesIntersect(Point{0, 0}, 2, tt.c2, tt.r2); got != tt.want {
				t.Errorf("CirclesIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientation(t *testing.T) {
	p, q := Point{0, 0}, Point{1, 0}
	tests := []struct {
		r    Point
		want Orient
	}{
		{Point{2, 0}, Collinear},
		{Point{1, 1}, CounterClockwise},
		{Point{1, -1}, Clockwise},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := Orientation(p, q, tt.r); got != tt.want {
				t.Errorf("Orientation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, q1, p2, q2 Point
		want           bool
	}{
		{"cross", Point{0, 0}, Point{4, 4}, Point{0, 4}, Point{4, 0}, true},
		{"parallel", Point{0, 0}, Point{4, 0}, Point{0, 1}, Point{4, 1}, false},
		{"collinear overlap", Point{0, 0}, Point{4, 0}, Point{2, 0}, Point{6, 0}, true},
		{"collinear apart", Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{3, 0}, false},
		{"shared endpoint", Point{0, 0}, Point{2, 2}, Point{2, 2}, Point{4, 0}, true},
		{"short of each other", Point{0, 0}, Point{1, 1}, Point{3, 0}, Point{2, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.p1, tt.q1, tt.p2, tt.q2); got != tt.want {
				t.Errorf("SegmentsIntersect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinesIntersect(t *testing.T) {
	if !LinesIntersect(Point{0, 0}, Point{4, 4}, Point{0, 4}, Point{4, 0}) {
		t.Error("crossing segments must intersect")
	}
	if LinesIntersect(Point{0, 0}, Point{4, 0}, Point{0, 1}, Point{4, 1}) {
		t.Error("parallel segments must not intersect")
	}
	if LinesIntersect(Point{0, 0}, Point{1, 1}, Point{0, 4}, Point{4, 0}) {
		t.Error("segment stops before the other")
	}
}

func TestLineIntersectsRect(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"crossing left edge", Point{-5, 5}, Point{5, 5}, true},
		{"crossing all", Point{-5, -5}, Point{15, 15}, true},
		{"inside", Point{2, 2}, Point{8, 8}, false},
		{"outside", Point{-5, -5}, Point{-1, 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineIntersectsRect(tt.a, tt.b, r); got != tt.want {
				t.Errorf("LineIntersectsRect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 2, 2)
	if !r.Contains(Point{0, 0}) || !r.Contains(Point{1, 1}) || r.Contains(Point{3, 1}) {
		t.Error("Contains mismatch")
	}
	if r.ContainsStrict(Point{0, 1}) || !r.ContainsStrict(Point{1, 1}) {
		t.Error("ContainsStrict mismatch")
	}
	if r.Contains(Point{math.NaN(), 1}) {
		t.Error("NaN is never inside")
	}
}
