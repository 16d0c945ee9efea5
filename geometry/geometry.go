// Package geometry holds small 2D helpers for points, circles, rectangles and segments.
package geometry

import "math"

type Point struct {
	X, Y float64
}

// Rect is axis aligned, Min holding the smaller coordinates.
type Rect struct {
	Min, Max Point
}

func NewRect(x, y, width, height float64) Rect {
	return Rect{Min: Point{x, y}, Max: Point{x + width, y + height}}
}

// Contains reports whether p is inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X && r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

// ContainsStrict reports whether p is inside r, edges excluded.
func (r Rect) ContainsStrict(p Point) bool {
	return r.Min.X < p.X && p.X < r.Max.X && r.Min.Y < p.Y && p.Y < r.Max.Y
}

func Distance(a, b Point) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared skips the square root, for comparisons.
func DistanceSquared(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// RectsIntersect reports whether a and b overlap, touching edges included.
func RectsIntersect(a, b Rect) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X && a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

// CirclesIntersect reports whether the circles overlap, touching included.
func CirclesIntersect(c1 Point, r1 float64, c2 Point, r2 float64) bool {
	return (r1+r2)*(r1+r2) >= DistanceSquared(c1, c2)
}

type Orient int

const (
	Collinear Orient = iota
	Clockwise
	CounterClockwise
)

func (o Orient) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "unknown"
}

// Orientation of the ordered triplet (p, q, r), with y growing upward.
func Orientation(p, q, r Point) Orient {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case v == 0:
		return Collinear
	case v > 0:
		return Clockwise
	}
	return CounterClockwise
}

// OnSegment reports whether q lies within the bounding box of segment pr. Meant for collinear q.
func OnSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// SegmentsIntersect reports whether segments p1q1 and p2q2 share a point, collinear overlaps included.
func SegmentsIntersect(p1, q1, p2, q2 Point) bool {
	o1 := Orientation(p1, q1, p2)
	o2 := Orientation(p1, q1, q2)
	o3 := Orientation(p2, q2, p1)
	o4 := Orientation(p2, q2, q1)
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == Collinear && OnSegment(p1, p2, q1)) ||
		(o2 == Collinear && OnSegment(p1, q2, q1)) ||
		(o3 == Collinear && OnSegment(p2, p1, q2)) ||
		(o4 == Collinear && OnSegment(p2, q1, q2))
}

// LinesIntersect is the parametric test for segments ab and cd. Parallel segments never intersect here.
func LinesIntersect(a, b, c, d Point) bool {
	den := (d.Y-c.Y)*(b.X-a.X) - (d.X-c.X)*(b.Y-a.Y)
	if den == 0 {
		return false
	}
	ua := ((d.X-c.X)*(a.Y-c.Y) - (d.Y-c.Y)*(a.X-c.X)) / den
	ub := ((b.X-a.X)*(a.Y-c.Y) - (b.Y-a.Y)*(a.X-c.X)) / den
	return ua >= 0 && ua <= 1 && ub >= 0 && ub <= 1
}

// LineIntersectsRect reports whether segment ab crosses any edge of r. A segment fully inside r does not.
func LineIntersectsRect(a, b Point, r Rect) bool {
	topLeft, topRight := r.Min, Point{r.Max.X, r.Min.Y}
	bottomLeft, bottomRight := Point{r.Min.X, r.Max.Y}, r.Max
	return LinesIntersect(a, b, topLeft, bottomLeft) ||
		LinesIntersect(a, b, topRight, bottomRight) ||
		LinesIntersect(a, b, topLeft, topRight) ||
		LinesIntersect(a, b, bottomLeft, bottomRight)
}
