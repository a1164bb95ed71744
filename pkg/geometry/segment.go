package geometry

import "math"

// PointSegmentDistance returns the shortest distance from point p to the
// segment a-b.
func PointSegmentDistance(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}

	// Project p onto the segment, clamped to [0, 1]
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := Point2D{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest)
}

// SegmentDistance returns the shortest distance between segments a0-a1 and b0-b1.
// Intersecting segments have distance zero.
func SegmentDistance(a0, a1, b0, b1 Point2D) float64 {
	if segmentsIntersect(a0, a1, b0, b1) {
		return 0
	}
	d := PointSegmentDistance(a0, b0, b1)
	d = math.Min(d, PointSegmentDistance(a1, b0, b1))
	d = math.Min(d, PointSegmentDistance(b0, a0, a1))
	d = math.Min(d, PointSegmentDistance(b1, a0, a1))
	return d
}

// SegmentMidpoint returns the midpoint of segment a-b.
func SegmentMidpoint(a, b Point2D) Point2D {
	return Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func segmentsIntersect(a0, a1, b0, b1 Point2D) bool {
	d1 := cross(b0, b1, a0)
	d2 := cross(b0, b1, a1)
	d3 := cross(a0, a1, b0)
	d4 := cross(a0, a1, b1)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear touching cases
	if d1 == 0 && onSegment(b0, b1, a0) {
		return true
	}
	if d2 == 0 && onSegment(b0, b1, a1) {
		return true
	}
	if d3 == 0 && onSegment(a0, a1, b0) {
		return true
	}
	if d4 == 0 && onSegment(a0, a1, b1) {
		return true
	}
	return false
}

// cross returns the z component of (b-a) x (p-a).
func cross(a, b, p Point2D) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func onSegment(a, b, p Point2D) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
