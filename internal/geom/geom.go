// Package geom holds the pure geometry of the sticky circle: circle sizing
// from a drag, the bezier blob joining two circles, and the indicator arc.
package geom

import "math"

// Point is a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Rotate returns p rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}

// Circle is a center and a radius. The radius may go negative when a drag
// runs past the maximum distance; renderers decide how to show that.
type Circle struct {
	Center Point
	Radius float64
}

// Drag is the pair of pointer positions of one gesture.
type Drag struct {
	Down Point
	Move Point
}

// Distance returns the length of the drag.
func (d Drag) Distance() float64 {
	return Distance(d.Down, d.Move)
}

// Offset returns the raw pointer offset from the down point.
func (d Drag) Offset() Point {
	return d.Move.Sub(d.Down)
}

// Pair is the anchor circle, the drag circle and the scale that produced them.
type Pair struct {
	Start Circle
	End   Circle
	Scale float64
}

// UpdateCircleSizes resizes the pair for the given drag.
//
// A drag of zero length leaves prev untouched. Otherwise scale is
// distance/maxDistance, unclamped: past maxDistance the anchor radius
// becomes negative.
func UpdateCircleSizes(prev Pair, drag Drag, maxDistance, baseRadius float64) Pair {
	d := drag.Distance()
	if d <= 0 {
		return prev
	}
	scale := d / maxDistance
	next := prev
	next.Scale = scale
	next.Start.Radius = baseRadius * (1 - scale)
	next.End.Radius = baseRadius * scale
	next.End.Center = prev.Start.Center.Add(drag.Offset())
	return next
}
