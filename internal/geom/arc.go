package geom

import "math"

// Arc is a circular arc in screen coordinates (y down). Angles are radians,
// 0 points right and positive sweeps run clockwise on screen.
type Arc struct {
	Center Point
	Radius float64
	Start  float64
	Sweep  float64
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return math.Abs(a.Radius * a.Sweep)
}

// End returns the end angle.
func (a Arc) End() float64 {
	return a.Start + a.Sweep
}

// At returns the point at angle.
func (a Arc) At(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Pt(a.Center.X+a.Radius*cos, a.Center.Y+a.Radius*sin)
}

// angleAt maps a distance along the arc to its angle.
func (a Arc) angleAt(dist float64) float64 {
	l := a.Length()
	if l == 0 {
		return a.Start
	}
	return a.Start + a.Sweep*dist/l
}

// PosTan returns the position and the unit tangent at dist along the arc.
// dist is clamped to [0, Length].
func (a Arc) PosTan(dist float64) (pos, tan Point) {
	dist = math.Max(0, math.Min(dist, a.Length()))
	angle := a.angleAt(dist)
	sin, cos := math.Sincos(angle)
	tan = Pt(-sin, cos)
	if a.Sweep < 0 {
		tan = tan.Mul(-1)
	}
	return a.At(angle), tan
}

// Segment returns the part of the arc between startDist and stopDist.
// Distances are clamped to the arc; an empty range reports false.
func (a Arc) Segment(startDist, stopDist float64) (Arc, bool) {
	l := a.Length()
	startDist = math.Max(startDist, 0)
	stopDist = math.Min(stopDist, l)
	if startDist >= stopDist || l == 0 {
		return Arc{}, false
	}
	a0 := a.angleAt(startDist)
	a1 := a.angleAt(stopDist)
	return Arc{Center: a.Center, Radius: a.Radius, Start: a0, Sweep: a1 - a0}, true
}

// ArrowHead returns the three points of the arrow drawn at pos, pointing
// along tan. size is the half width of the head.
func ArrowHead(pos, tan Point, size float64) [3]Point {
	angle := math.Atan2(tan.Y, tan.X) + math.Pi/2
	tri := [3]Point{
		Pt(-size, size),
		Pt(0, 0),
		Pt(size, size),
	}
	for i, p := range tri {
		tri[i] = pos.Add(p.Rotate(angle))
	}
	return tri
}

// Similarity is a uniform scale and rotation about the origin followed by a
// translation to Origin.
type Similarity struct {
	Origin   Point
	Scale    float64
	Rotation float64
}

// Apply maps p from local to world coordinates.
func (s Similarity) Apply(p Point) Point {
	return s.Origin.Add(p.Rotate(s.Rotation).Mul(s.Scale))
}

// Arc maps a local arc centered anywhere to world coordinates. A negative
// scale is a half turn, so the radius stays positive.
func (s Similarity) Arc(a Arc) Arc {
	out := Arc{
		Center: s.Apply(a.Center),
		Radius: a.Radius * math.Abs(s.Scale),
		Start:  a.Start + s.Rotation,
		Sweep:  a.Sweep,
	}
	if s.Scale < 0 {
		out.Start += math.Pi
	}
	return out
}
