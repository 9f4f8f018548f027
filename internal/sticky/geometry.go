package sticky

import (
	"math"

	"github.com/iburimskiy/sticky-circle/internal/geom"
)

// Geometry is everything a renderer needs for one frame.
type Geometry struct {
	State State
	Start geom.Circle
	End   geom.Circle
	Scale float64

	Blob    geom.Blob
	HasBlob bool

	LoadValue float64
	Loading   bool

	Indicator Indicator
}

// Indicator is the arc drawn inside the anchor circle. While idle it is a
// fixed arc with an arrow head that shrinks and turns with the drag; while
// the loading animation runs it is a moving window without the arrow.
type Indicator struct {
	Arc    geom.Arc
	HasArc bool

	Arrow    [3]geom.Point
	HasArrow bool

	StrokeWidth float64
	Spinning    bool
}

// Geometry returns the current frame snapshot. It has no side effects.
func (v *View) Geometry() Geometry {
	g := Geometry{
		State:     v.state,
		Start:     v.pair.Start,
		End:       v.pair.End,
		Scale:     v.pair.Scale,
		LoadValue: v.loading.Value(),
		Loading:   v.IsLoading(),
	}
	g.Blob, g.HasBlob = geom.ComputeBlob(g.Start, g.End)
	g.Indicator = v.indicator()
	return g
}

func (v *View) indicator() Indicator {
	cfg := v.cfg
	scale := v.pair.Scale
	local := geom.Arc{
		Radius: cfg.Radius - cfg.Padding,
		Sweep:  cfg.ArcSweepDegrees * math.Pi / 180,
	}
	length := local.Length()
	shrink := 1 - scale

	ind := Indicator{StrokeWidth: cfg.StrokeWidth * math.Abs(shrink)}

	if v.loading.IsRunning() {
		value := v.loading.Value()
		xf := geom.Similarity{Origin: v.pair.Start.Center, Scale: shrink}
		stop := length * value
		start := stop - (0.5-math.Abs(value-0.5))*cfg.LoadingSweep
		if seg, ok := local.Segment(start, stop); ok {
			ind.Arc, ind.HasArc = xf.Arc(seg), true
		}
		ind.Spinning = true
		return ind
	}

	xf := geom.Similarity{
		Origin:   v.pair.Start.Center,
		Scale:    shrink,
		Rotation: 2 * math.Pi * scale,
	}
	stop := length * cfg.IdleArcFraction
	if seg, ok := local.Segment(0, stop); ok {
		ind.Arc, ind.HasArc = xf.Arc(seg), true
	}
	pos, tan := local.PosTan(stop)
	for i, p := range geom.ArrowHead(pos, tan, cfg.ArrowSize) {
		ind.Arrow[i] = xf.Apply(p)
	}
	ind.HasArrow = true
	return ind
}
