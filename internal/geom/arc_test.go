package geom

import (
	"math"
	"testing"
)

func indicatorArc() Arc {
	return Arc{Radius: 30, Sweep: 359.9 * math.Pi / 180}
}

func TestArcLength(t *testing.T) {
	a := Arc{Radius: 30, Sweep: math.Pi}
	if !near(a.Length(), 30*math.Pi) {
		t.Fatalf("length = %v", a.Length())
	}
	a.Sweep = -math.Pi
	if !near(a.Length(), 30*math.Pi) {
		t.Fatalf("negative sweep length = %v", a.Length())
	}
}

func TestArcSegment_Clamps(t *testing.T) {
	a := indicatorArc()
	l := a.Length()

	tests := []struct {
		name        string
		start, stop float64
		ok          bool
		from, to    float64
	}{
		{"full", 0, l, true, 0, a.Sweep},
		{"three quarters", 0, 0.75 * l, true, 0, 0.75 * a.Sweep},
		{"negative start", -40, l / 2, true, 0, a.Sweep / 2},
		{"stop past end", l / 2, l + 100, true, a.Sweep / 2, a.Sweep},
		{"empty", 10, 10, false, 0, 0},
		{"reversed", 20, 10, false, 0, 0},
		{"entirely before start", -50, -10, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg, ok := a.Segment(tt.start, tt.stop)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if !near(seg.Start, tt.from) || !near(seg.End(), tt.to) {
				t.Errorf("segment = [%v, %v], want [%v, %v]", seg.Start, seg.End(), tt.from, tt.to)
			}
			if seg.Radius != a.Radius || seg.Center != a.Center {
				t.Errorf("segment moved off the arc: %+v", seg)
			}
		})
	}
}

func TestArcPosTan(t *testing.T) {
	a := Arc{Center: Pt(5, 5), Radius: 10, Sweep: 2 * math.Pi}
	pos, tan := a.PosTan(a.Length() / 4)
	// a quarter turn clockwise on screen lands straight below the center.
	if !nearPt(pos, Pt(5, 15)) {
		t.Errorf("pos = %v, want (5, 15)", pos)
	}
	if !nearPt(tan, Pt(-1, 0)) {
		t.Errorf("tan = %v, want (-1, 0)", tan)
	}

	pos, _ = a.PosTan(-3)
	if !nearPt(pos, Pt(15, 5)) {
		t.Errorf("clamped pos = %v, want (15, 5)", pos)
	}
}

func TestArrowHead_ApexAtPosition(t *testing.T) {
	pos := Pt(12, -3)
	tri := ArrowHead(pos, Pt(0, 1), 5)
	if tri[1] != pos {
		t.Fatalf("apex = %v, want %v", tri[1], pos)
	}
	// tangent pointing down: the head is rotated a half turn, so its base
	// sits above the apex.
	for _, p := range []Point{tri[0], tri[2]} {
		if !near(p.Y, pos.Y-5) {
			t.Errorf("base point %v, want y = %v", p, pos.Y-5)
		}
		if !near(Distance(p, pos), 5*math.Sqrt2) {
			t.Errorf("base point %v too far from apex", p)
		}
	}
}

func TestSimilarity(t *testing.T) {
	s := Similarity{Origin: Pt(100, 100), Scale: 0.5, Rotation: math.Pi / 2}
	if got := s.Apply(Pt(10, 0)); !nearPt(got, Pt(100, 105)) {
		t.Errorf("Apply = %v, want (100, 105)", got)
	}

	arc := s.Arc(Arc{Radius: 30, Start: 0, Sweep: math.Pi})
	if !nearPt(arc.Center, Pt(100, 100)) || !near(arc.Radius, 15) || !near(arc.Start, math.Pi/2) {
		t.Errorf("Arc = %+v", arc)
	}

	neg := Similarity{Scale: -0.5}
	arc = neg.Arc(Arc{Radius: 30, Sweep: math.Pi})
	if !near(arc.Radius, 15) || !near(arc.Start, math.Pi) {
		t.Errorf("negative scale Arc = %+v", arc)
	}
	// the arc start still matches the mapped local start point.
	if got, want := arc.At(arc.Start), neg.Apply(Pt(30, 0)); !nearPt(got, want) {
		t.Errorf("start point %v, want %v", got, want)
	}
}
