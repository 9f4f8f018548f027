package geom

// Blob is the outline joining two circles: two anchor points on each circle
// and two quadratic control points.
type Blob struct {
	StartA, StartB Point
	EndA, EndB     Point
	ControlO       Point
	ControlP       Point
}

// Pather receives path commands. Renderers adapt it to their own path type.
type Pather interface {
	MoveTo(p Point)
	LineTo(p Point)
	QuadTo(ctrl, p Point)
	Close()
}

// ComputeBlob returns the blob between start and end. It reports false when
// the centers coincide, since the axis between them is undefined.
func ComputeBlob(start, end Circle) (Blob, bool) {
	d := Distance(start.Center, end.Center)
	if d == 0 {
		return Blob{}, false
	}

	cos := (start.Center.X - end.Center.X) / d
	sin := (start.Center.Y - end.Center.Y) / d
	rs, re := start.Radius, end.Radius
	sx, sy := start.Center.X, start.Center.Y
	ex, ey := end.Center.X, end.Center.Y

	var b Blob
	b.StartA = Pt(sx-rs*sin, sy+rs*cos)
	b.StartB = Pt(sx+rs*sin, sy-rs*cos)
	b.EndA = Pt(ex-re*sin, ey+re*cos)
	b.EndB = Pt(ex+re*sin, ey-re*cos)

	half := d / 2
	b.ControlO = b.EndA.Add(Pt(cos, sin).Mul(half))
	b.ControlP = b.EndB.Add(Pt(cos, sin).Mul(half))
	return b, true
}

// Trace emits the closed outline:
// StartA, quad via ControlO to EndA, line to EndB, quad via ControlP to StartB.
func (b Blob) Trace(p Pather) {
	p.MoveTo(b.StartA)
	p.QuadTo(b.ControlO, b.EndA)
	p.LineTo(b.EndB)
	p.QuadTo(b.ControlP, b.StartB)
	p.Close()
}
