// Package render paints a sticky circle frame onto an ebiten image.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/geom"
	"github.com/iburimskiy/sticky-circle/internal/sticky"
)

// Drawing entry points, replaced in tests.
var (
	drawFilledCircle = vector.DrawFilledCircle
	drawTriangles    = func(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, src *ebiten.Image, opts *ebiten.DrawTrianglesOptions) {
		dst.DrawTriangles(vs, is, src, opts)
	}
)

func newWhiteSubImage() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Painter draws Geometry snapshots. It keeps its vertex buffers between
// frames; use one Painter per goroutine.
type Painter struct {
	circle    color.RGBA
	indicator color.RGBA

	white *ebiten.Image
	vs    []ebiten.Vertex
	is    []uint16
}

// NewPainter returns a painter using the colors of cfg.
func NewPainter(cfg *config.Config) *Painter {
	p := &Painter{}
	p.SetColors(cfg)
	return p
}

// SetColors picks up the colors of cfg.
func (p *Painter) SetColors(cfg *config.Config) {
	p.circle, p.indicator, _ = cfg.Colors()
}

// Draw paints both circles, the blob between them and the indicator.
func (p *Painter) Draw(dst *ebiten.Image, g sticky.Geometry) {
	p.fillCircle(dst, g.Start)
	p.fillCircle(dst, g.End)
	if g.HasBlob {
		var path vector.Path
		g.Blob.Trace(pather{&path})
		p.fill(dst, &path, p.circle)
	}
	p.drawIndicator(dst, g.Indicator)
}

func (p *Painter) fillCircle(dst *ebiten.Image, c geom.Circle) {
	if c.Radius <= 0 {
		return
	}
	drawFilledCircle(dst, float32(c.Center.X), float32(c.Center.Y), float32(c.Radius), p.circle, true)
}

func (p *Painter) drawIndicator(dst *ebiten.Image, ind sticky.Indicator) {
	if ind.StrokeWidth <= 0 {
		return
	}
	opts := &vector.StrokeOptions{
		Width:    float32(ind.StrokeWidth),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	}
	if ind.HasArc && ind.Arc.Radius > 0 {
		var path vector.Path
		pather{&path}.arc(ind.Arc)
		p.stroke(dst, &path, opts, p.indicator)
	}
	if ind.HasArrow {
		var path vector.Path
		pt := pather{&path}
		pt.MoveTo(ind.Arrow[0])
		pt.LineTo(ind.Arrow[1])
		pt.LineTo(ind.Arrow[2])
		pt.Close()
		p.stroke(dst, &path, opts, p.indicator)
	}
}

func (p *Painter) fill(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	p.vs, p.is = path.AppendVerticesAndIndicesForFilling(p.vs[:0], p.is[:0])
	p.draw(dst, clr, &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero})
}

func (p *Painter) stroke(dst *ebiten.Image, path *vector.Path, opts *vector.StrokeOptions, clr color.RGBA) {
	p.vs, p.is = path.AppendVerticesAndIndicesForStroke(p.vs[:0], p.is[:0], opts)
	p.draw(dst, clr, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (p *Painter) draw(dst *ebiten.Image, clr color.RGBA, opts *ebiten.DrawTrianglesOptions) {
	if p.white == nil {
		p.white = newWhiteSubImage()
	}
	r, g, b, a := premultiplied(clr)
	for i := range p.vs {
		p.vs[i].SrcX = 1
		p.vs[i].SrcY = 1
		p.vs[i].ColorR = r
		p.vs[i].ColorG = g
		p.vs[i].ColorB = b
		p.vs[i].ColorA = a
	}
	drawTriangles(dst, p.vs, p.is, p.white, opts)
}

// premultiplied returns the vertex color scale for clr.
func premultiplied(clr color.RGBA) (r, g, b, a float32) {
	cr, cg, cb, ca := clr.RGBA()
	return float32(cr) / 0xffff, float32(cg) / 0xffff, float32(cb) / 0xffff, float32(ca) / 0xffff
}

// pather feeds geom path commands into a vector.Path.
type pather struct {
	p *vector.Path
}

func (a pather) MoveTo(pt geom.Point) { a.p.MoveTo(float32(pt.X), float32(pt.Y)) }
func (a pather) LineTo(pt geom.Point) { a.p.LineTo(float32(pt.X), float32(pt.Y)) }
func (a pather) Close()               { a.p.Close() }

func (a pather) QuadTo(ctrl, pt geom.Point) {
	a.p.QuadTo(float32(ctrl.X), float32(ctrl.Y), float32(pt.X), float32(pt.Y))
}

// arc starts a new subpath at the first point of a and follows it.
func (a pather) arc(arc geom.Arc) {
	a.MoveTo(arc.At(arc.Start))
	dir := vector.Clockwise
	if arc.Sweep < 0 {
		dir = vector.CounterClockwise
	}
	a.p.Arc(float32(arc.Center.X), float32(arc.Center.Y), float32(arc.Radius), float32(arc.Start), float32(arc.End()), dir)
}
