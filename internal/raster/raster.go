// Package raster renders sticky circle frames off screen with gg.
package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/pkg/errors"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/geom"
	"github.com/iburimskiy/sticky-circle/internal/sticky"
)

// Renderer draws Geometry snapshots into fixed size images.
type Renderer struct {
	width, height int

	circle     color.RGBA
	indicator  color.RGBA
	background color.RGBA
}

// New returns a renderer for width x height frames in the colors of cfg.
func New(cfg *config.Config, width, height int) *Renderer {
	r := &Renderer{width: width, height: height}
	r.SetColors(cfg)
	return r
}

// SetColors picks up the colors of cfg.
func (r *Renderer) SetColors(cfg *config.Config) {
	r.circle, r.indicator, r.background = cfg.Colors()
}

// Render paints one frame.
func (r *Renderer) Render(g sticky.Geometry) (*image.RGBA, error) {
	dc := gg.NewContext(r.width, r.height)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(r.background))
	if err := r.draw(dc, g); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, errors.Wrap(err, "flush")
	}
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New("unexpected image type")
	}
	return img, nil
}

// RenderFile paints one frame into a PNG file.
func (r *Renderer) RenderFile(g sticky.Geometry, path string) error {
	dc := gg.NewContext(r.width, r.height)
	defer dc.Close()

	dc.ClearWithColor(gg.FromColor(r.background))
	if err := r.draw(dc, g); err != nil {
		return err
	}
	return errors.Wrapf(dc.SavePNG(path), "save %s", path)
}

func (r *Renderer) draw(dc *gg.Context, g sticky.Geometry) error {
	dc.SetColor(r.circle)
	for _, c := range []geom.Circle{g.Start, g.End} {
		if c.Radius <= 0 {
			continue
		}
		dc.DrawCircle(c.Center.X, c.Center.Y, c.Radius)
		if err := dc.Fill(); err != nil {
			return errors.Wrap(err, "fill circle")
		}
	}
	if g.HasBlob {
		g.Blob.Trace(pather{dc})
		if err := dc.Fill(); err != nil {
			return errors.Wrap(err, "fill blob")
		}
	}

	ind := g.Indicator
	if ind.StrokeWidth <= 0 {
		return nil
	}
	dc.SetColor(r.indicator)
	dc.SetLineWidth(ind.StrokeWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	if ind.HasArc && ind.Arc.Radius > 0 {
		a := ind.Arc
		from, to := a.Start, a.End()
		if to < from {
			from, to = to, from
		}
		dc.DrawArc(a.Center.X, a.Center.Y, a.Radius, from, to)
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(err, "stroke arc")
		}
	}
	if ind.HasArrow {
		p := pather{dc}
		p.MoveTo(ind.Arrow[0])
		p.LineTo(ind.Arrow[1])
		p.LineTo(ind.Arrow[2])
		p.Close()
		if err := dc.Stroke(); err != nil {
			return errors.Wrap(err, "stroke arrow")
		}
	}
	return nil
}

type pather struct {
	dc *gg.Context
}

func (p pather) MoveTo(pt geom.Point)       { p.dc.MoveTo(pt.X, pt.Y) }
func (p pather) LineTo(pt geom.Point)       { p.dc.LineTo(pt.X, pt.Y) }
func (p pather) QuadTo(ctrl, pt geom.Point) { p.dc.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y) }
func (p pather) Close()                     { p.dc.ClosePath() }
