package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Segment paints a round-capped line of the given width from a to b.
// When a and b coincide it paints a round dot.
func (s *Surface) Segment(a, b Point, width float32, c color.Color) {
	r := halfWidth(width)
	z := s.begin()
	capsule(z, a, b, float64(r))
	s.paint(c, boundsOf(r, a, b))
}

// Dot paints a filled disc of diameter width centred on p.
func (s *Surface) Dot(p Point, width float32, c color.Color) {
	s.Segment(p, p, width, c)
}

// Rect paints the outline of the axis-aligned rectangle whose opposite
// corners are a and b, in any order. The outline is centred on the edges.
func (s *Surface) Rect(a, b Point, width float32, c color.Color) {
	h := halfWidth(width)
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)

	z := s.begin()
	box(z, x0-h, y0-h, x1+h, y1+h, false)
	if x1-x0 > 2*h && y1-y0 > 2*h {
		box(z, x0+h, y0+h, x1-h, y1-h, true)
	}
	s.paint(c, boundsOf(h, Pt(x0, y0), Pt(x1, y1)))
}

// Circle paints a ring of the given width centred on center with the
// given radius.
func (s *Surface) Circle(center Point, radius, width float32, c color.Color) {
	h := halfWidth(width)
	if radius < 0 {
		radius = -radius
	}
	z := s.begin()
	ring(z, center, float64(radius+h), 1)
	if inner := radius - h; inner > 0 {
		ring(z, center, float64(inner), -1)
	}
	s.paint(c, boundsOf(radius+h, center))
}

func halfWidth(width float32) float32 {
	if width < 1 {
		width = 1
	}
	return width / 2
}

func (s *Surface) begin() *vector.Rasterizer {
	s.raster.Reset(s.img.Rect.Dx(), s.img.Rect.Dy())
	s.raster.DrawOp = draw.Over
	return s.raster
}

func (s *Surface) paint(c color.Color, touched image.Rectangle) {
	s.raster.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{})
	s.damage.Add(touched.Intersect(s.img.Rect))
}

// capsule adds the outline of a segment with round caps of radius r.
func capsule(z *vector.Rasterizer, a, b Point, r float64) {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l < 1e-6 {
		ring(z, a, r, 1)
		return
	}
	nx, ny := -dy/l*r, dx/l*r
	an := math.Atan2(ny, nx)

	z.MoveTo(f32(ax+nx), f32(ay+ny))
	z.LineTo(f32(bx+nx), f32(by+ny))
	arc(z, bx, by, r, an, -math.Pi)
	z.LineTo(f32(ax-nx), f32(ay-ny))
	arc(z, ax, ay, r, an-math.Pi, -math.Pi)
	z.ClosePath()
}

// box adds a closed rectangle. Reversed boxes wind the other way so they
// punch holes in a box added before them.
func box(z *vector.Rasterizer, x0, y0, x1, y1 float32, reversed bool) {
	z.MoveTo(x0, y0)
	if reversed {
		z.LineTo(x0, y1)
		z.LineTo(x1, y1)
		z.LineTo(x1, y0)
	} else {
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
	}
	z.ClosePath()
}

// ring adds a full circle. dir is 1 or -1 and selects the winding.
func ring(z *vector.Rasterizer, c Point, r float64, dir float64) {
	cx, cy := float64(c.X), float64(c.Y)
	z.MoveTo(f32(cx+r), f32(cy))
	arc(z, cx, cy, r, 0, dir*2*math.Pi)
	z.ClosePath()
}

// arc continues the current path along a circular arc, approximated by one
// cubic Bézier per quarter turn or less. The pen must already sit on the
// arc's start point.
func arc(z *vector.Rasterizer, cx, cy, r, start, sweep float64) {
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	a0 := start
	for i := 0; i < n; i++ {
		a1 := a0 + step
		c0, s0 := math.Cos(a0), math.Sin(a0)
		c1, s1 := math.Cos(a1), math.Sin(a1)
		z.CubeTo(
			f32(cx+r*(c0-k*s0)), f32(cy+r*(s0+k*c0)),
			f32(cx+r*(c1+k*s1)), f32(cy+r*(s1-k*c1)),
			f32(cx+r*c1), f32(cy+r*s1),
		)
		a0 = a1
	}
}

func f32(v float64) float32 { return float32(v) }
