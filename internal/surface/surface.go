// Package surface holds the fixed-size raster a board draws on, the
// immutable snapshots taken of it, and the stroke primitives that paint it.
package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Point is a position in surface pixel coordinates, origin top-left.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Surface is a mutable RGBA pixel grid. It is not safe for concurrent use.
type Surface struct {
	img    *image.RGBA
	raster *vector.Rasterizer
	damage Damage
}

// New creates a width x height surface filled with bg.
// Sizes below one pixel are raised to one.
func New(width, height int, bg color.Color) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		raster: vector.NewRasterizer(width, height),
	}
	s.Fill(bg)
	return s
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds returns the surface rectangle, always anchored at the origin.
func (s *Surface) Bounds() image.Rectangle {
	return s.img.Rect
}

// Image returns the live pixel buffer. Callers must treat it as read-only;
// it changes as the surface is drawn on.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// At returns the pixel at (x, y), or transparent black outside the surface.
func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Fill overwrites every pixel with c.
func (s *Surface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	s.damage.Add(s.img.Rect)
}

// Snapshot captures a value copy of the full pixel buffer.
func (s *Surface) Snapshot() Snapshot {
	pix := make([]uint8, len(s.img.Pix))
	copy(pix, s.img.Pix)
	return Snapshot{rect: s.img.Rect, stride: s.img.Stride, pix: pix}
}

// Restore overwrites the whole surface with snap. A snapshot taken from a
// surface of a different size is ignored.
func (s *Surface) Restore(snap Snapshot) {
	if snap.rect != s.img.Rect || len(snap.pix) != len(s.img.Pix) {
		return
	}
	copy(s.img.Pix, snap.pix)
	s.damage.Add(s.img.Rect)
}

// Matches reports whether the surface currently holds exactly the pixels of snap.
func (s *Surface) Matches(snap Snapshot) bool {
	return snap.rect == s.img.Rect && string(snap.pix) == string(s.img.Pix)
}

// Damage returns the area touched since the previous call and resets it.
func (s *Surface) Damage() image.Rectangle {
	return s.damage.Take()
}
