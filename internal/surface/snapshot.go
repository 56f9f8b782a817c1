package surface

import (
	"bytes"
	"image"
	"image/color"
)

// Snapshot is an immutable copy of a surface's pixels. The zero value holds
// no pixels.
type Snapshot struct {
	rect   image.Rectangle
	stride int
	pix    []uint8
}

func (s Snapshot) Bounds() image.Rectangle { return s.rect }

// IsZero reports whether the snapshot holds no pixels.
func (s Snapshot) IsZero() bool { return len(s.pix) == 0 }

// At returns the captured pixel at (x, y).
func (s Snapshot) At(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(s.rect)) {
		return color.RGBA{}
	}
	i := (y-s.rect.Min.Y)*s.stride + (x-s.rect.Min.X)*4
	return color.RGBA{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}
}

// Equal reports whether both snapshots hold identical pixels.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.rect == o.rect && bytes.Equal(s.pix, o.pix)
}

// Image returns an independent RGBA copy of the snapshot.
func (s Snapshot) Image() *image.RGBA {
	img := image.NewRGBA(s.rect)
	copy(img.Pix, s.pix)
	return img
}

// Size returns the number of bytes held by the snapshot.
func (s Snapshot) Size() int { return len(s.pix) }
