package surface

import (
	"image"
	"math"
)

// damagePadding widens every damaged area to cover anti-aliased edges.
const damagePadding = 2

// Damage accumulates the bounding box of everything drawn since it was last
// taken. Front ends use it to repaint only what changed.
type Damage struct {
	rect image.Rectangle
}

// Add merges r into the damaged area.
func (d *Damage) Add(r image.Rectangle) {
	if r.Empty() {
		return
	}
	d.rect = d.rect.Union(r)
}

// Rect returns the damaged area without resetting it.
func (d *Damage) Rect() image.Rectangle { return d.rect }

// Take returns the damaged area and resets it.
func (d *Damage) Take() image.Rectangle {
	r := d.rect
	d.rect = image.Rectangle{}
	return r
}

// boundsOf returns the padded integer box around the given points, grown by
// reach on every side.
func boundsOf(reach float32, pts ...Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(float64(minX-reach)))-damagePadding,
		int(math.Floor(float64(minY-reach)))-damagePadding,
		int(math.Ceil(float64(maxX+reach)))+damagePadding,
		int(math.Ceil(float64(maxY+reach)))+damagePadding,
	)
}
