package term

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// upperHalf paints the top half of a cell in the foreground color and the
// bottom half in the background color, giving two square pixels per cell.
const upperHalf = '▀'

// view keeps a cell-resolution copy of the surface: one pixel per column
// and two per row.
type view struct {
	scale int
	small *image.RGBA
}

func newView(surfaceW, surfaceH, scale int) *view {
	cols := (surfaceW + scale - 1) / scale
	halfRows := (surfaceH + scale - 1) / scale
	return &view{scale: scale, small: image.NewRGBA(image.Rect(0, 0, cols, halfRows))}
}

// cells returns the screen area the view occupies.
func (v *view) cells() (int, int) {
	b := v.small.Bounds()
	return b.Dx(), (b.Dy() + 1) / 2
}

// update resamples the part of src inside damage and returns the dirty area
// in cells.
func (v *view) update(src *image.RGBA, damage image.Rectangle) image.Rectangle {
	damage = damage.Intersect(src.Bounds())
	if damage.Empty() {
		return image.Rectangle{}
	}
	s := v.scale
	dst := image.Rect(damage.Min.X/s, damage.Min.Y/s, (damage.Max.X+s-1)/s, (damage.Max.Y+s-1)/s).
		Intersect(v.small.Bounds())
	from := image.Rect(dst.Min.X*s, dst.Min.Y*s, dst.Max.X*s, dst.Max.Y*s).Intersect(src.Bounds())
	xdraw.ApproxBiLinear.Scale(v.small, dst, src, from, xdraw.Src, nil)
	return image.Rect(dst.Min.X, dst.Min.Y/2, dst.Max.X, (dst.Max.Y+1)/2)
}

// paint writes the cells in area to screen.
func (v *view) paint(screen tcell.Screen, area image.Rectangle) {
	cols, rows := v.cells()
	area = area.Intersect(image.Rect(0, 0, cols, rows))
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			top := v.small.RGBAAt(x, 2*y)
			bottom := v.small.RGBAAt(x, 2*y+1)
			if 2*y+1 >= v.small.Bounds().Max.Y {
				bottom = top
			}
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
