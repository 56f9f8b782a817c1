package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFFileName is the name drawings are exported under as PDF.
const PDFFileName = "drawing.pdf"

const pdfImageName = "drawing"

// PDF writes img onto a single A4 page, scaled to fit inside the margins
// and centred. Landscape pages are used for images wider than tall.
func PDF(w io.Writer, img image.Image) error {
	var raster bytes.Buffer
	if err := PNG(&raster, img); err != nil {
		return err
	}

	b := img.Bounds()
	orientation := "P"
	if b.Dx() > b.Dy() {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetCreator("SketchBoard", true)
	p.SetTitle("Drawing", true)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(pdfImageName, opts, &raster)

	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	availW, availH := pageW-left-right, pageH-top-bottom

	scale := min(availW/float64(b.Dx()), availH/float64(b.Dy()))
	drawW, drawH := float64(b.Dx())*scale, float64(b.Dy())*scale
	x := left + (availW-drawW)/2
	y := top + (availH-drawH)/2
	p.ImageOptions(pdfImageName, x, y, drawW, drawH, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
