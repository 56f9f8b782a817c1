package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: 90, A: 255})
		}
	}
	return img
}

func TestPNGIsLossless(t *testing.T) {
	img := testImage(24, 16)
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			want := img.RGBAAt(x, y)
			got := color.RGBAModel.Convert(decoded.At(x, y)).(color.RGBA)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPNGWrapsWriteError(t *testing.T) {
	err := PNG(failingWriter{}, testImage(4, 4))
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestPDF(t *testing.T) {
	for _, size := range []image.Point{{60, 30}, {30, 60}} {
		var buf bytes.Buffer
		if err := PDF(&buf, testImage(size.X, size.Y)); err != nil {
			t.Fatalf("PDF %v: %v", size, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("PDF %v: output does not start with a PDF header", size)
		}
		if !bytes.Contains(buf.Bytes(), []byte("/Subtype /Image")) {
			t.Errorf("PDF %v: no image object embedded", size)
		}
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	path, err := Save(dir, FileName, func(w io.Writer) error {
		return PNG(w, testImage(8, 8))
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "drawing.png") {
		t.Errorf("path = %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a PNG: %v", err)
	}
}

func TestSaveRemovesFileOnEncodeError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	_, err := Save(dir, FileName, func(w io.Writer) error {
		if _, err := w.Write([]byte("\x89PNG partial")); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if _, err := os.Stat(filepath.Join(dir, FileName)); !os.IsNotExist(err) {
		t.Errorf("partial file left behind: stat err = %v", err)
	}
}
