// Package export serializes a drawing surface to image and document files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
)

// FileName is the fixed name drawings are exported under.
const FileName = "drawing.png"

// PNG writes img as a lossless PNG image.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: write png: %w", err)
	}
	return nil
}

// Save creates dir/name and fills it with encode. An empty dir means the
// working directory. It returns the path written. A file encode fails on is
// removed.
func Save(dir, name string, encode func(io.Writer) error) (path string, err error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create %s: %w", dir, err)
	}
	path = filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
	}()

	if err := encode(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	log.Printf("[EXPORT] wrote %s", path)
	return path, nil
}
