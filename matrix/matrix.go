// Package matrix provides the rectangular pixel grid that a JABCode
// decoder operates on: one colored module per lattice cell, already
// extracted and perspective-rectified by an external detector stage.
package matrix

import "fmt"

// RGB is one module's measured color sample.
type RGB struct {
	R, G, B byte
}

// Diff returns the per-channel chromatic-structure triple (|r-g|, |r-b|,
// |g-b|) used by the hard-decision tie-break rule.
func (c RGB) Diff() (rg, rb, gb int) {
	return absInt(int(c.R)-int(c.G)), absInt(int(c.R)-int(c.B)), absInt(int(c.G)-int(c.B))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Matrix is a width x height grid of modules, each bearing an RGB sample.
// BitsPerPixel is 24 (packed RGB) or 32 (RGB + unused/alpha byte); Pixels is
// the row-major pixel buffer with stride BytesPerPixel().
type Matrix struct {
	Width        int
	Height       int
	BitsPerPixel int
	Pixels       []byte
}

// New allocates a zero-filled matrix of the given size and bit depth.
func New(width, height, bitsPerPixel int) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("matrix: invalid size %dx%d", width, height)
	}
	if bitsPerPixel != 24 && bitsPerPixel != 32 {
		return nil, fmt.Errorf("matrix: unsupported bits_per_pixel %d", bitsPerPixel)
	}
	bpp := bitsPerPixel / 8
	return &Matrix{
		Width:        width,
		Height:       height,
		BitsPerPixel: bitsPerPixel,
		Pixels:       make([]byte, width*height*bpp),
	}, nil
}

// BytesPerPixel returns the per-module stride in bytes.
func (m *Matrix) BytesPerPixel() int {
	return m.BitsPerPixel / 8
}

// BytesPerRow returns the row stride in bytes.
func (m *Matrix) BytesPerRow() int {
	return m.Width * m.BytesPerPixel()
}

// offset returns the byte offset of module (x, y) in Pixels.
func (m *Matrix) offset(x, y int) int {
	return y*m.BytesPerRow() + x*m.BytesPerPixel()
}

// At returns the RGB sample for module (x, y). Callers are expected to
// keep (x, y) within bounds; the decoder's hop sequences are derived from
// the matrix's own dimensions so this never ranges outside the buffer in
// practice, but out-of-range reads return the zero sample rather than
// panicking so a malformed geometry table degrades gracefully.
func (m *Matrix) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return RGB{}
	}
	off := m.offset(x, y)
	return RGB{m.Pixels[off], m.Pixels[off+1], m.Pixels[off+2]}
}

// Set writes the RGB sample for module (x, y). Used by tests and by the
// CLI's image-to-matrix adapter.
func (m *Matrix) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	off := m.offset(x, y)
	m.Pixels[off] = c.R
	m.Pixels[off+1] = c.G
	m.Pixels[off+2] = c.B
}
