// Package metadata scans and decodes the LDPC-protected metadata blocks
// carried by master and slave JABCode symbols: symbol version, color
// count, mask type, error-correction parameters and docking position.
package metadata

import (
	"fmt"

	"github.com/fournarakis/jabcode/colormodel"
	"github.com/fournarakis/jabcode/matrix"
)

// Metadata is the parsed content of a symbol's metadata block (spec §3).
type Metadata struct {
	Nc             int
	VF             int
	SideVersion    struct{ X, Y int }
	MaskType       int
	ECL            struct{ WC, WR int }
	DockedPosition uint8
}

// Status is the harmonized metadata-decode outcome for both master and
// slave symbols: +1 success, 0 a version/size mismatch, -1 a recoverable
// decode failure (bad LDPC, bad error-correction parameters), -2 a fatal
// error. The reference implementation signals the slave path's
// error-correction-parameter check with a plain boolean while the master
// path uses this four-way code; both paths here report through the same
// Status so callers never need two different failure contracts.
type Status int

const (
	StatusSuccess         Status = 1
	StatusVersionMismatch Status = 0
	StatusDecodeFailure   Status = -1
	StatusFatal           Status = -2
)

// colorNumberForMetadata caps the color count used while decoding the
// metadata block itself at 8: metadata is always protected at a level
// anyone can read regardless of the symbol's full palette size.
func colorNumberForMetadata(colorNumber int) int {
	if colorNumber > 8 {
		return 8
	}
	return colorNumber
}

// metadataLDPCParams picks the (wc, wr) a metadata part of the given
// length is protected with: wc follows the reference's length-dependent
// split (4 above 36 bits, 3 otherwise), wr is the largest divisor of
// bitLength that still leaves room for a regular code, falling back to a
// single check row spanning the whole part when no smaller divisor fits -
// every metadata part length therefore has a valid, deterministic matrix.
func metadataLDPCParams(bitLength int) (wc, wr int) {
	wc = 3
	if bitLength > 36 {
		wc = 4
	}
	for cand := 10; cand > wc; cand-- {
		if bitLength%cand == 0 {
			return wc, cand
		}
	}
	return wc, bitLength
}

// reconstructPalette turns up to 64 raw-sampled palette entries into the
// symbol's full colorNumber-entry palette: colors up to 8 are read
// directly off the matrix and need no further work; 16/32/64-color
// palettes undo the encoder's color-distance interleaving; 128/256-color
// palettes are synthesized from a 64-color base by tri-linear block
// interpolation (spec §4.2, decoder.c deinterleavePalette /
// interpolatePalette). raw must carry at least min(colorNumber, 64)
// entries.
func reconstructPalette(raw []matrix.RGB, colorNumber int) ([]matrix.RGB, error) {
	if colorNumber <= 8 {
		if len(raw) < colorNumber {
			return nil, fmt.Errorf("metadata: only %d raw samples for %d colors", len(raw), colorNumber)
		}
		return raw[:colorNumber], nil
	}

	toRaw := func(samples []matrix.RGB) colormodel.RawPalette {
		buf := make(colormodel.RawPalette, len(samples)*3)
		for i, c := range samples {
			buf[i*3], buf[i*3+1], buf[i*3+2] = c.R, c.G, c.B
		}
		return buf
	}

	switch colorNumber {
	case 16, 32, 64:
		if len(raw) < colorNumber {
			return nil, fmt.Errorf("metadata: only %d raw samples for %d colors", len(raw), colorNumber)
		}
		samples := toRaw(raw[:colorNumber])
		buf := make(colormodel.RawPalette, colorNumber*3*2)
		copy(buf, samples)
		copy(buf[colorNumber*3:], samples)
		if err := colormodel.DeinterleavePalette(buf, colorNumber, colorNumber); err != nil {
			return nil, err
		}
		return buf[:colorNumber*3].ToRGB(colorNumber), nil

	case 128, 256:
		if len(raw) < 64 {
			return nil, fmt.Errorf("metadata: only %d raw samples, need 64 for a %d-color palette", len(raw), colorNumber)
		}
		base := toRaw(raw[:64])
		baseBuf := make(colormodel.RawPalette, 64*3*2)
		copy(baseBuf, base)
		copy(baseBuf[64*3:], base)
		if err := colormodel.DeinterleavePalette(baseBuf, 64, 64); err != nil {
			return nil, err
		}
		full := make(colormodel.RawPalette, colorNumber*3*2)
		copy(full[:64*3], baseBuf[:64*3])
		copy(full[colorNumber*3:colorNumber*3+64*3], baseBuf[:64*3])
		if err := colormodel.InterpolatePalette(full, colorNumber); err != nil {
			return nil, err
		}
		return full[:colorNumber*3].ToRGB(colorNumber), nil

	default:
		return nil, fmt.Errorf("metadata: unsupported color count %d", colorNumber)
	}
}

// bitsToInt packs a big-endian run of bits into an integer.
func bitsToInt(bits []byte) int {
	v := 0
	for _, b := range bits {
		v = (v << 1) | int(b)
	}
	return v
}

func rgbAt(m *matrix.Matrix, x, y int) matrix.RGB {
	return m.At(x, y)
}
