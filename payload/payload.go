// Package payload implements the final stage of the decoding pipeline:
// gathering the modules a symbol's data map marks as payload, reversing
// masking and bit deinterleaving, and handing the result to the LDPC
// block decoder to recover the symbol's net information bits.
package payload

import (
	"fmt"

	"github.com/fournarakis/jabcode/colormodel"
	"github.com/fournarakis/jabcode/interleave"
	"github.com/fournarakis/jabcode/ldpc"
	"github.com/fournarakis/jabcode/mask"
	"github.com/fournarakis/jabcode/matrix"
)

// Params bundles everything payload decoding needs beyond the matrix and
// its data map: the two half-palettes (slave symbols only ever populate
// Palette1 with the full set), the color count, the mask
// type, and the error-correction (wc, wr) pair parsed from metadata.
type Params struct {
	Palette1    []matrix.RGB
	Palette2    []matrix.RGB
	ColorNumber int
	MaskType    int
	WC, WR      int
}

// Decode runs the gather -> demask -> unpack -> deinterleave -> LDPC
// pipeline described in spec §4.6 and returns the Pn net information
// bits, one bit per byte, MSB-first within each module exactly as
// rawModuleData2RawData lays them out.
func Decode(m *matrix.Matrix, dataMap []bool, p Params) ([]byte, error) {
	if len(dataMap) != m.Width*m.Height {
		return nil, fmt.Errorf("payload: data map length mismatch")
	}

	th1, rp1, err := colormodel.PaletteThreshold(p.Palette1, p.ColorNumber)
	if err != nil {
		return nil, fmt.Errorf("payload: palette1 thresholds: %w", err)
	}
	var th2 colormodel.Thresholds
	var rp2, rrp2 colormodel.ReferencePoints
	havePalette2 := len(p.Palette2) > 0
	if havePalette2 {
		th2, rrp2, err = colormodel.PaletteThreshold(p.Palette2, p.ColorNumber)
		if err != nil {
			return nil, fmt.Errorf("payload: palette2 thresholds: %w", err)
		}
		rp2 = rrp2
	}

	bitsPerModule := colormodel.BitsPerModule(p.ColorNumber)
	moduleIndices := make([]byte, 0, m.Width*m.Height)
	moduleReliabilities := make([][]float64, 0, m.Width*m.Height)
	moduleCoords := make([][2]int, 0, m.Width*m.Height)

	// column-major gather: outer loop over x (columns), inner over y (rows),
	// matching decoder.c's readRawModuleData traversal order exactly.
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			if dataMap[y*m.Width+x] {
				continue
			}
			th, rp := th1, rp1
			if havePalette2 {
				if m.Width > m.Height {
					if x >= m.Width/2 {
						th, rp = th2, rp2
					}
				} else if y >= m.Height/2 {
					th, rp = th2, rp2
				}
			}
			idx, probs := colormodel.DecodeModule(p.ColorNumber, th, rp, m.At(x, y))
			moduleIndices = append(moduleIndices, idx)
			moduleReliabilities = append(moduleReliabilities, probs)
			moduleCoords = append(moduleCoords, [2]int{x, y})
		}
	}

	side := mask.Side{X: m.Width, Y: m.Height}
	demaskedIndices := make([]byte, len(moduleIndices))
	copy(demaskedIndices, moduleIndices)
	flatGrid := make([]byte, m.Width*m.Height)
	flatMap := make([]bool, m.Width*m.Height)
	for i, c := range moduleCoords {
		flatGrid[c[1]*m.Width+c[0]] = moduleIndices[i]
		flatMap[c[1]*m.Width+c[0]] = true
	}
	if err := mask.Demask(flatGrid, flatMap, side, p.MaskType, p.ColorNumber); err != nil {
		return nil, fmt.Errorf("payload: demask: %w", err)
	}
	for i, c := range moduleCoords {
		demaskedIndices[i] = flatGrid[c[1]*m.Width+c[0]]
	}

	// unpack each module's palette index into bitsPerModule individual
	// bits (MSB-first), carrying the matching reliability alongside.
	bits := make([]byte, 0, len(demaskedIndices)*bitsPerModule)
	rel := make([]float64, 0, len(demaskedIndices)*bitsPerModule)
	for i, idx := range demaskedIndices {
		for b := 0; b < bitsPerModule; b++ {
			bit := (idx >> uint(bitsPerModule-1-b)) & 1
			bits = append(bits, bit)
			pr := moduleReliabilities[i][b]
			if bit == 1 {
				rel = append(rel, pr)
			} else {
				rel = append(rel, 1-pr)
			}
		}
	}

	if p.WC <= 0 || p.WR <= 0 || p.WC >= p.WR {
		return nil, fmt.Errorf("payload: invalid error-correction parameters wc=%d wr=%d", p.WC, p.WR)
	}
	pg := (len(bits) / p.WR) * p.WR
	pn := pg * (p.WR - p.WC) / p.WR
	if pg == 0 {
		return nil, fmt.Errorf("payload: no capacity for a complete LDPC block")
	}

	deBits, deRel, err := interleave.Deinterleave(bits, rel, p.WC, p.WR, pg)
	if err != nil {
		return nil, fmt.Errorf("payload: deinterleave: %w", err)
	}
	_ = deBits

	info, ok := ldpc.DecodeSoft(deRel, p.WC, p.WR)
	if !ok {
		return nil, fmt.Errorf("payload: LDPC decoding failed")
	}
	if len(info) < pn {
		return nil, fmt.Errorf("payload: LDPC decoder returned %d info bits, want %d", len(info), pn)
	}
	return info[:pn], nil
}
