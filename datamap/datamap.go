// Package datamap builds the boolean module map marking which cells of a
// symbol carry finder/alignment/palette/metadata furniture (true) versus
// actual payload (false once metadata scanning has also punched out its
// own cells).
package datamap

import "github.com/fournarakis/jabcode/geometry"

// SymbolType distinguishes a master symbol (which additionally reserves a
// diagonal halo around its four corner finder patterns) from a slave.
type SymbolType int

const (
	Master SymbolType = iota
	Slave
)

// Map is a row-major boolean grid the same size as a symbol: true marks a
// cell reserved by the symbol's fixed furniture (finders, alignment
// pattern crosses and their diagonal neighbors, palette cells, metadata
// cells); everything left false belongs to the payload.
type Map []bool

// Build constructs the alignment-pattern and finder-corner reservation
// pattern for a width x height symbol (spec §4.5, decoder.c fillDataMap).
// Metadata and palette cells are reserved separately as each scanner
// visits them (metadata.DecodeMaster/DecodeSlave already do this against
// the same backing slice).
func Build(width, height int, t SymbolType) Map {
	m := make(Map, width*height)

	numAPx := (width-(geometry.DistanceToBorder*2-1))/geometry.MinimumDistanceBetweenAlignments - 1
	numAPy := (height-(geometry.DistanceToBorder*2-1))/geometry.MinimumDistanceBetweenAlignments - 1
	if numAPx < 0 {
		numAPx = 0
	}
	if numAPy < 0 {
		numAPy = 0
	}
	numAPx += 2
	numAPy += 2

	var apDistX, apDistY float64
	if numAPx > 2 {
		apDistX = float64(width-(geometry.DistanceToBorder*2-1)) / float64(numAPx-1)
	} else {
		apDistX = float64(width - (geometry.DistanceToBorder*2 - 1))
	}
	if numAPy > 2 {
		apDistY = float64(height-(geometry.DistanceToBorder*2-1)) / float64(numAPy-1)
	} else {
		apDistY = float64(height - (geometry.DistanceToBorder*2 - 1))
	}

	set := func(x, y int) {
		if x >= 0 && y >= 0 && x < width && y < height {
			m[y*width+x] = true
		}
	}

	for i := 0; i < numAPy; i++ {
		for j := 0; j < numAPx; j++ {
			xOff := (geometry.DistanceToBorder - 1) + int(float64(j)*apDistX)
			yOff := (geometry.DistanceToBorder - 1) + int(float64(i)*apDistY)

			// the cross
			set(xOff, yOff)
			set(xOff-1, yOff)
			set(xOff+1, yOff)
			set(xOff, yOff-1)
			set(xOff, yOff+1)

			switch {
			case i == 0 && (j == 0 || j == numAPx-1):
				set(xOff-1, yOff-1)
				set(xOff+1, yOff+1)
				if t == Master {
					set(xOff-2, yOff-2)
					set(xOff-1, yOff-2)
					set(xOff, yOff-2)
					set(xOff-2, yOff-1)
					set(xOff-2, yOff)

					set(xOff+2, yOff+2)
					set(xOff+1, yOff+2)
					set(xOff, yOff+2)
					set(xOff+2, yOff+1)
					set(xOff+2, yOff)
				}
			case i == numAPy-1 && (j == 0 || j == numAPx-1):
				set(xOff+1, yOff-1)
				set(xOff-1, yOff+1)
				if t == Master {
					set(xOff+2, yOff-2)
					set(xOff+1, yOff-2)
					set(xOff, yOff-2)
					set(xOff+2, yOff-1)
					set(xOff+2, yOff)

					set(xOff-2, yOff+2)
					set(xOff-1, yOff+2)
					set(xOff, yOff+2)
					set(xOff-2, yOff+1)
					set(xOff-2, yOff)
				}
			default:
				if (i%2 == 0 && j%2 == 0) || (i%2 == 1 && j%2 == 1) {
					set(xOff-1, yOff-1)
					set(xOff+1, yOff+1)
				} else {
					set(xOff+1, yOff-1)
					set(xOff-1, yOff+1)
				}
			}
		}
	}
	return m
}
