// Package geometry hosts the static geometric constants spec §6 calls the
// "static collaborator tables": metadata origins and part lengths, the
// alignment-pattern spacing rule, the side-size/version mapping, and the
// fixed palette sampling coordinates. These are the module's own
// self-consistent synthesis of a table the system spec deliberately leaves
// external (the real coordinate set lives in the image-extraction layer
// this decoder does not own); every consumer only depends on the shape of
// the table (fixed coordinate count per color, deterministic indexing),
// never on specific pixel positions matching any particular reference
// encoder.
package geometry

// Point is a fixed (x, y) module coordinate.
type Point struct{ X, Y int }

// Metadata scan origins (spec §4.4).
const (
	MasterMetadataX = 7
	MasterMetadataY = 1

	SlaveMetadataX = 2
	SlaveMetadataY = 0
)

// Metadata part bit lengths (spec §4.4, decoder.c part1/part2 sizing).
const (
	MasterPart1Bits = 6
	MasterPart2Bits = 18

	SlavePart1Bits     = 6
	SlavePart2MaxBits  = 16
	SlavePart3MaxBits  = 32
	MasterPart3MaxBits = 60
)

// Alignment pattern layout constants (spec §4.5).
const (
	DistanceToBorder                 = 3
	MinimumDistanceBetweenAlignments = 15
)

// VersionToSize maps a per-axis side_version to the symbol's side length in
// modules: side_size = 2*version + offset, per spec §3. The offset (9)
// keeps the smallest version (1) at a 11-module side, large enough to hold
// the fixed finder/metadata furniture.
func VersionToSize(version int) int {
	const offset = 9
	return 2*version + offset
}

// MasterPalettePosition gives the sampling coordinate of palette entry i
// relative to the top-left finder/metadata quadrant, mirrored by the
// caller to build the opposing quadrant's copy exactly as decoder.c's
// decodeMasterMetadata does. Symbols carrying more than 8 colors never
// store more than 64 raw samples directly (128/256-color palettes are
// synthesized by colormodel.InterpolatePalette instead), so the table
// covers up to 64 entries, laid out as 8 rows of 8 starting at the
// original 8-entry block's corner.
var MasterPalettePosition = func() [64]Point {
	var pts [64]Point
	for i := range pts {
		row := i / 8
		col := i % 8
		pts[i] = Point{X: 2 + col, Y: 3 + row}
	}
	return pts
}()

// SlavePalettePosition gives the sampling coordinates for up to 64 raw
// slave palette entries, laid out as 8 rows of 8 starting next to the
// slave metadata block; the same coordinates are used whatever edge the
// slave docks to, and colors beyond 64 are synthesized rather than
// sampled, same as the master table.
var SlavePalettePosition = func() [64]Point {
	var pts [64]Point
	for i := range pts {
		row := i / 8
		col := i % 8
		pts[i] = Point{X: SlaveMetadataX + col, Y: SlaveMetadataY + 2 + row}
	}
	return pts
}()
