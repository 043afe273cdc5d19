package metadata

import (
	"testing"

	"github.com/fournarakis/jabcode/geometry"
	"github.com/fournarakis/jabcode/ldpc"
	"github.com/fournarakis/jabcode/matrix"
)

func newTestMatrix(width, height int) *matrix.Matrix {
	m, err := matrix.New(width, height, 24)
	if err != nil {
		panic(err)
	}
	return m
}

func TestBitsToInt(t *testing.T) {
	cases := []struct {
		bits []byte
		want int
	}{
		{[]byte{0, 0, 0}, 0},
		{[]byte{1}, 1},
		{[]byte{1, 0, 1}, 5},
		{[]byte{1, 1, 1, 1}, 15},
	}
	for _, c := range cases {
		if got := bitsToInt(c.bits); got != c.want {
			t.Errorf("bitsToInt(%v) = %d, want %d", c.bits, got, c.want)
		}
	}
}

func TestColorNumberForMetadata(t *testing.T) {
	cases := map[int]int{2: 2, 4: 4, 8: 8, 16: 8, 32: 8, 256: 8}
	for in, want := range cases {
		if got := colorNumberForMetadata(in); got != want {
			t.Errorf("colorNumberForMetadata(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestMetadataLDPCParamsDivides(t *testing.T) {
	for _, n := range []int{6, 18, 16, 32, 24, 60, 7} {
		wc, wr := metadataLDPCParams(n)
		if n%wr != 0 {
			t.Errorf("metadataLDPCParams(%d) = (wc=%d, wr=%d): wr does not divide n", n, wc, wr)
		}
		if wr <= wc {
			t.Errorf("metadataLDPCParams(%d) = (wc=%d, wr=%d): wr must exceed wc", n, wc, wr)
		}
	}
}

func TestNextMasterModuleQuadrantSwap(t *testing.T) {
	// at module count 44, 96, 156 the coordinate axes are swapped
	for _, n := range []int{44, 96, 156} {
		x, y := 3, 5
		gotX, gotY := nextMasterModule(20, 20, n, x, y)
		// the boustrophedon step runs first: y is mirrored (19-5 = 14) and
		// moved down one row (15), x stays 3; the swap then exchanges them.
		if gotX != 15 || gotY != 3 {
			t.Errorf("nextMasterModule(20, 20, %d, 3, 5) = (%d, %d), want (15, 3)", n, gotX, gotY)
		}
	}
}

func TestNextSlaveModuleJumpAt38(t *testing.T) {
	x, y := nextSlaveModule(38, 99, 99)
	wantX, wantY := geometry.SlaveMetadataX+2, geometry.SlaveMetadataY+4
	if x != wantX || y != wantY {
		t.Errorf("nextSlaveModule(38, ...) = (%d, %d), want (%d, %d)", x, y, wantX, wantY)
	}
}

func TestNextSlaveModuleBoustrophedon(t *testing.T) {
	x, y := 5, 5
	x2, y2 := nextSlaveModule(1, x, y) // odd -> x++
	if x2 != x+1 || y2 != y {
		t.Errorf("nextSlaveModule(1, ...) = (%d,%d), want (%d,%d)", x2, y2, x+1, y)
	}
	x3, y3 := nextSlaveModule(2, x, y) // even -> x--, y++
	if x3 != x-1 || y3 != y+1 {
		t.Errorf("nextSlaveModule(2, ...) = (%d,%d), want (%d,%d)", x3, y3, x-1, y+1)
	}
}

// hdBitColor returns a sample DecodeModuleHD's no-palette fallback classifies
// as bit: three saturated channels for 1, all-black for 0.
func hdBitColor(bit byte) matrix.RGB {
	if bit == 1 {
		return matrix.RGB{R: 255, G: 255, B: 255}
	}
	return matrix.RGB{R: 0, G: 0, B: 0}
}

// writeSoftBits packs codeword, two bits at a time (MSB-first, matching
// readSoft's bitsPerModule unpacking), as palette entries along the
// nextMasterModule hop sequence starting at (x, y)/moduleCount. It returns
// the hop state after the last module written, exactly where the live
// decoder's own readSoft loop would resume.
func writeSoftBits(m *matrix.Matrix, palette []matrix.RGB, codeword []byte, x, y, moduleCount int) (int, int, int) {
	for i := 0; i+1 < len(codeword); i += 2 {
		idx := int(codeword[i])<<1 | int(codeword[i+1])
		m.Set(x, y, palette[idx])
		moduleCount++
		x, y = nextMasterModule(m.Height, m.Width, moduleCount, x, y)
	}
	return x, y, moduleCount
}

// TestDecodeMasterRecoversScenarioOneMetadata builds a valid, LDPC-protected
// master metadata block for spec §8 scenario 1 (K=4 colors, mask type 0,
// ecl (wc=3, wr=4), a 21x21 symbol) from scratch and checks DecodeMaster
// recovers it exactly, including the full (unCapped) palette Comment 3 of
// the review was about.
func TestDecodeMasterRecoversScenarioOneMetadata(t *testing.T) {
	const size = 21
	m := newTestMatrix(size, size)
	dataMap := make([]bool, size*size)

	palette := []matrix.RGB{
		{R: 0, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 255, G: 0, B: 0},
		{R: 255, G: 255, B: 0},
	}

	// part 1: Nc = 1 -> colorNumber = 1<<(1+1) = 4.
	info1 := []byte{0, 0, 1}
	codeword1, err := ldpc.Encode(info1, geometry.MasterPart1Bits, 3, 6)
	if err != nil {
		t.Fatalf("ldpc.Encode part1: %v", err)
	}
	x, y := geometry.MasterMetadataX, geometry.MasterMetadataY
	moduleCount := 0
	for _, b := range codeword1 {
		m.Set(x, y, hdBitColor(b))
		moduleCount++
		x, y = nextMasterModule(size, size, moduleCount, x, y)
	}

	// both palette copies, identical, so it never matters which quadrant's
	// thresholds readSoft picks for a given module.
	for i := 0; i < len(palette); i++ {
		p1 := geometry.MasterPalettePosition[i]
		m.Set(p1.X, p1.Y, palette[i])
		p2x, p2y := m.Width-1-p1.X, m.Height-7+p1.Y
		m.Set(p2x, p2y, palette[i])
	}

	// part 2: ss=0 (non-split), vf=1, mask_type=0, SF=0, 5 padding bits.
	info2 := []byte{0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	codeword2, err := ldpc.Encode(info2, geometry.MasterPart2Bits, 3, 9)
	if err != nil {
		t.Fatalf("ldpc.Encode part2: %v", err)
	}
	x, y, moduleCount = writeSoftBits(m, palette, codeword2, x, y, moduleCount)

	// part 3: side_version bits (v=1, base 2^(vf+1)=4 -> side_version=6),
	// ecl (wc=3 -> 000000, wr=4 -> 000000), 2 padding bits.
	info3 := []byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	codeword3, err := ldpc.Encode(info3, 28, 3, 7)
	if err != nil {
		t.Fatalf("ldpc.Encode part3: %v", err)
	}
	_, _, _ = writeSoftBits(m, palette, codeword3, x, y, moduleCount)

	res, status := DecodeMaster(m, dataMap)
	if status != StatusSuccess {
		t.Fatalf("DecodeMaster status = %v, want StatusSuccess", status)
	}
	if res.Metadata.Nc != 1 {
		t.Errorf("Nc = %d, want 1", res.Metadata.Nc)
	}
	if res.ColorNumber != 4 {
		t.Errorf("ColorNumber = %d, want 4", res.ColorNumber)
	}
	if res.Metadata.MaskType != 0 {
		t.Errorf("MaskType = %d, want 0", res.Metadata.MaskType)
	}
	if res.Metadata.SideVersion.X != 6 || res.Metadata.SideVersion.Y != 6 {
		t.Errorf("SideVersion = %+v, want {6 6}", res.Metadata.SideVersion)
	}
	if res.Metadata.ECL.WC != 3 || res.Metadata.ECL.WR != 4 {
		t.Errorf("ECL = %+v, want {3 4}", res.Metadata.ECL)
	}
	if len(res.Palette1) != 4 || len(res.Palette2) != 4 {
		t.Fatalf("Palette1/2 lengths = %d/%d, want 4/4 (review comment 3: must not be capped)", len(res.Palette1), len(res.Palette2))
	}
	for i, want := range palette {
		if res.Palette1[i] != want {
			t.Errorf("Palette1[%d] = %+v, want %+v", i, res.Palette1[i], want)
		}
	}
}

func TestDecodeMasterOnZeroedMatrixDoesNotPanic(t *testing.T) {
	// a plausible small square symbol size; content is all-black so
	// decoding is expected to fail, but it must fail cleanly.
	size := 21
	dummy := newTestMatrix(size, size)
	dataMap := make([]bool, size*size)
	if _, status := DecodeMaster(dummy, dataMap); status == StatusSuccess {
		t.Error("expected a zeroed matrix to fail metadata decoding, not succeed")
	}
}
