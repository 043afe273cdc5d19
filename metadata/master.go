package metadata

import (
	"math"

	"github.com/fournarakis/jabcode/colormodel"
	"github.com/fournarakis/jabcode/geometry"
	"github.com/fournarakis/jabcode/ldpc"
	"github.com/fournarakis/jabcode/matrix"
)

// MasterResult is everything decoding a master symbol's metadata block
// yields beyond the parsed Metadata itself: the symbol's realized size and
// the two color palettes read alongside it (spec §4.4 reads two
// interleaved palette copies, one per quadrant half).
type MasterResult struct {
	Metadata      Metadata
	SideSize      struct{ X, Y int }
	ColorNumber   int
	Palette1      []matrix.RGB
	Palette2      []matrix.RGB
	ModuleCount   int
}

// DecodeMaster scans and parses a master symbol's metadata block, marking
// every module it visits (metadata and palette cells alike) in dataMap so
// the payload pipeline knows to skip them (spec §4.4, decoder.c
// decodeMasterMetadata).
func DecodeMaster(m *matrix.Matrix, dataMap []bool) (MasterResult, Status) {
	var res MasterResult
	x, y := geometry.MasterMetadataX, geometry.MasterMetadataY
	moduleCount := 0
	mark := func(mx, my int) {
		if mx >= 0 && my >= 0 && mx < m.Width && my < m.Height {
			dataMap[my*m.Width+mx] = true
		}
	}

	// part 1: Nc, hard decision, 2-color assumption (no palette available yet)
	part1Bits := make([]byte, geometry.MasterPart1Bits)
	for i := 0; i < geometry.MasterPart1Bits; i++ {
		c := m.At(x, y)
		part1Bits[i] = colormodel.DecodeModuleHD(nil, 0, c)
		mark(x, y)
		moduleCount++
		x, y = nextMasterModule(m.Height, m.Width, moduleCount, x, y)
	}
	wc, wr := metadataLDPCParams(geometry.MasterPart1Bits)
	part1, ok := ldpc.DecodeHard(part1Bits, wc, wr)
	if !ok || len(part1) < 3 {
		return res, StatusDecodeFailure
	}

	nc := int(part1[0])<<2 | int(part1[1])<<1 | int(part1[2])
	colorNumber := 1 << uint(nc+1)
	colorNumberMD := colorNumberForMetadata(colorNumber)
	bitsPerModule := colormodel.BitsPerModule(colorNumberMD)
	res.ColorNumber = colorNumber

	// read both palette copies at their fixed positions: only min(colorNumber,
	// 64) entries are ever sampled directly, the rest are reconstructed below.
	rawCount := colorNumber
	if rawCount > 64 {
		rawCount = 64
	}
	rawPalette1 := make([]matrix.RGB, rawCount)
	rawPalette2 := make([]matrix.RGB, rawCount)
	for i := 0; i < rawCount && i < len(geometry.MasterPalettePosition); i++ {
		p1 := geometry.MasterPalettePosition[i]
		rawPalette1[i] = m.At(p1.X, p1.Y)
		mark(p1.X, p1.Y)

		p2x, p2y := m.Width-1-p1.X, m.Height-7+p1.Y
		rawPalette2[i] = m.At(p2x, p2y)
		mark(p2x, p2y)
	}

	palette1, err := reconstructPalette(rawPalette1, colorNumber)
	if err != nil {
		return res, StatusFatal
	}
	palette2, err := reconstructPalette(rawPalette2, colorNumber)
	if err != nil {
		return res, StatusFatal
	}
	res.Palette1, res.Palette2 = palette1, palette2

	th1, rp1, err := colormodel.PaletteThreshold(rawPalette1[:colorNumberMD], colorNumberMD)
	if err != nil {
		return res, StatusFatal
	}
	th2, rp2, err := colormodel.PaletteThreshold(rawPalette2[:colorNumberMD], colorNumberMD)
	if err != nil {
		return res, StatusFatal
	}

	paletteFor := func(px, py int) (colormodel.Thresholds, colormodel.ReferencePoints) {
		if m.Width > m.Height {
			if px < m.Width/2 {
				return th1, rp1
			}
			return th2, rp2
		}
		if py < m.Height/2 {
			return th1, rp1
		}
		return th2, rp2
	}

	// part 2: SS, VF, mask_type, SF
	part3Carry := make([]float64, 0, 64)
	readSoft := func(total int, carried []float64) ([]float64, []float64) {
		out := append([]float64(nil), carried...)
		for len(out) < total {
			th, rp := paletteFor(x, y)
			c := m.At(x, y)
			idx, p := colormodel.DecodeModule(colorNumberMD, th, rp, c)
			for b := 0; b < bitsPerModule; b++ {
				bit := (idx >> uint(bitsPerModule-1-b)) & 1
				if bit == 1 {
					out = append(out, p[b])
				} else {
					out = append(out, 1-p[b])
				}
			}
			mark(x, y)
			moduleCount++
			x, y = nextMasterModule(m.Height, m.Width, moduleCount, x, y)
		}
		overflow := out[total:]
		return out[:total], overflow
	}

	part2Rel, overflow := readSoft(geometry.MasterPart2Bits, nil)
	part3Carry = overflow

	wc2, wr2 := metadataLDPCParams(geometry.MasterPart2Bits)
	part2, ok := ldpc.DecodeSoft(part2Rel, wc2, wr2)
	if !ok || len(part2) < 7 {
		return res, StatusDecodeFailure
	}

	ss := part2[0]
	vf := int(part2[1])<<1 | int(part2[2])
	maskType := int(part2[3])<<2 | int(part2[4])<<1 | int(part2[5])
	res.Metadata.VF = vf
	res.Metadata.MaskType = maskType

	var vLength, eLength, sLength int
	if ss == 0 {
		if vf == 0 {
			vLength = 2
		} else {
			vLength = vf + 1
		}
	} else {
		vLength = vf*2 + 4
	}
	eLength = vf*2 + 10
	sLength = 0
	if part2[6] != 0 {
		sLength = 4
	} else {
		res.Metadata.DockedPosition = 0
	}

	part3Length := vLength*2 + eLength*2 + sLength*2
	part3Rel, _ := readSoft(part3Length, part3Carry)

	wc3, wr3 := metadataLDPCParams(part3Length)
	part3, ok := ldpc.DecodeSoft(part3Rel, wc3, wr3)
	needed := vLength + eLength + sLength
	if !ok || len(part3) < needed {
		return res, StatusDecodeFailure
	}

	bitIndex := 0
	if vLength > 0 {
		if ss == 0 {
			v := bitsToInt(part3[:vLength])
			var sideVersion int
			if vf == 0 {
				sideVersion = v + 1
			} else {
				sideVersion = int(math.Pow(2, float64(vf+1))) + v + 1
			}
			res.Metadata.SideVersion.X = sideVersion
			res.Metadata.SideVersion.Y = sideVersion
		} else {
			half := vLength / 2
			res.Metadata.SideVersion.X = bitsToInt(part3[:half]) + 1
			res.Metadata.SideVersion.Y = bitsToInt(part3[half:vLength]) + 1
		}
		bitIndex += vLength
	}
	if eLength > 0 {
		half := eLength / 2
		res.Metadata.ECL.WC = bitsToInt(part3[bitIndex:bitIndex+half]) + 3
		res.Metadata.ECL.WR = bitsToInt(part3[bitIndex+half:bitIndex+eLength]) + 4
		bitIndex += eLength
	}
	if sLength == 4 {
		res.Metadata.DockedPosition = uint8(bitsToInt(part3[bitIndex : bitIndex+4]))
		bitIndex += 4
	}

	res.Metadata.Nc = nc
	res.SideSize.X = geometry.VersionToSize(res.Metadata.SideVersion.X)
	res.SideSize.Y = geometry.VersionToSize(res.Metadata.SideVersion.Y)
	res.ModuleCount = moduleCount
	if m.Width != res.SideSize.X || m.Height != res.SideSize.Y {
		return res, StatusVersionMismatch
	}
	if res.Metadata.ECL.WC >= res.Metadata.ECL.WR {
		return res, StatusDecodeFailure
	}
	return res, StatusSuccess
}
