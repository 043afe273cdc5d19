package metadata

import (
	"github.com/fournarakis/jabcode/colormodel"
	"github.com/fournarakis/jabcode/geometry"
	"github.com/fournarakis/jabcode/ldpc"
	"github.com/fournarakis/jabcode/matrix"
)

// SlaveResult is everything decoding a slave symbol's metadata block
// yields: the parsed Metadata (some fields inherited from the host when
// the slave's own SS/SE/SF bits say "same as host") and the single palette
// read alongside it.
type SlaveResult struct {
	Metadata    Metadata
	ColorNumber int
	Palette     []matrix.RGB
	ModuleCount int
}

// DecodeSlave scans and parses a slave symbol's metadata block, marking
// every module it visits (metadata and palette cells alike) in dataMap so
// the payload pipeline knows to skip them, exactly as DecodeMaster does.
// hostPosition is the slave's docking position relative to its host (0-3);
// host carries the already-decoded host metadata a slave's SS/SE/SF bits
// can defer to (spec §4.4, decoder.c decodeSlaveMetadata). Unlike the
// reference, which signals a bad (wc, wr) pair with a plain success/failure
// boolean distinct from the master path's four-way code, this returns the
// same Status the master path uses so callers have one contract to branch
// on.
func DecodeSlave(m *matrix.Matrix, dataMap []bool, host Metadata, hostPosition int) (SlaveResult, Status) {
	var res SlaveResult
	res.Metadata.Nc = host.Nc
	res.Metadata.MaskType = host.MaskType

	mark := func(mx, my int) {
		if mx >= 0 && my >= 0 && mx < m.Width && my < m.Height {
			dataMap[my*m.Width+mx] = true
		}
	}

	colorNumber := 1 << uint(host.Nc+1)
	colorNumberMD := colorNumberForMetadata(colorNumber)
	bitsPerModule := colormodel.BitsPerModule(colorNumberMD)
	res.ColorNumber = colorNumber

	rawCount := colorNumber
	if rawCount > 64 {
		rawCount = 64
	}
	rawPalette := make([]matrix.RGB, rawCount)
	for i := 0; i < rawCount && i < len(geometry.SlavePalettePosition); i++ {
		p := geometry.SlavePalettePosition[i]
		rawPalette[i] = m.At(p.X, p.Y)
		mark(p.X, p.Y)
	}

	palette, err := reconstructPalette(rawPalette, colorNumber)
	if err != nil {
		return res, StatusFatal
	}
	res.Palette = palette

	th, rp, err := colormodel.PaletteThreshold(rawPalette[:colorNumberMD], colorNumberMD)
	if err != nil {
		return res, StatusFatal
	}

	x, y := geometry.SlaveMetadataX, geometry.SlaveMetadataY
	moduleCount := 0
	readSoft := func(total int, carried []float64) ([]float64, []float64) {
		out := append([]float64(nil), carried...)
		for len(out) < total {
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
			x, y = nextSlaveModule(moduleCount, x, y)
		}
		return out[:total], out[total:]
	}

	part1Rel, part2Carry := readSoft(geometry.SlavePart1Bits, nil)
	wc1, wr1 := metadataLDPCParams(geometry.SlavePart1Bits)
	part1, ok := ldpc.DecodeSoft(part1Rel, wc1, wr1)
	if !ok || len(part1) < 3 {
		return res, StatusDecodeFailure
	}

	var vLength, eLength, sLength int
	if part1[0] == 0 {
		res.Metadata.VF = host.VF
		res.Metadata.SideVersion = host.SideVersion
	} else {
		vLength = 5
	}
	if part1[1] == 0 {
		res.Metadata.ECL = host.ECL
	} else if vLength == 0 {
		eLength = host.VF*2 + 10
	}
	if part1[2] == 0 {
		res.Metadata.DockedPosition = 0
	} else {
		sLength = 3
	}

	part2Length := vLength*2 + sLength*2
	if part2Length > 0 {
		part2Rel, part3Carry := readSoft(part2Length, part2Carry)
		wc2, wr2 := metadataLDPCParams(part2Length)
		part2, ok := ldpc.DecodeSoft(part2Rel, wc2, wr2)
		if !ok || len(part2) < vLength+sLength {
			return res, StatusDecodeFailure
		}

		bitIndex := 0
		if vLength == 5 {
			v := bitsToInt(part2[:5])
			sideVersion := v + 1
			if hostPosition == 2 || hostPosition == 3 {
				res.Metadata.SideVersion.Y = host.SideVersion.Y
				res.Metadata.SideVersion.X = sideVersion
			} else {
				res.Metadata.SideVersion.X = host.SideVersion.X
				res.Metadata.SideVersion.Y = sideVersion
			}
			svMax := res.Metadata.SideVersion.X
			if res.Metadata.SideVersion.Y > svMax {
				svMax = res.Metadata.SideVersion.Y
			}
			switch {
			case svMax <= 4:
				res.Metadata.VF = 0
			case svMax <= 8:
				res.Metadata.VF = 1
			case svMax <= 16:
				res.Metadata.VF = 2
			default:
				res.Metadata.VF = 3
			}
			if part1[1] != 0 {
				eLength = res.Metadata.VF*2 + 10
			}
			bitIndex += 5
		}
		if sLength == 3 {
			res.Metadata.DockedPosition = 0
			for i := 0; i < 4; i++ {
				if i != hostPosition {
					res.Metadata.DockedPosition += uint8(part2[bitIndex]) << uint(3-i)
					bitIndex++
				}
			}
		}

		part3Length := eLength * 2
		if part3Length > 0 {
			part3Rel, _ := readSoft(part3Length, part3Carry)
			wc3, wr3 := metadataLDPCParams(part3Length)
			part3, ok := ldpc.DecodeSoft(part3Rel, wc3, wr3)
			if !ok || len(part3) < eLength {
				return res, StatusDecodeFailure
			}
			half := eLength / 2
			res.Metadata.ECL.WC = bitsToInt(part3[:half]) + 3
			res.Metadata.ECL.WR = bitsToInt(part3[half:eLength]) + 4
		}
	}

	res.ModuleCount = moduleCount
	if res.Metadata.ECL.WC >= res.Metadata.ECL.WR {
		return res, StatusDecodeFailure
	}
	return res, StatusSuccess
}
