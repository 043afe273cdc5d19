package colormodel

import (
	"fmt"

	"github.com/fournarakis/jabcode/matrix"
)

// Thresholds holds, per channel, a monotonically non-decreasing sequence of
// v+1 real thresholds in [0,255] delimiting the v decision bands (spec
// §3/§4.2). Each channel (R, G, B) has its own slice, of length
// V.Channel(ch)+1.
type Thresholds struct {
	V   Variability
	R   []float64
	G   []float64
	B   []float64
}

// ReferencePoints holds, per channel, the v-2 interior anchors used to
// assign within-band reliability (empty for v<=2).
type ReferencePoints struct {
	R, G, B []float64
}

// PaletteThreshold computes the channel thresholds and reference points
// implied by a K-entry palette (spec §4.2, decoder.c getPaletteThreshold).
func PaletteThreshold(palette []matrix.RGB, colorNumber int) (Thresholds, ReferencePoints, error) {
	v, err := VariabilityFor(colorNumber)
	if err != nil {
		return Thresholds{}, ReferencePoints{}, err
	}
	if len(palette) < colorNumber {
		return Thresholds{}, ReferencePoints{}, fmt.Errorf("colormodel: palette has %d entries, need %d", len(palette), colorNumber)
	}

	switch colorNumber {
	case 2:
		return twoColorThreshold(palette, v), ReferencePoints{}, nil
	case 4, 8:
		return smallPaletteThreshold(palette, colorNumber, v), ReferencePoints{}, nil
	default:
		return largePaletteThreshold(palette, colorNumber, v)
	}
}

func twoColorThreshold(palette []matrix.RGB, v Variability) Thresholds {
	mean := func(a, b byte) float64 { return float64(int(a)+int(b)) / 2.0 }
	return Thresholds{
		V: v,
		R: []float64{0, mean(palette[0].R, palette[1].R), 255},
		G: []float64{0, mean(palette[0].G, palette[1].G), 255},
		B: []float64{0, mean(palette[0].B, palette[1].B), 255},
	}
}

// lowHighSets returns, for K in {4,8}, the canonical "low value"/"high
// value" index partitions per channel (decoder.c:508-545).
func lowHighSets(colorNumber int) (low, high [3][]int) {
	if colorNumber == 4 {
		return [3][]int{{0, 1}, {0, 2}, {1, 2}}, [3][]int{{2, 3}, {1, 3}, {0, 3}}
	}
	// colorNumber == 8
	return [3][]int{{0, 1, 2, 3}, {0, 1, 4, 5}, {0, 2, 4, 6}},
		[3][]int{{4, 5, 6, 7}, {2, 3, 6, 7}, {1, 3, 5, 7}}
}

func smallPaletteThreshold(palette []matrix.RGB, colorNumber int, v Variability) Thresholds {
	low, high := lowHighSets(colorNumber)
	channel := func(ch int) []float64 {
		maxLow := 0
		for _, i := range low[ch] {
			if c := channelValue(palette[i], ch); c > maxLow {
				maxLow = c
			}
		}
		minHigh := 255
		for _, i := range high[ch] {
			if c := channelValue(palette[i], ch); c < minHigh {
				minHigh = c
			}
		}
		return []float64{0, float64(maxLow+minHigh) / 2.0, 255}
	}
	return Thresholds{V: v, R: channel(0), G: channel(1), B: channel(2)}
}

func channelValue(c matrix.RGB, ch int) int {
	switch ch {
	case 0:
		return int(c.R)
	case 1:
		return int(c.G)
	default:
		return int(c.B)
	}
}

// largePaletteThreshold implements the K>=16 "critical points" construction
// (decoder.c:546-643): for each channel and each of the v levels, find the
// min/max of that channel among all palette entries whose channel-level
// decomposition equals that level; thresholds and reference points are then
// the midpoints between adjacent critical points.
func largePaletteThreshold(palette []matrix.RGB, colorNumber int, v Variability) (Thresholds, ReferencePoints, error) {
	th := Thresholds{V: v}
	rp := ReferencePoints{}
	for ch := 0; ch < 3; ch++ {
		vs := v.Channel(ch)
		var block, step int
		switch ch {
		case 0:
			block = v.VG * v.VB
			step = v.VR * block
		case 1:
			block = v.VB
			step = v.VG * block
		default:
			block = 1
			step = v.VB
		}
		// critical points: 2 per level, except the two extremes contribute 1 each
		cps := make([]int, 0, 2*(vs-1))
		for i := 0; i < vs; i++ {
			min, max := 255, 0
			for j := i * block; j < colorNumber; j += step {
				for k := 0; k < block; k++ {
					val := channelValue(palette[j+k], ch)
					if val < min {
						min = val
					}
					if val > max {
						max = val
					}
				}
			}
			switch {
			case i == 0:
				cps = append(cps, max)
			case i == vs-1:
				cps = append(cps, min)
			default:
				cps = append(cps, min, max)
			}
		}

		ths := make([]float64, vs+1)
		var refs []float64
		ths[0] = 0
		cpsIdx := 0
		for i := 1; i < vs; i++ {
			ths[i] = float64(cps[cpsIdx]+cps[cpsIdx+1]) / 2.0
			if i != vs-1 {
				refs = append(refs, float64(cps[cpsIdx+1]+cps[cpsIdx+2])/2.0)
			}
			cpsIdx += 2
		}
		ths[vs] = 255

		switch ch {
		case 0:
			th.R, rp.R = ths, refs
		case 1:
			th.G, rp.G = ths, refs
		default:
			th.B, rp.B = ths, refs
		}
	}
	return th, rp, nil
}
