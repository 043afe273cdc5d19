package colormodel

import (
	"math"

	"github.com/fournarakis/jabcode/matrix"
)

// DecodeModuleHD classifies a module sample against a palette using hard
// decision: nearest palette entry by squared Euclidean RGB distance, with a
// chromatic-structure tie-break when the best and second-best candidates
// are close (spec §4.2, decoder.c decodeModuleHD). A nil/empty palette
// falls back to a majority vote over the three channels (index 1 when at
// least two channels exceed 100), for the no-palette (K=2, no explicit
// palette read) case.
func DecodeModuleHD(palette []matrix.RGB, colorNumber int, c matrix.RGB) byte {
	if len(palette) == 0 {
		count := 0
		if c.R > 100 {
			count++
		}
		if c.G > 100 {
			count++
		}
		if c.B > 100 {
			count++
		}
		if count > 1 {
			return 1
		}
		return 0
	}

	min1, min2 := 255*255*3, 255*255*3
	var index1, index2 byte
	for i := 0; i < colorNumber; i++ {
		dr := int(palette[i].R) - int(c.R)
		dg := int(palette[i].G) - int(c.G)
		db := int(palette[i].B) - int(c.B)
		diff := dr*dr + dg*dg + db*db
		switch {
		case diff < min1:
			min2, index2 = min1, index1
			min1, index1 = diff, byte(i)
		case diff < min2:
			min2, index2 = diff, byte(i)
		}
	}

	if float64(min1)*1.5 > float64(min2) {
		rg, rb, gb := c.Diff()
		c1rg, c1rb, c1gb := palette[index1].Diff()
		diff1 := absInt(rg-c1rg) + absInt(rb-c1rb) + absInt(gb-c1gb)
		c2rg, c2rb, c2gb := palette[index2].Diff()
		diff2 := absInt(rg-c2rg) + absInt(rb-c2rb) + absInt(gb-c2gb)
		if diff2 < diff1 {
			index1 = index2
		}
	}
	return index1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DecodeModule classifies a module sample using soft decision, returning
// both the palette index and a per-bit reliability in [0,1] (spec §4.2,
// decoder.c decodeModule). len(p) == BitsPerModule(colorNumber).
func DecodeModule(colorNumber int, th Thresholds, rp ReferencePoints, c matrix.RGB) (index byte, p []float64) {
	vs := [3]int{th.V.VR, th.V.VG, th.V.VB}
	rgb := [3]float64{float64(c.R), float64(c.G), float64(c.B)}
	thArr := [3][]float64{th.R, th.G, th.B}
	rpArr := [3][]float64{rp.R, rp.G, rp.B}

	var cv [3]byte
	var cp [3]float64

	if colorNumber < 16 {
		for ch := 0; ch < 3; ch++ {
			m := thArr[ch][1]
			if rgb[ch] < m {
				cp[ch] = 1.0 - rgb[ch]/m
				cv[ch] = 0
			} else {
				cp[ch] = (rgb[ch] - m) / (255.0 - m)
				cv[ch] = 1
			}
		}
		switch colorNumber {
		case 2:
			sum := int(cv[0]) + int(cv[1]) + int(cv[2])
			if sum > 1 {
				index = 1
			}
			p = []float64{(cp[0] + cp[1] + cp[2]) / 3.0}
		case 4:
			index = cv[0]*byte(vs[1]) + cv[1]
			p = []float64{cp[0], cp[1]}
		default: // 8
			index = cv[0]*byte(vs[1]*vs[2]) + cv[1]*byte(vs[2]) + cv[2]
			p = []float64{cp[0], cp[1], cp[2]}
		}
		return index, p
	}

	for ch := 0; ch < 3; ch++ {
		ths := thArr[ch]
		rps := rpArr[ch]
		for i := 0; i < vs[ch]; i++ {
			if rgb[ch] >= ths[i] && rgb[ch] <= ths[i+1] {
				cv[ch] = byte(i)
				switch {
				case i == 0:
					cp[ch] = 1.0 - rgb[ch]/ths[i+1]
				case i == vs[ch]-1:
					cp[ch] = (rgb[ch] - ths[i]) / (255.0 - ths[i])
				default:
					if rgb[ch] <= rps[i-1] {
						cp[ch] = (rgb[ch] - ths[i]) / (rps[i-1] - ths[i])
					} else {
						cp[ch] = (ths[i+1] - rgb[ch]) / (ths[i+1] - rps[i-1])
					}
				}
			}
		}
	}

	index = cv[0]*byte(vs[1]*vs[2]) + cv[1]*byte(vs[2]) + cv[2]
	bitsCount := int(math.Log2(float64(colorNumber)))
	avg := (cp[0] + cp[1] + cp[2]) / 3.0
	p = make([]float64, bitsCount)
	for i := range p {
		p[i] = avg
	}
	return index, p
}

// chromaFineTune holds the red/magenta and blue/cyan boundary correction
// decoder.c carries commented out for the 8-color soft decision path. It is
// kept here, disabled, for the same reason the reference keeps it: the
// correction helps on some captures but regressed others enough that
// shipping it was never enabled.
func chromaFineTune(palette []matrix.RGB, cv [3]byte, rgb [3]float64) [3]byte {
	r, g, b := rgb[0], rgb[1], rgb[2]
	if cv[0] == 1 && cv[1] == 0 {
		cpb0 := maxByte(palette[0].B, palette[2].B, palette[4].B, palette[6].B)
		cpb1 := minByte(palette[1].B, palette[3].B, palette[5].B, palette[7].B)
		bg := (float64(palette[4].B)/float64(palette[4].G) + float64(palette[5].B)/float64(palette[5].G)) / 2.0
		if cv[2] == 0 && b > float64(cpb0) {
			if b/g > bg {
				cv[2] = 1
			}
		} else if cv[2] == 1 && b < float64(cpb1) {
			if b/g < bg {
				cv[2] = 0
			}
		}
	} else if cv[0] == 0 && cv[2] == 1 {
		cpg0 := maxByte(palette[0].G, palette[1].G, palette[4].G, palette[5].G)
		cpg1 := minByte(palette[2].G, palette[3].G, palette[6].G, palette[7].G)
		gb := (float64(palette[1].G)/float64(palette[1].B) + float64(palette[2].G)/float64(palette[2].B)) / 2.0
		if cv[1] == 0 && g > float64(cpg0) {
			if g/b > gb {
				cv[1] = 1
			}
		} else if cv[1] == 1 && g < float64(cpg1) {
			if g/b < gb {
				cv[1] = 0
			}
		}
	}
	_ = r
	return cv
}

func maxByte(vs ...byte) byte {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minByte(vs ...byte) byte {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
