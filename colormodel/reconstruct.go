package colormodel

import (
	"fmt"

	"github.com/fournarakis/jabcode/matrix"
)

// RawPalette is a flat, interleaved-by-value palette buffer: 3 bytes (R,G,B)
// per entry, matching decoder.c's jab_byte* palette layout exactly so the
// deinterleave/interpolation routines below can be ported byte offset for
// byte offset rather than reinterpreted.
type RawPalette []byte

// ToRGB converts the first n entries of a raw palette into RGB samples.
func (p RawPalette) ToRGB(n int) []matrix.RGB {
	out := make([]matrix.RGB, n)
	for i := 0; i < n; i++ {
		out[i] = matrix.RGB{R: p[i*3], G: p[i*3+1], B: p[i*3+2]}
	}
	return out
}

// DeinterleavePalette undoes the encoder's color-distance interleaving for
// palettes of 16, 32 or 64 colors, operating in place. paletteSize is the
// number of colors stored per half (the buffer holds two back-to-back
// halves of paletteSize*3 bytes each, one per interleaved palette); colors
// other than 16/32/64 require no deinterleaving and are left untouched
// (spec §4.2, decoder.c deinterleavePalette).
func DeinterleavePalette(palette RawPalette, paletteSize, availableColorNumber int) error {
	if len(palette) < paletteSize*3*2 {
		return fmt.Errorf("colormodel: raw palette too short for size %d", paletteSize)
	}
	tmp := make(RawPalette, len(palette))
	copy(tmp, palette)

	for i := 0; i < 2; i++ {
		offset := paletteSize * 3 * i
		switch availableColorNumber {
		case 16:
			copy(palette[offset+12:offset+36], tmp[offset+24:offset+48])
			copy(palette[offset+36:offset+48], tmp[offset+12:offset+24])
		case 32:
			copy(palette[offset+6:offset+18], tmp[offset+24:offset+36])
			copy(palette[offset+18:offset+24], tmp[offset+6:offset+12])

			copy(palette[offset+24:offset+72], tmp[offset+36:offset+84])

			copy(palette[offset+72:offset+78], tmp[offset+12:offset+18])
			copy(palette[offset+78:offset+90], tmp[offset+84:offset+96])
			copy(palette[offset+90:offset+96], tmp[offset+18:offset+24])
		case 64:
			copy(palette[offset+3:offset+9], tmp[offset+24:offset+30])
			copy(palette[offset+9:offset+12], tmp[offset+3:offset+6])
			copy(palette[offset+12:offset+36], tmp[offset+30:offset+54])
			copy(palette[offset+36:offset+39], tmp[offset+6:offset+9])
			copy(palette[offset+39:offset+45], tmp[offset+54:offset+60])
			copy(palette[offset+45:offset+48], tmp[offset+9:offset+12])

			copy(palette[offset+48:offset+144], tmp[offset+60:offset+156])

			copy(palette[offset+144:offset+147], tmp[offset+12:offset+15])
			copy(palette[offset+147:offset+153], tmp[offset+156:offset+162])
			copy(palette[offset+153:offset+156], tmp[offset+15:offset+18])
			copy(palette[offset+156:offset+180], tmp[offset+162:offset+186])
			copy(palette[offset+180:offset+183], tmp[offset+18:offset+21])
			copy(palette[offset+183:offset+189], tmp[offset+186:offset+192])
			copy(palette[offset+189:offset+192], tmp[offset+21:offset+24])
		default:
			return nil
		}
	}
	return nil
}

// copyAndInterpolateSubblockFrom16To32 copies a 16-color sub-block and
// linearly interpolates it into a 32-color block in place, used while
// synthesizing a 256-color palette from a 64-color one (decoder.c
// copyAndInterpolateSubblockFrom16To32).
func copyAndInterpolateSubblockFrom16To32(palette RawPalette, dstOffset, srcOffset int) {
	copy(palette[dstOffset+84:dstOffset+96], palette[srcOffset+36:srcOffset+48])
	copy(palette[dstOffset+60:dstOffset+72], palette[srcOffset+24:srcOffset+36])
	copy(palette[dstOffset+24:dstOffset+36], palette[srcOffset+12:srcOffset+24])
	copy(palette[dstOffset+0:dstOffset+12], palette[srcOffset+0:srcOffset+12])

	for j := 0; j < 12; j++ {
		sum := int(palette[dstOffset+j]) + int(palette[dstOffset+24+j])
		palette[dstOffset+12+j] = byte(sum / 2)
	}
	for j := 0; j < 12; j++ {
		sum := int(palette[dstOffset+24+j])*2 + int(palette[dstOffset+60+j])
		palette[dstOffset+36+j] = byte(sum / 3)
		sum = int(palette[dstOffset+24+j]) + int(palette[dstOffset+60+j])*2
		palette[dstOffset+48+j] = byte(sum / 3)
	}
	for j := 0; j < 12; j++ {
		sum := int(palette[dstOffset+60+j]) + int(palette[dstOffset+84+j])
		palette[dstOffset+72+j] = byte(sum / 2)
	}
}

// InterpolatePalette synthesizes a 128- or 256-color palette from the
// 64-color palette a symbol actually carries, by tri-linear block
// interpolation (spec §4.2, decoder.c interpolatePalette). It operates in
// place on a buffer holding two back-to-back halves of colorNumber entries
// each, in which only the first 64 entries of each half are real samples.
func InterpolatePalette(palette RawPalette, colorNumber int) error {
	if colorNumber != 128 && colorNumber != 256 {
		return fmt.Errorf("colormodel: interpolation only defined for 128/256, got %d", colorNumber)
	}
	if len(palette) < colorNumber*3*2 {
		return fmt.Errorf("colormodel: raw palette too short for %d colors", colorNumber)
	}

	for i := 0; i < 2; i++ {
		offset := colorNumber * 3 * i
		switch colorNumber {
		case 128:
			copy(palette[offset+336:offset+384], palette[offset+144:offset+192])
			copy(palette[offset+240:offset+288], palette[offset+96:offset+144])
			copy(palette[offset+96:offset+144], palette[offset+48:offset+96])

			for j := 0; j < 48; j++ {
				sum := int(palette[offset+j]) + int(palette[offset+96+j])
				palette[offset+48+j] = byte(sum / 2)
			}
			for j := 0; j < 48; j++ {
				sum := int(palette[offset+96+j])*2 + int(palette[offset+240+j])
				palette[offset+144+j] = byte(sum / 3)
				sum = int(palette[offset+96+j]) + int(palette[offset+240+j])*2
				palette[offset+192+j] = byte(sum / 3)
			}
			for j := 0; j < 48; j++ {
				sum := int(palette[offset+240+j]) + int(palette[offset+336+j])
				palette[offset+288+j] = byte(sum / 2)
			}
		case 256:
			copyAndInterpolateSubblockFrom16To32(palette, offset+672, offset+144)
			copyAndInterpolateSubblockFrom16To32(palette, offset+480, offset+96)
			copyAndInterpolateSubblockFrom16To32(palette, offset+192, offset+48)
			copyAndInterpolateSubblockFrom16To32(palette, offset+0, offset+0)

			for j := 0; j < 96; j++ {
				sum := int(palette[offset+j]) + int(palette[offset+192+j])
				palette[offset+96+j] = byte(sum / 2)
			}
			for j := 0; j < 96; j++ {
				sum := int(palette[offset+192+j])*2 + int(palette[offset+480+j])
				palette[offset+288+j] = byte(sum / 3)
				sum = int(palette[offset+192+j]) + int(palette[offset+480+j])*2
				palette[offset+384+j] = byte(sum / 3)
			}
			for j := 0; j < 96; j++ {
				sum := int(palette[offset+480+j]) + int(palette[offset+672+j])
				palette[offset+576+j] = byte(sum / 2)
			}
		}
	}
	return nil
}
