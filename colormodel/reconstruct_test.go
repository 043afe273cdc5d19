package colormodel

import "testing"

func TestDeinterleavePaletteReordersEntries(t *testing.T) {
	for _, n := range []int{16, 32, 64} {
		buf := make(RawPalette, n*3*2)
		for i := range buf {
			buf[i] = byte(i % 251)
		}
		original := make(RawPalette, len(buf))
		copy(original, buf)

		if err := DeinterleavePalette(buf, n, n); err != nil {
			t.Fatalf("n=%d: DeinterleavePalette: %v", n, err)
		}
		same := true
		for i := range buf {
			if buf[i] != original[i] {
				same = false
				break
			}
		}
		if same {
			t.Errorf("n=%d: deinterleave left buffer unchanged", n)
		}
	}
}

func TestDeinterleavePaletteRejectsShortBuffer(t *testing.T) {
	buf := make(RawPalette, 10)
	if err := DeinterleavePalette(buf, 16, 16); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
}

func TestInterpolatePaletteFillsSynthesizedEntries(t *testing.T) {
	for _, n := range []int{128, 256} {
		buf := make(RawPalette, n*3*2)
		// populate only the first 64*3 bytes of each half with a ramp; the
		// rest starts zeroed and must be filled in by interpolation.
		for half := 0; half < 2; half++ {
			offset := n * 3 * half
			for i := 0; i < 64*3; i++ {
				buf[offset+i] = byte((i + half) % 251)
			}
		}
		if err := InterpolatePalette(buf, n); err != nil {
			t.Fatalf("n=%d: InterpolatePalette: %v", n, err)
		}
		for half := 0; half < 2; half++ {
			offset := n * 3 * half
			allZero := true
			for _, b := range buf[offset+64*3 : offset+n*3] {
				if b != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				t.Errorf("n=%d half=%d: interpolation left the synthesized entries all-zero", n, half)
			}
		}
	}
}

func TestInterpolatePaletteRejectsBadColorNumber(t *testing.T) {
	buf := make(RawPalette, 64*3*2)
	if err := InterpolatePalette(buf, 64); err == nil {
		t.Fatal("expected error for colorNumber=64")
	}
}

func TestRawPaletteToRGB(t *testing.T) {
	buf := RawPalette{10, 20, 30, 40, 50, 60}
	rgb := buf.ToRGB(2)
	if len(rgb) != 2 || rgb[0].R != 10 || rgb[0].G != 20 || rgb[0].B != 30 {
		t.Errorf("ToRGB(2) = %v", rgb)
	}
	if rgb[1].R != 40 || rgb[1].G != 50 || rgb[1].B != 60 {
		t.Errorf("ToRGB(2)[1] = %v", rgb[1])
	}
}
