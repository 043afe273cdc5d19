package colormodel

import (
	"testing"

	"github.com/fournarakis/jabcode/matrix"
)

func TestPaletteThresholdTwoColor(t *testing.T) {
	palette := []matrix.RGB{{0, 0, 0}, {255, 255, 255}}
	th, _, err := PaletteThreshold(palette, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, got := range [][]float64{th.R, th.G, th.B} {
		if len(got) != 3 || got[1] != 127.5 {
			t.Errorf("thresholds = %v, want midpoint 127.5", got)
		}
	}
}

func TestPaletteThresholdRejectsShortPalette(t *testing.T) {
	if _, _, err := PaletteThreshold([]matrix.RGB{{0, 0, 0}}, 4); err == nil {
		t.Fatal("expected error for undersized palette")
	}
}

// gridPalette builds a colorNumber-entry palette whose channel levels are
// evenly spaced across 0..255, indexed the same way decodeModule packs a
// classified index: i = r*vg*vb + g*vb + b.
func gridPalette(colorNumber int) ([]matrix.RGB, Variability) {
	v, err := VariabilityFor(colorNumber)
	if err != nil {
		panic(err)
	}
	level := func(i, n int) byte {
		if n == 1 {
			return 0
		}
		return byte(i * 255 / (n - 1))
	}
	palette := make([]matrix.RGB, colorNumber)
	for r := 0; r < v.VR; r++ {
		for g := 0; g < v.VG; g++ {
			for b := 0; b < v.VB; b++ {
				idx := r*v.VG*v.VB + g*v.VB + b
				palette[idx] = matrix.RGB{R: level(r, v.VR), G: level(g, v.VG), B: level(b, v.VB)}
			}
		}
	}
	return palette, v
}

func TestPaletteThresholdLargeIsMonotonic(t *testing.T) {
	for _, k := range []int{16, 32, 64, 128, 256} {
		palette, v := gridPalette(k)
		th, rp, err := PaletteThreshold(palette, k)
		if err != nil {
			t.Fatalf("colorNumber=%d: unexpected error: %v", k, err)
		}
		for name, ths := range map[string][]float64{"R": th.R, "G": th.G, "B": th.B} {
			for i := 1; i < len(ths); i++ {
				if ths[i] < ths[i-1] {
					t.Errorf("colorNumber=%d channel=%s: thresholds not monotonic: %v", k, name, ths)
				}
			}
		}
		if len(th.R) != v.VR+1 || len(th.G) != v.VG+1 || len(th.B) != v.VB+1 {
			t.Errorf("colorNumber=%d: threshold slice lengths = %d/%d/%d, want %d/%d/%d",
				k, len(th.R), len(th.G), len(th.B), v.VR+1, v.VG+1, v.VB+1)
		}
		if v.VR > 2 && len(rp.R) != v.VR-2 {
			t.Errorf("colorNumber=%d: len(rp.R) = %d, want %d", k, len(rp.R), v.VR-2)
		}
	}
}
