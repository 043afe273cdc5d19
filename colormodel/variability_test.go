package colormodel

import "testing"

func TestVariabilityFor(t *testing.T) {
	cases := []struct {
		colorNumber int
		want        Variability
	}{
		{2, Variability{2, 2, 2}},
		{4, Variability{2, 2, 2}},
		{8, Variability{2, 2, 2}},
		{16, Variability{4, 2, 2}},
		{32, Variability{4, 4, 2}},
		{64, Variability{4, 4, 4}},
		{128, Variability{8, 4, 4}},
		{256, Variability{8, 8, 4}},
	}
	for _, c := range cases {
		got, err := VariabilityFor(c.colorNumber)
		if err != nil {
			t.Fatalf("VariabilityFor(%d): unexpected error: %v", c.colorNumber, err)
		}
		if got != c.want {
			t.Errorf("VariabilityFor(%d) = %+v, want %+v", c.colorNumber, got, c.want)
		}
		// K = 2 and K = 4 use the 8-color vector, so their product is 8
		wantProduct := c.colorNumber
		if wantProduct < 8 {
			wantProduct = 8
		}
		if got.VR*got.VG*got.VB != wantProduct {
			t.Errorf("VariabilityFor(%d): product %d*%d*%d != %d", c.colorNumber, got.VR, got.VG, got.VB, wantProduct)
		}
	}
}

func TestVariabilityForRejectsUnsupported(t *testing.T) {
	if _, err := VariabilityFor(7); err == nil {
		t.Fatal("expected error for unsupported color count 7")
	}
}

func TestBitsPerModule(t *testing.T) {
	cases := map[int]int{2: 1, 4: 2, 8: 3, 16: 4, 32: 5, 64: 6, 128: 7, 256: 8}
	for k, want := range cases {
		if got := BitsPerModule(k); got != want {
			t.Errorf("BitsPerModule(%d) = %d, want %d", k, got, want)
		}
	}
}
