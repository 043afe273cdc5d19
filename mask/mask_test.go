package mask

import "testing"

func TestDemaskIsSelfInverse(t *testing.T) {
	side := Side{X: 5, Y: 5}
	dataMap := make([]bool, side.X*side.Y)
	for i := range dataMap {
		dataMap[i] = i%3 != 0 // mix of data and non-data cells
	}

	for maskType := 0; maskType < NumPatterns; maskType++ {
		original := make([]byte, side.X*side.Y)
		for i := range original {
			original[i] = byte(i % 16)
		}
		working := make([]byte, len(original))
		copy(working, original)

		if err := Demask(working, dataMap, side, maskType, 16); err != nil {
			t.Fatalf("mask_type=%d: Demask: %v", maskType, err)
		}
		if err := Demask(working, dataMap, side, maskType, 16); err != nil {
			t.Fatalf("mask_type=%d: second Demask: %v", maskType, err)
		}
		for i := range working {
			if working[i] != original[i] {
				t.Errorf("mask_type=%d: cell %d = %d after double demask, want %d", maskType, i, working[i], original[i])
			}
		}
	}
}

func TestDemaskSkipsNonDataCells(t *testing.T) {
	side := Side{X: 2, Y: 2}
	dataMap := []bool{false, true, false, true}
	data := []byte{5, 5, 5, 5}
	if err := Demask(data, dataMap, side, 0, 16); err != nil {
		t.Fatalf("Demask: %v", err)
	}
	if data[0] != 5 || data[2] != 5 {
		t.Errorf("non-data cells changed: %v", data)
	}
}

func TestDemaskRejectsUnknownMaskType(t *testing.T) {
	side := Side{X: 2, Y: 2}
	dataMap := []bool{true, true, true, true}
	data := make([]byte, 4)
	if err := Demask(data, dataMap, side, 99, 16); err == nil {
		t.Fatal("expected error for unknown mask type")
	}
}

func TestDemaskRejectsLengthMismatch(t *testing.T) {
	side := Side{X: 2, Y: 2}
	if err := Demask(make([]byte, 3), make([]bool, 4), side, 0, 16); err == nil {
		t.Fatal("expected error for data/side mismatch")
	}
}
