package datamap

import "testing"

func TestBuildReservesAlignmentCrosses(t *testing.T) {
	size := 45 // large enough to have interior alignment patterns
	m := Build(size, size, Master)
	if len(m) != size*size {
		t.Fatalf("len(m) = %d, want %d", len(m), size*size)
	}

	reserved := 0
	for _, v := range m {
		if v {
			reserved++
		}
	}
	if reserved == 0 {
		t.Error("expected Build to reserve at least one cell")
	}
}

func TestBuildSmallSymbolDoesNotPanic(t *testing.T) {
	// below MinimumDistanceBetweenAlignments * 2, so number_of_ap_x/y would
	// go negative before being clamped to zero
	m := Build(11, 11, Slave)
	if len(m) != 121 {
		t.Fatalf("len(m) = %d, want 121", len(m))
	}
}

func TestBuildMasterReservesMoreThanSlave(t *testing.T) {
	size := 45
	master := Build(size, size, Master)
	slave := Build(size, size, Slave)

	countTrue := func(m Map) int {
		n := 0
		for _, v := range m {
			if v {
				n++
			}
		}
		return n
	}
	if countTrue(master) <= countTrue(slave) {
		t.Errorf("master reserved %d cells, slave reserved %d; expected master > slave (diagonal halo)", countTrue(master), countTrue(slave))
	}
}
