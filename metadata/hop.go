package metadata

import "github.com/fournarakis/jabcode/geometry"

// nextMasterModule computes the next metadata module coordinate in a
// master symbol's position-hopping scan: a boustrophedon walk down the
// quadrant with quadrant swaps at module counts 44, 96 and 156 (spec
// §4.4, decoder.c getNextMetadataModuleInMaster).
func nextMasterModule(height, width, moduleCount, x, y int) (int, int) {
	if moduleCount%4 == 0 || moduleCount%4 == 2 {
		y = height - 1 - y
	}
	if moduleCount%4 == 1 || moduleCount%4 == 3 {
		x = width - 1 - x
	}
	if moduleCount%4 == 0 {
		switch {
		case moduleCount <= 20 ||
			(moduleCount >= 44 && moduleCount <= 68) ||
			(moduleCount >= 96 && moduleCount <= 124) ||
			(moduleCount >= 156 && moduleCount <= 172):
			y++
		case (moduleCount > 20 && moduleCount < 44) ||
			(moduleCount > 68 && moduleCount < 96) ||
			(moduleCount > 124 && moduleCount < 156):
			x--
		}
	}
	if moduleCount == 44 || moduleCount == 96 || moduleCount == 156 {
		x, y = y, x
	}
	return x, y
}

// nextSlaveModule computes the next metadata module coordinate in a slave
// symbol's scan: a simple boustrophedon walk that jumps to a fresh column
// set at module count 38 (spec §4.4, decoder.c getNextMetadataModuleInSlave).
func nextSlaveModule(moduleCount, x, y int) (int, int) {
	if moduleCount == 38 {
		return geometry.SlaveMetadataX + 2, geometry.SlaveMetadataY + 4
	}
	if moduleCount&1 == 1 {
		x++
	} else {
		x--
		y++
	}
	return x, y
}
