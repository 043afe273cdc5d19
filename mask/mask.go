// Package mask implements the 8 fixed, self-inverse data-masking patterns
// a JABCode symbol's payload region is masked with, and the Demask
// operation the payload pipeline uses to undo masking before LDPC
// decoding.
package mask

import "fmt"

// Side is a symbol's module dimensions.
type Side struct{ X, Y int }

// NumPatterns is the number of defined mask types (mask_type 0-7).
const NumPatterns = 8

// patternFuncs computes, for each mask type, a coordinate-derived integer
// that is XORed with a module's palette index. Because XOR with the same
// value twice is the identity, every pattern here is automatically its own
// inverse - this module only ever runs it in the inverse (demasking)
// direction, masking being out of scope for a decoder.
var patternFuncs = [NumPatterns]func(x, y int) int{
	func(x, y int) int { return x + y },
	func(x, y int) int { return x },
	func(x, y int) int { return y },
	func(x, y int) int { return 3*x + y },
	func(x, y int) int { return x + 3*y },
	func(x, y int) int { return 2*x + 3*y },
	func(x, y int) int { return 3*x + 2*y },
	func(x, y int) int { return x*x + y*y },
}

// Value returns the mask value applied at (x, y) for the given mask type,
// reduced into a palette index below colorNumber (colorNumber is always a
// power of two, so colorNumber-1 is a clean bitmask).
func Value(maskType, x, y, colorNumber int) (int, error) {
	if maskType < 0 || maskType >= NumPatterns {
		return 0, fmt.Errorf("mask: unknown mask_type %d", maskType)
	}
	raw := patternFuncs[maskType](x, y)
	return raw & (colorNumber - 1), nil
}

// Demask removes masking from a row-major grid of palette indices: data
// must hold one byte per module with stride side.X, dataMap marks which
// cells actually carry payload (cells outside the data map - finders,
// alignment patterns, palette, metadata - are left untouched), and
// colorNumber is the symbol's color count. Being a pure XOR, Demask is
// also the function that would have masked the data in the first place.
func Demask(data []byte, dataMap []bool, side Side, maskType, colorNumber int) error {
	if len(data) != side.X*side.Y || len(dataMap) != side.X*side.Y {
		return fmt.Errorf("mask: data/dataMap length mismatch with side %dx%d", side.X, side.Y)
	}
	for y := 0; y < side.Y; y++ {
		for x := 0; x < side.X; x++ {
			i := y*side.X + x
			if !dataMap[i] {
				continue
			}
			v, err := Value(maskType, x, y, colorNumber)
			if err != nil {
				return err
			}
			data[i] ^= byte(v)
		}
	}
	return nil
}
