package ldpc

import "fmt"

// Encode finds a codeword of length n over the regular (wc, wr)
// parity-check matrix whose leading len(info) bits equal info, solving for
// the remaining n-len(info) bits by Gaussian elimination over GF(2). It is
// the inverse of the leading-bits convention DecodeHard/DecodeSoft use when
// reporting "info" (bits[:mt.InfoBits()]), and exists so callers can build
// round-trip test fixtures against the matrices BuildMatrix produces; the
// live decode path never needs to encode.
func Encode(info []byte, n, wc, wr int) ([]byte, error) {
	mt, err := BuildMatrix(n, wc, wr)
	if err != nil {
		return nil, err
	}
	k := mt.InfoBits()
	if len(info) != k {
		return nil, fmt.Errorf("ldpc: info length %d != %d required by (n=%d, wc=%d, wr=%d)", len(info), k, n, wc, wr)
	}
	m := mt.M

	// move each row's contribution from the fixed info bits to the RHS,
	// leaving an m x m linear system over the free (parity) bits.
	a := make([][]byte, m)
	b := make([]byte, m)
	for r, cols := range mt.Rows {
		row := make([]byte, m)
		var rhs byte
		for _, c := range cols {
			if c < k {
				rhs ^= info[c]
			} else {
				row[c-k] = 1
			}
		}
		a[r] = row
		b[r] = rhs
	}

	pivotCol := make([]int, 0, m)
	pivotRow := 0
	for col := 0; col < m && pivotRow < m; col++ {
		sel := -1
		for r := pivotRow; r < m; r++ {
			if a[r][col] == 1 {
				sel = r
				break
			}
		}
		if sel < 0 {
			continue
		}
		a[pivotRow], a[sel] = a[sel], a[pivotRow]
		b[pivotRow], b[sel] = b[sel], b[pivotRow]
		for r := 0; r < m; r++ {
			if r != pivotRow && a[r][col] == 1 {
				for c2 := 0; c2 < m; c2++ {
					a[r][c2] ^= a[pivotRow][c2]
				}
				b[r] ^= b[pivotRow]
			}
		}
		pivotCol = append(pivotCol, col)
		pivotRow++
	}
	// every band of BuildMatrix covers each column once, so the check rows
	// are linearly dependent and some rows reduce to zero; those rows must
	// have a zero right-hand side, and parity bits without a pivot stay 0.
	for r := pivotRow; r < m; r++ {
		if b[r] != 0 {
			return nil, fmt.Errorf("ldpc: parity equations are inconsistent for n=%d wc=%d wr=%d, cannot encode systematically", n, wc, wr)
		}
	}

	free := make([]byte, m)
	for i, col := range pivotCol {
		free[col] = b[i]
	}

	codeword := make([]byte, n)
	copy(codeword, info)
	copy(codeword[k:], free)
	return codeword, nil
}
