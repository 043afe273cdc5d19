// Package ldpc implements the regular low-density parity-check block code
// the rest of the decoder treats as a fixed collaborator: a deterministic
// (wc, wr) parity-check matrix construction, and both a hard-decision
// bit-flipping decoder and a soft-decision sum-product decoder over it.
package ldpc

import (
	"fmt"
	"math/rand"
)

// Matrix is a regular (wc, wr) low-density parity-check matrix: every
// column has exactly WC ones, every row has exactly WR ones. Rows holds,
// per check row, the column indices that row covers (ascending in band 0,
// in permutation order in later bands); ColRows holds
// the inverse index, per column, the rows that cover it.
type Matrix struct {
	N       int // codeword length (columns)
	M       int // number of parity checks (rows)
	WC, WR  int
	Rows    [][]int
	ColRows [][]int
}

// InfoBits returns the number of systematic information bits a codeword
// built over this matrix carries (N - M), consistent with the payload
// pipeline's Pn/Pg accounting.
func (mt *Matrix) InfoBits() int {
	return mt.N - mt.M
}

// BuildMatrix constructs a deterministic regular (wc, wr) parity-check
// matrix for a codeword of length n using Gallager's banded construction:
// band 0 lays down wr-wide diagonal blocks, one per row, and every
// subsequent band reuses band 0's column sets under a fixed permutation
// keyed only by (n, wc, wr, band) - never by wall-clock time or global
// random state - so two calls with the same parameters always produce the
// same matrix.
func BuildMatrix(n, wc, wr int) (*Matrix, error) {
	if n <= 0 || wc <= 0 || wr <= 0 {
		return nil, fmt.Errorf("ldpc: invalid parameters n=%d wc=%d wr=%d", n, wc, wr)
	}
	if n%wr != 0 {
		return nil, fmt.Errorf("ldpc: n=%d is not a multiple of wr=%d", n, wr)
	}

	bandRows := n / wr
	m := bandRows * wc
	rows := make([][]int, m)

	for i := 0; i < bandRows; i++ {
		cols := make([]int, wr)
		for j := 0; j < wr; j++ {
			cols[j] = i*wr + j
		}
		rows[i] = cols
	}
	for band := 1; band < wc; band++ {
		perm := bandPermutation(n, wc, wr, band)
		for i := 0; i < bandRows; i++ {
			cols := make([]int, wr)
			for j, c := range rows[i] {
				cols[j] = perm[c]
			}
			rows[band*bandRows+i] = cols
		}
	}

	mt := &Matrix{N: n, M: m, WC: wc, WR: wr, Rows: rows}
	mt.ColRows = make([][]int, n)
	for r, cols := range rows {
		for _, c := range cols {
			mt.ColRows[c] = append(mt.ColRows[c], r)
		}
	}
	return mt, nil
}

// bandPermutation returns a deterministic permutation of [0, n) for the
// given band, seeded only by (n, wc, wr, band).
func bandPermutation(n, wc, wr, band int) []int {
	seed := int64(n)*1000003 + int64(wc)*9973 + int64(wr)*97 + int64(band)
	r := rand.New(rand.NewSource(seed))
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}

// syndrome returns, for each check row, whether the row's parity is
// violated by bits.
func (mt *Matrix) syndrome(bits []byte) []bool {
	unsatisfied := make([]bool, mt.M)
	for r, cols := range mt.Rows {
		parity := byte(0)
		for _, c := range cols {
			parity ^= bits[c]
		}
		unsatisfied[r] = parity != 0
	}
	return unsatisfied
}

func allSatisfied(unsatisfied []bool) bool {
	for _, u := range unsatisfied {
		if u {
			return false
		}
	}
	return true
}
