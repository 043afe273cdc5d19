// Package interleave implements the payload pipeline's bit de-interleaver:
// the inverse of a fixed, deterministic bit permutation applied to both
// the decoded bit stream and its parallel per-bit reliability stream.
package interleave

import (
	"fmt"
	"math/rand"
)

// Deinterleave undoes a fixed permutation of length len(bits) keyed by
// (wc, wr), applying the same inverse permutation to reliabilities (which
// may be nil when only a hard decision is available), and truncates the
// result to pg entries - matching the payload pipeline's "deinterleave,
// truncating to length Pg" contract.
func Deinterleave(bits []byte, reliabilities []float64, wc, wr, pg int) ([]byte, []float64, error) {
	n := len(bits)
	if n == 0 {
		return nil, nil, fmt.Errorf("interleave: empty bit stream")
	}
	if reliabilities != nil && len(reliabilities) != n {
		return nil, nil, fmt.Errorf("interleave: reliabilities length %d != bits length %d", len(reliabilities), n)
	}
	if pg < 0 || pg > n {
		return nil, nil, fmt.Errorf("interleave: pg=%d out of range for %d bits", pg, n)
	}

	perm := permutation(n, wc, wr)

	outBits := make([]byte, n)
	var outRel []float64
	if reliabilities != nil {
		outRel = make([]float64, n)
	}
	// perm[i] is the interleaved position that original index i was moved
	// to; inverting means reading position perm[i] back into slot i.
	for i := 0; i < n; i++ {
		outBits[i] = bits[perm[i]]
		if outRel != nil {
			outRel[i] = reliabilities[perm[i]]
		}
	}

	outBits = outBits[:pg]
	if outRel != nil {
		outRel = outRel[:pg]
	}
	return outBits, outRel, nil
}

// Interleave applies the forward permutation that Deinterleave undoes:
// Deinterleave(Interleave(bits, wc, wr), nil, wc, wr, len(bits)) reconstructs
// bits exactly, for any length divisible by wr. The live decode path never
// calls this; it exists so round-trip test fixtures can build an encoded
// bit stream using the same permutation the decoder inverts.
func Interleave(bits []byte, wc, wr int) []byte {
	n := len(bits)
	perm := permutation(n, wc, wr)
	out := make([]byte, n)
	for i, v := range bits {
		out[perm[i]] = v
	}
	return out
}

// permutation returns the deterministic interleaving permutation for a
// stream of length n protected by an (wc, wr) LDPC code: perm[i] is the
// position the encoder's interleaver would have moved bit i to. Keyed only
// by (n, wc, wr), never by wall-clock time or global random state, so
// repeated calls for the same parameters always invert the same way.
func permutation(n, wc, wr int) []int {
	seed := int64(n)*7919 + int64(wc)*104729 + int64(wr)*15485863
	r := rand.New(rand.NewSource(seed))
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return perm
}
